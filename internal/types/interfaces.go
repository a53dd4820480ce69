// internal/types/interfaces.go
package types

// SessionStore holds ordered conversation transcripts keyed by session id.
// Get returns an empty slice for unknown ids; Append creates the session
// lazily. Neither operation fails.
type SessionStore interface {
	Get(id SessionID) []Turn
	Append(id SessionID, turn Turn)
	Len(id SessionID) int
}

// Catalog exposes the exhibition's artwork records and artist documents.
// All accessors treat missing resources as absence, never as an error.
type Catalog interface {
	All() []*Artwork
	ByName(name string) *Artwork
	PrefixSearch(prefix string, limit int) []*Artwork
	Collection(base string) []*Artwork
	ImageURLs(name string) []string
	ArtistName() string
	ArtistNote() string
	ArtworkInfo() string
}
