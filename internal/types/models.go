// internal/types/models.go
package types

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message exchange unit in a session's transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Artwork is a catalog record derived from an image filename of the form
// Artist_Name_Size_Medium_Year.jpg. Year, Width and Height may be absent.
type Artwork struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Artist   string `json:"artist"`
	Name     string `json:"name"`
	Size     string `json:"size"`
	Medium   string `json:"medium"`
	Year     string `json:"year,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}
