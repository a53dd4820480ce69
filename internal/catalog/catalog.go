// Package catalog loads the exhibition's artwork records from the image
// directory and the artist's documents from the text directory.
package catalog

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ai41/adam/internal/types"
)

// DefaultArtist is used when no artwork yields an artist name.
const DefaultArtist = "곽한승"

var seriesRe = regexp.MustCompile(`^(.+?)(\d+)$`)

// Catalog reads artwork metadata from {base}/img/*.jpg filenames of the
// form Artist_Name_Size_Medium_Year.jpg, plus the artist note and artwork
// info documents under {base}/text. Loads are lazy and cached for the
// lifetime of the process; the parsed index is mirrored to
// {data}/artworks.json for inspection.
type Catalog struct {
	baseDir string
	dataDir string
	logger  *slog.Logger

	mu       sync.Mutex
	artworks []*types.Artwork
	note     *string
	info     *string
}

// New creates a catalog rooted at baseDir, writing its index under dataDir.
func New(baseDir, dataDir string, logger *slog.Logger) *Catalog {
	return &Catalog{
		baseDir: baseDir,
		dataDir: dataDir,
		logger:  logger,
	}
}

// All returns every artwork, sorted by filename. The first call scans the
// image directory; later calls return the cached result.
func (c *Catalog) All() []*types.Artwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

func (c *Catalog) loadLocked() []*types.Artwork {
	if c.artworks != nil {
		return c.artworks
	}

	imgDir := filepath.Join(c.baseDir, "img")
	files, err := filepath.Glob(filepath.Join(imgDir, "*.jpg"))
	if err != nil || len(files) == 0 {
		c.artworks = []*types.Artwork{}
		return c.artworks
	}
	sort.Strings(files)

	artworks := make([]*types.Artwork, 0, len(files))
	for _, path := range files {
		aw := parseFilename(path, c.baseDir)
		if aw == nil {
			continue
		}
		aw.Width, aw.Height = imageDims(path)
		artworks = append(artworks, aw)
	}

	if err := c.writeIndex(artworks); err != nil {
		c.logger.Warn("failed to write artwork index", "error", err)
	}

	c.logger.Info("artwork catalog loaded", "count", len(artworks))
	c.artworks = artworks
	return c.artworks
}

// parseFilename extracts artwork fields from a filename shaped as
// Artist_Name_Size_Medium_Year.jpg. Files with fewer than four parts are
// skipped; the year is optional.
func parseFilename(path, baseDir string) *types.Artwork {
	filename := filepath.Base(path)
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, "_")
	if len(parts) < 4 {
		return nil
	}

	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = path
	}

	aw := &types.Artwork{
		Filename: filename,
		Filepath: filepath.ToSlash(rel),
		Artist:   parts[0],
		Name:     parts[1],
		Size:     parts[2],
		Medium:   parts[3],
	}
	if len(parts) > 4 {
		aw.Year = parts[4]
	}
	return aw
}

// imageDims reads the pixel dimensions from the JPEG header. Unreadable
// images yield zero dimensions rather than an error.
func imageDims(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// writeIndex mirrors the parsed records to {data}/artworks.json atomically.
func (c *Catalog) writeIndex(artworks []*types.Artwork) error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(artworks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling index: %w", err)
	}

	path := filepath.Join(c.dataDir, "artworks.json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming index: %w", err)
	}
	return nil
}

// ByName returns the artwork whose name matches case-insensitively, or nil.
func (c *Catalog) ByName(name string) *types.Artwork {
	for _, aw := range c.All() {
		if strings.EqualFold(aw.Name, name) {
			return aw
		}
	}
	return nil
}

// PrefixSearch returns up to limit artworks whose names start with prefix,
// case-insensitively, with duplicate names removed.
func (c *Catalog) PrefixSearch(prefix string, limit int) []*types.Artwork {
	prefixLower := strings.ToLower(prefix)
	seen := make(map[string]bool)
	var matches []*types.Artwork

	for _, aw := range c.All() {
		if !strings.HasPrefix(strings.ToLower(aw.Name), prefixLower) {
			continue
		}
		if seen[aw.Name] {
			continue
		}
		seen[aw.Name] = true
		matches = append(matches, aw)
		if len(matches) >= limit {
			break
		}
	}
	return matches
}

// Collection returns the artworks whose names are base plus a trailing
// number (Flock1, Flock2, ...), sorted by name.
func (c *Catalog) Collection(base string) []*types.Artwork {
	baseLower := strings.ToLower(base)
	var collection []*types.Artwork

	for _, aw := range c.All() {
		nameLower := strings.ToLower(aw.Name)
		if !strings.HasPrefix(nameLower, baseLower) {
			continue
		}
		rest := nameLower[len(baseLower):]
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			continue
		}
		collection = append(collection, aw)
	}

	sort.Slice(collection, func(i, j int) bool {
		return collection[i].Name < collection[j].Name
	})
	return collection
}

// ImageURLs returns the serving paths for an artwork's images. A name
// ending in a number expands to its whole collection; an unknown name
// yields nil.
func (c *Catalog) ImageURLs(name string) []string {
	aw := c.ByName(name)
	if aw == nil {
		return nil
	}

	if m := seriesRe.FindStringSubmatch(name); m != nil {
		if collection := c.Collection(m[1]); len(collection) > 0 {
			urls := make([]string, len(collection))
			for i, member := range collection {
				urls[i] = "/img/" + member.Filename
			}
			return urls
		}
	}

	return []string{"/img/" + aw.Filename}
}

// ArtistName returns the artist parsed from the first artwork, falling back
// to the default when the catalog is empty.
func (c *Catalog) ArtistName() string {
	artworks := c.All()
	if len(artworks) > 0 && artworks[0].Artist != "" {
		return artworks[0].Artist
	}
	return DefaultArtist
}

// ArtistNote returns the contents of text/작가노트.txt, or "" when absent.
func (c *Catalog) ArtistNote() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.note == nil {
		c.note = c.readTextFile("작가노트.txt")
	}
	return *c.note
}

// ArtworkInfo returns the contents of text/작품정보.md, or "" when absent.
func (c *Catalog) ArtworkInfo() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.info == nil {
		c.info = c.readTextFile("작품정보.md")
	}
	return *c.info
}

func (c *Catalog) readTextFile(name string) *string {
	empty := ""
	data, err := os.ReadFile(filepath.Join(c.baseDir, "text", name))
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("failed to read text document", "file", name, "error", err)
		}
		return &empty
	}
	s := string(data)
	return &s
}
