package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFixture(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("not a real jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	base := t.TempDir()
	imgDir := filepath.Join(base, "img")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	writeFixture(t, imgDir, "곽한승_Flock1_100x100_Mixed Media_2024.jpg")
	writeFixture(t, imgDir, "곽한승_Flock2_100x100_Mixed Media_2024.jpg")
	writeFixture(t, imgDir, "곽한승_Atonement_80x60_Mixed Media.jpg")
	writeFixture(t, imgDir, "invalid.jpg")

	return New(base, filepath.Join(base, "data"), testLogger())
}

func TestAllParsesFilenames(t *testing.T) {
	c := testCatalog(t)

	artworks := c.All()
	if len(artworks) != 3 {
		t.Fatalf("expected 3 artworks, got %d", len(artworks))
	}

	first := artworks[0]
	if first.Artist != "곽한승" {
		t.Errorf("unexpected artist: %s", first.Artist)
	}
	if first.Name != "Atonement" {
		t.Errorf("expected sorted order with Atonement first, got %s", first.Name)
	}
	if first.Size != "80x60" || first.Medium != "Mixed Media" {
		t.Errorf("unexpected fields: %+v", first)
	}
	if first.Year != "" {
		t.Errorf("expected no year, got %s", first.Year)
	}

	flock := artworks[1]
	if flock.Name != "Flock1" || flock.Year != "2024" {
		t.Errorf("unexpected artwork: %+v", flock)
	}
}

func TestAllWritesIndex(t *testing.T) {
	base := t.TempDir()
	imgDir := filepath.Join(base, "img")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, imgDir, "곽한승_Echo_50x50_Oil_2023.jpg")

	dataDir := filepath.Join(base, "data")
	c := New(base, dataDir, testLogger())
	c.All()

	if _, err := os.Stat(filepath.Join(dataDir, "artworks.json")); err != nil {
		t.Errorf("expected artworks.json to be written: %v", err)
	}
}

func TestByName(t *testing.T) {
	c := testCatalog(t)

	if aw := c.ByName("atonement"); aw == nil || aw.Name != "Atonement" {
		t.Errorf("expected case-insensitive match, got %+v", aw)
	}
	if aw := c.ByName("Nonexistent"); aw != nil {
		t.Errorf("expected nil for unknown name, got %+v", aw)
	}
}

func TestPrefixSearch(t *testing.T) {
	c := testCatalog(t)

	matches := c.PrefixSearch("flo", 10)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	limited := c.PrefixSearch("flo", 1)
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}

	if matches := c.PrefixSearch("zzz", 10); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestCollection(t *testing.T) {
	c := testCatalog(t)

	collection := c.Collection("Flock")
	if len(collection) != 2 {
		t.Fatalf("expected 2 collection members, got %d", len(collection))
	}
	if collection[0].Name != "Flock1" || collection[1].Name != "Flock2" {
		t.Errorf("expected numeric ordering, got %s, %s", collection[0].Name, collection[1].Name)
	}

	// A name with no numbered variants is not a collection.
	if got := c.Collection("Atonement"); len(got) != 0 {
		t.Errorf("expected empty collection, got %d", len(got))
	}
}

func TestImageURLs(t *testing.T) {
	c := testCatalog(t)

	// A numbered member expands to the whole collection.
	urls := c.ImageURLs("Flock1")
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %v", urls)
	}
	if urls[0] != "/img/곽한승_Flock1_100x100_Mixed Media_2024.jpg" {
		t.Errorf("unexpected url: %s", urls[0])
	}

	// A single artwork yields one url.
	urls = c.ImageURLs("Atonement")
	if len(urls) != 1 {
		t.Fatalf("expected 1 url, got %v", urls)
	}

	if urls := c.ImageURLs("Unknown"); urls != nil {
		t.Errorf("expected nil for unknown artwork, got %v", urls)
	}
}

func TestArtistName(t *testing.T) {
	c := testCatalog(t)
	if got := c.ArtistName(); got != "곽한승" {
		t.Errorf("unexpected artist name: %s", got)
	}

	empty := New(t.TempDir(), t.TempDir(), testLogger())
	if got := empty.ArtistName(); got != DefaultArtist {
		t.Errorf("expected default artist, got %s", got)
	}
}

func TestArtistDocuments(t *testing.T) {
	base := t.TempDir()
	textDir := filepath.Join(base, "text")
	if err := os.MkdirAll(textDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(textDir, "작가노트.txt"), []byte("노트 내용"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(textDir, "작품정보.md"), []byte("## Flock\n정보"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(base, filepath.Join(base, "data"), testLogger())
	if got := c.ArtistNote(); got != "노트 내용" {
		t.Errorf("unexpected note: %q", got)
	}
	if got := c.ArtworkInfo(); got != "## Flock\n정보" {
		t.Errorf("unexpected info: %q", got)
	}

	missing := New(t.TempDir(), t.TempDir(), testLogger())
	if got := missing.ArtistNote(); got != "" {
		t.Errorf("expected empty note, got %q", got)
	}
}
