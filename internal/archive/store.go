// Package archive persists finished-conversation snapshots as JSON files,
// one file per archived turn batch.
package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ai41/adam/internal/types"
)

const timestampLayout = "20060102_150405"

// Record is one archived conversation snapshot.
type Record struct {
	SessionID types.SessionID `json:"session_id"`
	Timestamp string          `json:"timestamp"`
	Datetime  string          `json:"datetime"`
	Messages  []types.Turn    `json:"messages"`
}

// Summary describes an archive file without its message bodies.
type Summary struct {
	SessionID    types.SessionID `json:"session_id"`
	Timestamp    string          `json:"timestamp"`
	Datetime     string          `json:"datetime"`
	MessageCount int             `json:"message_count"`
	Filename     string          `json:"filename"`
}

// Store writes and reads conversation archives under a single directory.
// Filenames are {session_id}_{timestamp}.json so listings sort naturally.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates the archive directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

// Save writes a snapshot of the session's transcript to a new archive file.
func (s *Store) Save(sessionID types.SessionID, messages []types.Turn) error {
	now := s.now()
	timestamp := now.Format(timestampLayout)

	record := Record{
		SessionID: sessionID,
		Timestamp: timestamp,
		Datetime:  now.Format(time.RFC3339),
		Messages:  messages,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling archive: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", sessionID, timestamp))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming archive: %w", err)
	}
	return nil
}

// List returns up to limit archive summaries, newest first. Unreadable
// files are skipped with a warning.
func (s *Store) List(limit int) ([]Summary, error) {
	files, err := s.sortedFiles()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, limit)
	for i := len(files) - 1; i >= 0 && len(summaries) < limit; i-- {
		record, err := s.read(files[i])
		if err != nil {
			s.logger.Warn("skipping unreadable archive", "file", files[i], "error", err)
			continue
		}
		summaries = append(summaries, Summary{
			SessionID:    record.SessionID,
			Timestamp:    record.Timestamp,
			Datetime:     record.Datetime,
			MessageCount: len(record.Messages),
			Filename:     filepath.Base(files[i]),
		})
	}
	return summaries, nil
}

// Latest returns the most recent archive for a session, or nil when the
// session was never archived.
func (s *Store) Latest(sessionID types.SessionID) (*Record, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, string(sessionID)+"_*.json"))
	if err != nil || len(files) == 0 {
		return nil, err
	}
	sort.Strings(files)

	record, err := s.read(files[len(files)-1])
	if err != nil {
		return nil, err
	}
	return record, nil
}

// BySession returns every archive for a session, oldest first.
func (s *Store) BySession(sessionID types.SessionID) ([]Record, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, string(sessionID)+"_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	records := make([]Record, 0, len(files))
	for _, file := range files {
		record, err := s.read(file)
		if err != nil {
			s.logger.Warn("skipping unreadable archive", "file", file, "error", err)
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

// Prune deletes the oldest archives until at most keep remain. Returns the
// number of files removed.
func (s *Store) Prune(keep int) (int, error) {
	files, err := s.sortedFiles()
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}

	removed := 0
	for _, file := range files[:len(files)-keep] {
		if err := os.Remove(file); err != nil {
			s.logger.Warn("failed to remove archive", "file", file, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// sortedFiles lists archive files oldest first. The embedded timestamp
// makes lexical order chronological per session; cross-session order is
// close enough for pruning.
func (s *Store) sortedFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing archives: %w", err)
	}
	sort.Slice(files, func(i, j int) bool {
		return archiveStamp(files[i]) < archiveStamp(files[j])
	})
	return files, nil
}

// archiveStamp extracts the trailing timestamp from an archive filename.
func archiveStamp(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	if i := strings.LastIndex(name, "_"); i != -1 && i+1 < len(name) {
		if j := strings.LastIndex(name[:i], "_"); j != -1 {
			return name[j+1:]
		}
		return name[i+1:]
	}
	return name
}

func (s *Store) read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing archive: %w", err)
	}
	return &record, nil
}
