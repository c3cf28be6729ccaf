package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"go.uber.org/zap"
)

const (
	backupTimeFormat = "20060102_150405"
	backupPattern    = "students_backup_*.json"
	manifestFile     = "manifest.json"
)

// Snapshot is one manifest entry. Snapshots are never pruned, so the
// manifest only ever grows.
type Snapshot struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
	Records   int       `json:"records"`
}

// writeSnapshot copies the freshly-saved data into the backup directory,
// creating it on first use, and records the snapshot in the manifest.
func (s *Store) writeSnapshot(data []byte) error {
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return err
	}
	name := fmt.Sprintf("students_backup_%s.json", time.Now().Format(backupTimeFormat))
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	if err := s.appendManifest(name); err != nil {
		s.log.Warn("manifest update failed", zap.Error(err))
	}
	s.log.Debug("snapshot written", zap.String("file", name))
	return nil
}

func (s *Store) appendManifest(file string) error {
	path := filepath.Join(s.backupDir, manifestFile)

	var entries []Snapshot
	if data, err := os.ReadFile(path); err == nil {
		// A corrupt manifest is abandoned and restarted; the snapshot
		// files themselves are the source of truth.
		_ = json.Unmarshal(data, &entries)
	}

	entries = append(entries, Snapshot{
		ID:        uuid.NewString(),
		File:      file,
		CreatedAt: time.Now(),
		Records:   len(s.students),
	})

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SnapshotInfo describes one backup file on disk.
type SnapshotInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// ListSnapshots enumerates backup files in the backup directory, newest
// last. The glob keeps manifest.json and stray files out of the listing.
func ListSnapshots(backupDir string) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []SnapshotInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		match, err := doublestar.Match(backupPattern, e.Name())
		if err != nil || !match {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, SnapshotInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DiffSnapshot returns a unified diff of a snapshot against the live data
// file: what changed since that backup was taken.
func DiffSnapshot(dataPath, snapshotPath string) (string, error) {
	before, err := os.ReadFile(snapshotPath)
	if err != nil {
		return "", fmt.Errorf("reading snapshot: %w", err)
	}
	after, err := os.ReadFile(dataPath)
	if err != nil {
		return "", fmt.Errorf("reading data file: %w", err)
	}

	edits := myers.ComputeEdits(span.URIFromPath(snapshotPath), string(before), string(after))
	if len(edits) == 0 {
		return "", nil
	}
	return fmt.Sprint(gotextdiff.ToUnified(snapshotPath, dataPath, string(before), edits)), nil
}
