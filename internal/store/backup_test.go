package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/rollbook/internal/student"
)

func TestSaveWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	s := Open(filepath.Join(dir, "students.json"), backups, nil)

	require.NoError(t, s.Add(student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8}))

	snaps, err := ListSnapshots(backups)
	require.NoError(t, err)
	require.NotEmpty(t, snaps)
	assert.Regexp(t, `^students_backup_\d{8}_\d{6}\.json$`, snaps[0].Name)

	// The snapshot is byte-identical to the primary file.
	primary, err := os.ReadFile(filepath.Join(dir, "students.json"))
	require.NoError(t, err)
	snap, err := os.ReadFile(filepath.Join(backups, snaps[0].Name))
	require.NoError(t, err)
	assert.Equal(t, primary, snap)
}

func TestManifestGrows(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	s := Open(filepath.Join(dir, "students.json"), backups, nil)

	require.NoError(t, s.Add(student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8}))
	require.NoError(t, s.Add(student.Student{RollNumber: 2, Name: "Bo Chan", Age: 21, CGPA: 3.0}))

	data, err := os.ReadFile(filepath.Join(backups, manifestFile))
	require.NoError(t, err)

	var entries []Snapshot
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, 1, entries[0].Records)
	assert.Equal(t, 2, entries[1].Records)
}

func TestListSnapshotsIgnoresManifestAndStrays(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	s := Open(filepath.Join(dir, "students.json"), backups, nil)
	require.NoError(t, s.Add(student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8}))
	require.NoError(t, os.WriteFile(filepath.Join(backups, "notes.txt"), []byte("x"), 0644))

	snaps, err := ListSnapshots(backups)
	require.NoError(t, err)
	for _, snap := range snaps {
		assert.NotEqual(t, manifestFile, snap.Name)
		assert.NotEqual(t, "notes.txt", snap.Name)
	}
}

func TestListSnapshotsMissingDir(t *testing.T) {
	snaps, err := ListSnapshots(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestDiffSnapshot(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	path := filepath.Join(dir, "students.json")

	s := Open(path, backups, nil)
	require.NoError(t, s.Add(student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8}))

	snaps, err := ListSnapshots(backups)
	require.NoError(t, err)
	require.NotEmpty(t, snaps)

	// Preserve the first snapshot: a save in the same second would
	// otherwise reuse its timestamped name and overwrite it.
	orig, err := os.ReadFile(filepath.Join(backups, snaps[0].Name))
	require.NoError(t, err)
	first := filepath.Join(dir, "first.json")
	require.NoError(t, os.WriteFile(first, orig, 0644))

	// No changes yet: empty diff.
	diff, err := DiffSnapshot(path, first)
	require.NoError(t, err)
	assert.Empty(t, diff)

	require.NoError(t, s.UpdateCGPA(1, 2.5))

	diff, err = DiffSnapshot(path, first)
	require.NoError(t, err)
	assert.Contains(t, diff, "3.8")
	assert.Contains(t, diff, "2.5")
}
