package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/rollbook/internal/student"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return Open(filepath.Join(dir, "students.json"), filepath.Join(dir, "backups"), nil)
}

func seed(t *testing.T, s *Store, students ...student.Student) {
	t.Helper()
	for _, st := range students {
		require.NoError(t, s.Add(st))
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.LoadError())
	assert.Zero(t, s.Len())
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := Open(path, filepath.Join(dir, "backups"), nil)
	assert.Error(t, s.LoadError())
	assert.Zero(t, s.Len())
}

func TestOpenRejectsWrongShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.json")
	// Valid JSON, wrong schema: age out of range.
	bad := `[{"roll_number": 1, "name": "Ann Lee", "age": 300, "cgpa": 3.0}]`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	s := Open(path, filepath.Join(dir, "backups"), nil)
	assert.Error(t, s.LoadError())
	assert.Zero(t, s.Len())
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.json")
	backups := filepath.Join(dir, "backups")

	want := []student.Student{
		{RollNumber: 3, Name: "Cara Bell", Age: 24, CGPA: 3.1},
		{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8},
		{RollNumber: 2, Name: "Bo Chan", Age: 17, CGPA: 2.4},
	}

	s := Open(path, backups, nil)
	seed(t, s, want...)

	// A fresh Store sees the exact same sequence: values and order.
	reloaded := Open(path, backups, nil)
	require.NoError(t, reloaded.LoadError())
	if diff := cmp.Diff(want, reloaded.All()); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRejectsDuplicateRoll(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8})

	err := s.Add(student.Student{RollNumber: 1, Name: "Bo Chan", Age: 21, CGPA: 3.0})
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)
	err := s.Add(student.Student{RollNumber: 2, Name: "99", Age: 20, CGPA: 3.0})
	assert.Error(t, err)
	assert.Zero(t, s.Len())
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8},
		student.Student{RollNumber: 2, Name: "Bo Chan", Age: 21, CGPA: 3.0},
	)

	require.NoError(t, s.Delete(1))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.HasRoll(1))
	assert.True(t, s.HasRoll(2))

	assert.Error(t, s.Delete(99), "deleting a missing roll should fail")
}

func TestUpdateField(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.8})

	require.NoError(t, s.UpdateAge(1, 21))
	require.NoError(t, s.UpdateCGPA(1, 3.9))
	require.NoError(t, s.UpdateName(1, "Ann Leigh"))

	st, ok := s.FindByRoll(1)
	require.True(t, ok)
	assert.Equal(t, student.Student{RollNumber: 1, Name: "Ann Leigh", Age: 21, CGPA: 3.9}, st)

	// Constraint re-validated on update.
	assert.Error(t, s.UpdateAge(1, 121))
	assert.Error(t, s.UpdateCGPA(1, 4.01))
	assert.Error(t, s.UpdateName(1, "x9!"))
	assert.Error(t, s.UpdateAge(42, 20), "missing roll")
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		student.Student{RollNumber: 1, Name: "Ann Lee", Age: 17, CGPA: 2.0},
		student.Student{RollNumber: 2, Name: "Bo Chan", Age: 20, CGPA: 3.0},
		student.Student{RollNumber: 3, Name: "Cara Bell", Age: 25, CGPA: 3.9},
	)

	// Case-insensitive substring.
	assert.Len(t, s.SearchName("aN"), 2) // Ann, Chan

	got := s.SearchAgeRange(18, 22)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].RollNumber)

	assert.Len(t, s.SearchCGPARange(2.0, 3.0), 2)
	assert.Empty(t, s.SearchCGPARange(1.0, 1.5))

	_, ok := s.FindByRoll(3)
	assert.True(t, ok)
	_, ok = s.FindByRoll(9)
	assert.False(t, ok)
}

func TestSortOrders(t *testing.T) {
	records := []student.Student{
		{RollNumber: 2, Name: "bo chan", Age: 25, CGPA: 3.5},
		{RollNumber: 3, Name: "Ann Lee", Age: 17, CGPA: 2.0},
		{RollNumber: 1, Name: "Cara Bell", Age: 20, CGPA: 3.9},
	}

	s := newTestStore(t)
	seed(t, s, records...)

	require.NoError(t, s.Sort(SortByRoll))
	assert.Equal(t, []int{1, 2, 3}, rolls(s))

	require.NoError(t, s.Sort(SortByName))
	assert.Equal(t, []int{3, 2, 1}, rolls(s)) // Ann, bo, Cara

	require.NoError(t, s.Sort(SortByAge))
	assert.Equal(t, []int{3, 1, 2}, rolls(s))

	require.NoError(t, s.Sort(SortByCGPA))
	assert.Equal(t, []int{1, 2, 3}, rolls(s)) // 3.9, 3.5, 2.0
	assert.Equal(t, 3, s.Len(), "sorting never changes size")
}

func TestSortStability(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		student.Student{RollNumber: 1, Name: "Ann Lee", Age: 20, CGPA: 3.0},
		student.Student{RollNumber: 2, Name: "Bo Chan", Age: 20, CGPA: 3.0},
		student.Student{RollNumber: 3, Name: "Cara Bell", Age: 20, CGPA: 3.0},
	)

	// All keys tie: every order must preserve insertion order.
	for _, key := range []SortKey{SortByAge, SortByCGPA} {
		require.NoError(t, s.Sort(key))
		assert.Equal(t, []int{1, 2, 3}, rolls(s), "key %d", key)
	}
}

func rolls(s *Store) []int {
	var out []int
	for _, st := range s.All() {
		out = append(out, st.RollNumber)
	}
	return out
}
