package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jeanpaul/rollbook/internal/student"
)

// SortKey selects one of the fixed sort orders.
type SortKey int

const (
	SortByRoll SortKey = iota // ascending
	SortByName                // ascending, case-insensitive
	SortByAge                 // youngest first
	SortByCGPA                // highest first
)

// Store owns the in-memory collection and mirrors it to disk. Every
// mutating call rewrites the whole data file and drops a timestamped
// snapshot in the backup directory. There is exactly one Store per
// process and no concurrent access.
type Store struct {
	path      string
	backupDir string
	students  []student.Student
	loadErr   error
	log       *zap.Logger
}

// Open loads the collection from path. A missing file yields an empty
// collection; so does an unreadable or malformed one — the failure is
// logged and reported through LoadError, and the stale content survives
// only in the previous backups.
func Open(path, backupDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, backupDir: backupDir, log: log}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("data file absent, starting empty", zap.String("path", s.path))
			return
		}
		s.loadErr = fmt.Errorf("reading %s: %w", s.path, err)
		s.log.Error("load failed", zap.Error(err))
		return
	}

	if err := checkSchema(data); err != nil {
		s.loadErr = fmt.Errorf("%s is not a valid student file: %w", s.path, err)
		s.log.Error("schema check failed", zap.Error(s.loadErr))
		return
	}

	var students []student.Student
	if err := json.Unmarshal(data, &students); err != nil {
		s.loadErr = fmt.Errorf("parsing %s: %w", s.path, err)
		s.log.Error("load failed", zap.Error(err))
		return
	}
	s.students = students
	s.log.Info("loaded students", zap.Int("count", len(students)))
}

// LoadError reports whether startup hit a read/parse failure. The process
// continues with an empty collection either way.
func (s *Store) LoadError() error { return s.loadErr }

// Save serializes the full collection to the primary file, then writes an
// identical timestamped copy into the backup directory. Not atomic: a
// crash mid-write is mitigated only by the previous snapshot.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.students, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := s.writeSnapshot(data); err != nil {
		// Primary write succeeded; a failed backup is logged but does
		// not fail the operation.
		s.log.Warn("backup snapshot failed", zap.Error(err))
	}
	return nil
}

func (s *Store) Len() int { return len(s.students) }

// All returns the records in collection order. Callers must not mutate.
func (s *Store) All() []student.Student { return s.students }

// HasRoll reports whether a roll number is already taken.
func (s *Store) HasRoll(roll int) bool {
	_, ok := s.FindByRoll(roll)
	return ok
}

// Add appends a record and saves. The roll number must be unique at this
// point; nothing re-checks uniqueness later (external edits bypass this).
func (s *Store) Add(st student.Student) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if s.HasRoll(st.RollNumber) {
		return fmt.Errorf("roll number %d already exists", st.RollNumber)
	}
	s.students = append(s.students, st)
	return s.Save()
}

func (s *Store) FindByRoll(roll int) (student.Student, bool) {
	for _, st := range s.students {
		if st.RollNumber == roll {
			return st, true
		}
	}
	return student.Student{}, false
}

// SearchName returns all records whose name contains sub,
// case-insensitively.
func (s *Store) SearchName(sub string) []student.Student {
	sub = strings.ToLower(sub)
	var out []student.Student
	for _, st := range s.students {
		if strings.Contains(strings.ToLower(st.Name), sub) {
			out = append(out, st)
		}
	}
	return out
}

func (s *Store) SearchAgeRange(lo, hi int) []student.Student {
	var out []student.Student
	for _, st := range s.students {
		if st.Age >= lo && st.Age <= hi {
			out = append(out, st)
		}
	}
	return out
}

func (s *Store) SearchCGPARange(lo, hi float64) []student.Student {
	var out []student.Student
	for _, st := range s.students {
		if st.CGPA >= lo && st.CGPA <= hi {
			out = append(out, st)
		}
	}
	return out
}

func (s *Store) UpdateName(roll int, name string) error {
	if ok, msg := student.ValidateName(name); !ok {
		return fmt.Errorf("%s", msg)
	}
	return s.update(roll, func(st *student.Student) { st.Name = name })
}

func (s *Store) UpdateAge(roll, age int) error {
	if ok, msg := student.ValidateAge(age); !ok {
		return fmt.Errorf("%s", msg)
	}
	return s.update(roll, func(st *student.Student) { st.Age = age })
}

func (s *Store) UpdateCGPA(roll int, cgpa float64) error {
	if ok, msg := student.ValidateCGPA(cgpa); !ok {
		return fmt.Errorf("%s", msg)
	}
	return s.update(roll, func(st *student.Student) { st.CGPA = cgpa })
}

func (s *Store) update(roll int, mutate func(*student.Student)) error {
	for i := range s.students {
		if s.students[i].RollNumber == roll {
			mutate(&s.students[i])
			return s.Save()
		}
	}
	return fmt.Errorf("no student with roll number %d", roll)
}

// Delete removes the record with the given roll number and saves.
func (s *Store) Delete(roll int) error {
	for i, st := range s.students {
		if st.RollNumber == roll {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("no student with roll number %d", roll)
}

// Sort reorders the collection in place by the given key and saves.
// All sorts are stable: ties keep their prior relative order.
func (s *Store) Sort(key SortKey) error {
	switch key {
	case SortByRoll:
		sort.SliceStable(s.students, func(i, j int) bool {
			return s.students[i].RollNumber < s.students[j].RollNumber
		})
	case SortByName:
		sort.SliceStable(s.students, func(i, j int) bool {
			return strings.ToLower(s.students[i].Name) < strings.ToLower(s.students[j].Name)
		})
	case SortByAge:
		sort.SliceStable(s.students, func(i, j int) bool {
			return s.students[i].Age < s.students[j].Age
		})
	case SortByCGPA:
		sort.SliceStable(s.students, func(i, j int) bool {
			return s.students[i].CGPA > s.students[j].CGPA
		})
	default:
		return fmt.Errorf("unknown sort key %d", key)
	}
	return s.Save()
}
