// Package export writes the collection to interchange formats. Both
// writers share the same rule: an empty collection produces no file,
// only a message for the operator.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/jeanpaul/rollbook/internal/student"
)

// ErrNoStudents signals the empty-collection no-op; callers show it to
// the operator rather than treating it as a failure.
var ErrNoStudents = fmt.Errorf("no students to export")

// CSV writes all records to path with a header row in field declaration
// order. encoding/csv handles quoting for names that need it.
func CSV(path string, students []student.Student, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if len(students) == 0 {
		return ErrNoStudents
	}

	f, err := os.Create(path)
	if err != nil {
		log.Error("csv export failed", zap.Error(err))
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(student.FieldNames()); err != nil {
		return err
	}
	for _, st := range students {
		row := []string{
			strconv.Itoa(st.RollNumber),
			st.Name,
			strconv.Itoa(st.Age),
			strconv.FormatFloat(st.CGPA, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error("csv export failed", zap.Error(err))
		return err
	}
	log.Info("exported csv", zap.String("path", path), zap.Int("records", len(students)))
	return nil
}
