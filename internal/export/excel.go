package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jeanpaul/rollbook/internal/student"
)

const sheetName = "Students"

// XLSX writes all records to a styled spreadsheet: bold header, frozen
// header row, two-decimal CGPA column. Same empty-collection rule as CSV.
func XLSX(path string, students []student.Student, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if len(students) == 0 {
		return ErrNoStudents
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	// Drop the default Sheet1.
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9EAD3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, name := range student.FieldNames() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	cgpaStyle, err := f.NewStyle(&excelize.Style{DecimalPlaces: intPtr(2)})
	if err != nil {
		return err
	}

	for i, st := range students {
		row := i + 2
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &[]any{
			st.RollNumber, st.Name, st.Age, st.CGPA,
		}); err != nil {
			return err
		}
		cell := fmt.Sprintf("D%d", row)
		_ = f.SetCellStyle(sheetName, cell, cell, cgpaStyle)
	}

	if err := f.SaveAs(path); err != nil {
		log.Error("xlsx export failed", zap.Error(err))
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info("exported xlsx", zap.String("path", path), zap.Int("records", len(students)))
	return nil
}

func intPtr(n int) *int { return &n }
