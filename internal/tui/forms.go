package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/rollbook/internal/export"
	"github.com/jeanpaul/rollbook/internal/store"
	"github.com/jeanpaul/rollbook/internal/student"
)

type formKind int

const (
	formNone formKind = iota
	formAdd
	formSearch
	formUpdate
	formDelete
	formSort
	formExport
)

// form is the state of one prompt sequence. Invalid input never aborts a
// form: the step stays put, errMsg explains, and the operator tries again.
type form struct {
	kind   formKind
	step   int
	errMsg string

	draft  student.Student // add: fields collected so far
	search int             // search: submenu choice
	lo     int             // search: age range low end
	loF    float64         // search: cgpa range low end
	target student.Student // update/delete: located record
	field  int             // update: which field to change
}

func (m *Model) startForm(kind formKind) {
	m.form = form{kind: kind}
	m.mode = modeForm
	m.input.Reset()
	m.input.Focus()
}

func (m *Model) finishForm(status string) {
	m.form = form{}
	m.mode = modeMenu
	m.input.Reset()
	m.status = status
}

func (m *Model) failStep(msg string) {
	m.form.errMsg = msg
	m.input.Reset()
}

func (m Model) submitForm(raw string) (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(raw)
	m.form.errMsg = ""

	switch m.form.kind {
	case formAdd:
		m.submitAdd(value)
	case formSearch:
		m.submitSearch(value)
	case formUpdate:
		m.submitUpdate(value)
	case formDelete:
		m.submitDelete(value)
	case formSort:
		m.submitSort(value)
	case formExport:
		m.submitExport(value)
	}
	return m, nil
}

// --- Add ---

func (m *Model) submitAdd(value string) {
	f := &m.form
	switch f.step {
	case 0:
		if ok, msg := student.ValidateName(value); !ok {
			m.failStep(msg)
			return
		}
		f.draft.Name = value
	case 1:
		roll, err := strconv.Atoi(value)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		if ok, msg := student.ValidateRollNumber(roll, m.store.HasRoll); !ok {
			m.failStep(msg)
			return
		}
		f.draft.RollNumber = roll
	case 2:
		age, err := strconv.Atoi(value)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		if ok, msg := student.ValidateAge(age); !ok {
			m.failStep(msg)
			return
		}
		f.draft.Age = age
	case 3:
		cgpa, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		if ok, msg := student.ValidateCGPA(cgpa); !ok {
			m.failStep(msg)
			return
		}
		f.draft.CGPA = cgpa

		if err := m.store.Add(f.draft); err != nil {
			m.finishForm(ErrorStyle.Render("Error saving student: " + err.Error()))
			return
		}
		m.finishForm(SuccessStyle.Render("Student added successfully!"))
		return
	}
	f.step++
	m.input.Reset()
}

// --- Search ---

func (m *Model) submitSearch(value string) {
	f := &m.form
	if f.step == 0 {
		choice, err := strconv.Atoi(value)
		if err != nil || choice < 1 || choice > 5 {
			m.failStep("Enter a choice between 1 and 5.")
			return
		}
		if choice == 5 {
			m.finishForm("")
			return
		}
		f.search = choice
		f.step++
		m.input.Reset()
		return
	}

	switch f.search {
	case 1: // roll number
		roll, err := strconv.Atoi(value)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		st, ok := m.store.FindByRoll(roll)
		if !ok {
			m.finishForm(WarnStyle.Render("No student found with this roll number."))
			return
		}
		m.form = form{}
		m.showTable("Search Result", []student.Student{st})
	case 2: // name substring
		matches := m.store.SearchName(value)
		if len(matches) == 0 {
			m.finishForm(WarnStyle.Render("No matching students found."))
			return
		}
		m.form = form{}
		m.showTable("Search Results", matches)
	case 3: // age range
		n, err := strconv.Atoi(value)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		if f.step == 1 {
			f.lo = n
			f.step++
			m.input.Reset()
			return
		}
		matches := m.store.SearchAgeRange(f.lo, n)
		if len(matches) == 0 {
			m.finishForm(WarnStyle.Render("No students in this age range."))
			return
		}
		m.form = form{}
		m.showTable("Search Results", matches)
	case 4: // cgpa range
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		if f.step == 1 {
			f.loF = v
			f.step++
			m.input.Reset()
			return
		}
		matches := m.store.SearchCGPARange(f.loF, v)
		if len(matches) == 0 {
			m.finishForm(WarnStyle.Render("No students in this CGPA range."))
			return
		}
		m.form = form{}
		m.showTable("Search Results", matches)
	}
}

// --- Update ---

func (m *Model) submitUpdate(value string) {
	f := &m.form
	switch f.step {
	case 0:
		roll, err := strconv.Atoi(value)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		st, ok := m.store.FindByRoll(roll)
		if !ok {
			m.failStep("No student found with this roll number.")
			return
		}
		f.target = st
		f.step++
		m.input.Reset()
	case 1:
		choice, err := strconv.Atoi(value)
		if err != nil || choice < 1 || choice > 4 {
			m.failStep("Enter a choice between 1 and 4.")
			return
		}
		if choice == 4 {
			m.finishForm(InfoStyle.Render("Update cancelled."))
			return
		}
		f.field = choice
		f.step++
		m.input.Reset()
	case 2:
		var err error
		var label string
		switch f.field {
		case 1:
			label = "Name"
			err = m.store.UpdateName(f.target.RollNumber, value)
		case 2:
			label = "Age"
			var age int
			if age, err = strconv.Atoi(value); err != nil {
				m.failStep("Please enter a valid number.")
				return
			}
			err = m.store.UpdateAge(f.target.RollNumber, age)
		case 3:
			label = "CGPA"
			var cgpa float64
			if cgpa, err = strconv.ParseFloat(value, 64); err != nil {
				m.failStep("Please enter a valid number.")
				return
			}
			err = m.store.UpdateCGPA(f.target.RollNumber, cgpa)
		}
		if err != nil {
			m.failStep(err.Error())
			return
		}
		m.finishForm(SuccessStyle.Render(label + " updated successfully!"))
	}
}

// --- Delete ---

func (m *Model) submitDelete(value string) {
	f := &m.form
	switch f.step {
	case 0:
		roll, err := strconv.Atoi(value)
		if err != nil {
			m.failStep("Please enter a valid number.")
			return
		}
		st, ok := m.store.FindByRoll(roll)
		if !ok {
			m.failStep("No student found with this roll number.")
			return
		}
		f.target = st
		f.step++
		m.input.Reset()
	case 1:
		if strings.EqualFold(value, "y") {
			if err := m.store.Delete(f.target.RollNumber); err != nil {
				m.finishForm(ErrorStyle.Render("Error deleting student: " + err.Error()))
				return
			}
			m.finishForm(SuccessStyle.Render("Student deleted successfully!"))
			return
		}
		m.finishForm(InfoStyle.Render("Deletion cancelled."))
	}
}

// --- Sort ---

func (m *Model) submitSort(value string) {
	choice, err := strconv.Atoi(value)
	if err != nil || choice < 1 || choice > 5 {
		m.failStep("Enter a choice between 1 and 5.")
		return
	}
	if choice == 5 {
		m.finishForm(InfoStyle.Render("Sorting cancelled."))
		return
	}

	keys := map[int]store.SortKey{
		1: store.SortByRoll,
		2: store.SortByName,
		3: store.SortByAge,
		4: store.SortByCGPA,
	}
	labels := map[int]string{
		1: "Roll Number", 2: "Name", 3: "Age", 4: "CGPA",
	}

	if err := m.store.Sort(keys[choice]); err != nil {
		m.finishForm(ErrorStyle.Render("Error sorting: " + err.Error()))
		return
	}
	m.form = form{}
	m.status = SuccessStyle.Render("Sorted by " + labels[choice] + "!")
	m.showTable("All Student Records", m.store.All())
}

// --- Export ---

func (m *Model) submitExport(value string) {
	choice, err := strconv.Atoi(value)
	if err != nil || choice < 1 || choice > 3 {
		m.failStep("Enter a choice between 1 and 3.")
		return
	}

	switch choice {
	case 1:
		if err := export.CSV(m.cfg.CSVExport, m.store.All(), m.log); err != nil {
			m.finishForm(ErrorStyle.Render("Error exporting: " + err.Error()))
			return
		}
		m.finishForm(SuccessStyle.Render("Students exported to " + m.cfg.CSVExport))
	case 2:
		if err := export.XLSX(m.cfg.XLSXExport, m.store.All(), m.log); err != nil {
			m.finishForm(ErrorStyle.Render("Error exporting: " + err.Error()))
			return
		}
		m.finishForm(SuccessStyle.Render("Students exported to " + m.cfg.XLSXExport))
	case 3:
		m.finishForm("")
	}
}

// --- Rendering ---

func (m Model) formView() string {
	title, prompt, context := m.formCopy()

	parts := []string{TitleStyle.Render("  " + title), ""}
	if context != "" {
		parts = append(parts, context, "")
	}
	parts = append(parts,
		"  "+prompt,
		"  "+InputBoxStyle.Render(m.input.View()),
	)
	if m.form.errMsg != "" {
		parts = append(parts, "  "+ErrorStyle.Render(m.form.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// formCopy returns the title, prompt, and optional context block for the
// current form step.
func (m Model) formCopy() (title, prompt, context string) {
	f := m.form
	switch f.kind {
	case formAdd:
		title = "Add New Student"
		prompts := []string{
			"Enter Student's Name:",
			"Enter Student's Roll Number:",
			"Enter Student's Age:",
			"Enter Student's CGPA (0.0-4.0):",
		}
		prompt = prompts[f.step]

	case formSearch:
		title = "Search Student"
		if f.step == 0 {
			prompt = "Enter your choice [1-5]:"
			context = menuBlock(
				"1. Roll Number",
				"2. Name",
				"3. Age Range",
				"4. CGPA Range",
				"5. Back to Menu",
			)
			return
		}
		switch f.search {
		case 1:
			prompt = "Enter Roll Number:"
		case 2:
			prompt = "Enter Name (partial matches accepted):"
		case 3:
			if f.step == 1 {
				prompt = "Minimum Age:"
			} else {
				prompt = "Maximum Age:"
			}
		case 4:
			if f.step == 1 {
				prompt = "Minimum CGPA:"
			} else {
				prompt = "Maximum CGPA:"
			}
		}

	case formUpdate:
		title = "Update Student"
		switch f.step {
		case 0:
			prompt = "Enter Roll Number:"
		case 1:
			prompt = "Select field to update [1-4]:"
			context = menuBlock(
				fmt.Sprintf("1. Name: %s", f.target.Name),
				fmt.Sprintf("2. Age: %d", f.target.Age),
				fmt.Sprintf("3. CGPA: %.2f", f.target.CGPA),
				"4. Cancel",
			)
		case 2:
			prompts := map[int]string{1: "New Name:", 2: "New Age:", 3: "New CGPA:"}
			prompt = prompts[f.field]
		}

	case formDelete:
		title = "Delete Student"
		if f.step == 0 {
			prompt = "Enter Roll Number:"
		} else {
			prompt = ConfirmStyle.Render(
				fmt.Sprintf("Are you sure you want to delete %s? (y/n):", f.target.Name))
		}

	case formSort:
		title = "Sort Students"
		prompt = "Enter your choice [1-5]:"
		context = menuBlock(
			"1. Roll Number (Ascending)",
			"2. Name (A-Z)",
			"3. Age (Youngest first)",
			"4. CGPA (Highest first)",
			"5. Cancel",
		)

	case formExport:
		title = "Export Students"
		prompt = "Enter your choice [1-3]:"
		context = menuBlock(
			"1. CSV ("+m.cfg.CSVExport+")",
			"2. Excel ("+m.cfg.XLSXExport+")",
			"3. Cancel",
		)
	}
	return
}

func menuBlock(lines ...string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("    " + line)
	}
	return InfoStyle.Render(b.String())
}
