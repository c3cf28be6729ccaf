package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// menuChoice mirrors the classic numeric menu: the digit keys 0-8 jump
// straight to an action, and the list is there for arrow-key people.
type menuChoice int

const (
	choiceExit menuChoice = iota
	choiceAdd
	choiceView
	choiceSearch
	choiceUpdate
	choiceDelete
	choiceSort
	choiceExport
	choiceStats
)

type item struct {
	title, desc string
	choice      menuChoice
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func newMenuList() list.Model {
	items := []list.Item{
		item{title: "1. Add New Student", desc: "Create a record with validated fields", choice: choiceAdd},
		item{title: "2. View All Students", desc: "Show every record in a table", choice: choiceView},
		item{title: "3. Search Student", desc: "By roll number, name, age or CGPA range", choice: choiceSearch},
		item{title: "4. Update Student", desc: "Change one field of a record", choice: choiceUpdate},
		item{title: "5. Delete Student", desc: "Remove a record (asks for confirmation)", choice: choiceDelete},
		item{title: "6. Sort Students", desc: "Reorder by roll, name, age or CGPA", choice: choiceSort},
		item{title: "7. Export", desc: "Write the collection to CSV or Excel", choice: choiceExport},
		item{title: "8. Statistics", desc: "Count, averages and distributions", choice: choiceStats},
		item{title: "0. Exit", desc: "Save nothing extra, just leave", choice: choiceExit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DarkGreen)

	l := list.New(items, d, 46, 30)
	l.Title = "Student Management"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Green).Bold(true).MarginLeft(2)

	return l
}
