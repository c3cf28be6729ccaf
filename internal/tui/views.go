package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/rollbook/internal/stats"
	"github.com/jeanpaul/rollbook/internal/student"
)

// showTable switches to the table screen with the given records.
func (m *Model) showTable(title string, students []student.Student) {
	m.tableTitle = title
	m.recTable = newStudentTable(students, m.height)
	m.mode = modeTable
	m.input.Reset()
}

func newStudentTable(students []student.Student, screenHeight int) table.Model {
	columns := []table.Column{
		{Title: "Roll No", Width: 8},
		{Title: "Name", Width: 25},
		{Title: "Age", Width: 6},
		{Title: "CGPA", Width: 8},
	}

	rows := make([]table.Row, 0, len(students))
	for _, st := range students {
		rows = append(rows, table.Row{
			strconv.Itoa(st.RollNumber),
			st.Name,
			strconv.Itoa(st.Age),
			cgpaStyle(st.CGPA).Render(fmt.Sprintf("%.2f", st.CGPA)),
		})
	}

	height := len(students) + 1
	if limit := screenHeight - 14; limit > 3 && height > limit {
		height = limit
	}
	if height < 2 {
		height = 2
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(DimGreen).
		BorderBottom(true).
		Foreground(Cyan).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(White).
		Background(DimGreen).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m Model) tableView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("  "+m.tableTitle),
		"",
		m.recTable.View(),
		"",
		HelpStyle.Render("  Press Enter to return to menu..."),
	)
}

// showStats renders the summary as markdown into the viewport, the same
// way long-form content is displayed everywhere else in the app.
func (m *Model) showStats() {
	summary := stats.Compute(m.store.All())

	md := summary.Markdown()
	rendered, err := m.renderer.Render(md)
	if err != nil {
		rendered = md
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
	m.mode = modeStats
}
