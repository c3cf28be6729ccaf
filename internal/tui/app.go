package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeanpaul/rollbook/internal/config"
	"github.com/jeanpaul/rollbook/internal/store"
)

type mode int

const (
	modeMenu mode = iota
	modeForm
	modeTable
	modeStats
)

// Farewell is printed when the operator picks Exit; main echoes it after
// the program returns because the alt screen is discarded on quit.
const Farewell = "Thank you for using the Student Management System!"

type Model struct {
	cfg   *config.Config
	store *store.Store
	log   *zap.Logger

	width, height int
	mode          mode

	menu     list.Model
	input    textinput.Model
	recTable table.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	form       form
	status     string // styled flash line under the active screen
	tableTitle string
	quitting   bool
}

func NewModel(cfg *config.Config, st *store.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 64
	ti.Width = 40

	vp := viewport.New(80, 20)

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	m := Model{
		cfg:      cfg,
		store:    st,
		log:      log,
		mode:     modeMenu,
		menu:     newMenuList(),
		input:    ti,
		viewport: vp,
		renderer: r,
	}

	if err := st.LoadError(); err != nil {
		m.status = ErrorStyle.Render("Error loading student records: " + err.Error())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 12
		m.menu.SetSize(46, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeTable:
			return m.updateTable(msg)
		case modeStats:
			return m.updateStats(msg)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "0", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8":
		return m.dispatch(menuChoice(msg.String()[0] - '0'))
	case "enter":
		if it, ok := m.menu.SelectedItem().(item); ok {
			return m.dispatch(it.choice)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// dispatch routes a menu choice to its screen. Queries against an empty
// collection bounce back to the menu with a message instead of opening
// a screen.
func (m Model) dispatch(choice menuChoice) (tea.Model, tea.Cmd) {
	m.status = ""

	empty := m.store.Len() == 0
	switch choice {
	case choiceView, choiceSearch, choiceUpdate, choiceDelete, choiceSort, choiceStats:
		if empty {
			m.status = WarnStyle.Render("No students found.")
			return m, nil
		}
	case choiceExport:
		if empty {
			m.status = WarnStyle.Render("No students to export.")
			return m, nil
		}
	}

	switch choice {
	case choiceExit:
		m.quitting = true
		return m, tea.Quit
	case choiceAdd:
		m.startForm(formAdd)
	case choiceView:
		m.showTable("All Student Records", m.store.All())
	case choiceSearch:
		m.startForm(formSearch)
	case choiceUpdate:
		m.startForm(formUpdate)
	case choiceDelete:
		m.startForm(formDelete)
	case choiceSort:
		m.startForm(formSort)
	case choiceExport:
		m.startForm(formExport)
	case choiceStats:
		m.showStats()
	}
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.form = form{}
		m.input.Reset()
		m.status = InfoStyle.Render("Cancelled.")
		return m, nil
	case tea.KeyEnter:
		return m.submitForm(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "q":
		m.mode = modeMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.recTable, cmd = m.recTable.Update(msg)
	return m, cmd
}

func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "q":
		m.mode = modeMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return SuccessStyle.Render(Farewell) + "\n"
	}

	header := m.header()

	var body string
	switch m.mode {
	case modeMenu:
		body = m.menu.View()
	case modeForm:
		body = m.formView()
	case modeTable:
		body = m.tableView()
	case modeStats:
		body = m.viewport.View() + "\n" + HelpStyle.Render("  Press Enter to return to menu...")
	}

	parts := []string{header, body}
	if m.status != "" {
		parts = append(parts, "  "+m.status)
	}
	parts = append(parts, m.helpLine())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) header() string {
	sub := fmt.Sprintf("  %s  •  %d students", m.cfg.DataFile, m.store.Len())
	return lipgloss.JoinVertical(lipgloss.Left,
		BannerStyle.Render(Banner),
		InfoStyle.Render(sub),
		SeparatorStyle.Render("  "+strings.Repeat("─", 60)),
	)
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeMenu:
		return HelpStyle.Render("  0-8: choose  •  ↑/↓ + Enter  •  Esc: quit")
	case modeForm:
		return HelpStyle.Render("  Enter: submit  •  Esc: back to menu")
	default:
		return HelpStyle.Render("  Enter: back to menu")
	}
}

