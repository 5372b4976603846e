// Package tui provides a Bubble Tea terminal user interface for student-records.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/student-records/internal/config"
	"github.com/handiism/student-records/internal/model"
	"github.com/handiism/student-records/internal/report"
	"github.com/handiism/student-records/internal/shell"
	"github.com/handiism/student-records/internal/store"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StatePrompt
	StateBusy
	StateResult
)

// field identifies what the prompt is asking for.
type field int

const (
	fieldID field = iota
	fieldName
	fieldSubjects
	fieldMark
	fieldSearch
	fieldSave
	fieldLoad
)

// draft collects a student while the add prompts are answered.
type draft struct {
	id       string
	name     string
	subjects []string // raw tokens
	answers  []string // one valid mark per subject so far
}

// subject returns the trimmed subject the next mark is for.
func (d *draft) subject() string {
	return strings.TrimSpace(d.subjects[len(d.answers)])
}

// result is what the result screen shows.
type result struct {
	event shell.Event
	title string
	table string
}

// fileOpDoneMsg is sent when a save or load finishes.
type fileOpDoneMsg struct {
	op   shell.Op
	path string
	err  error
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	cursor   int
	input    textinput.Model
	field    field
	hint     string
	draft    draft
	result   result
	records  int // store size, refreshed after every mutation
	quitting bool

	ctx      context.Context
	store    *store.Store
	settings *config.Settings
	renderer *report.TableRenderer
	logger   *zap.Logger

	width int
}

// NewModel creates a new TUI model over st.
func NewModel(ctx context.Context, st *store.Store, settings *config.Settings, logger *zap.Logger) (Model, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := report.NewTableRenderer(settings.TableBorder)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	return Model{
		state:    StateMenu,
		input:    ti,
		records:  st.Len(),
		ctx:      ctx,
		store:    st,
		settings: settings,
		renderer: renderer,
		logger:   logger.Named("tui"),
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case fileOpDoneMsg:
		m.finishFileOp(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StatePrompt:
			return m.updatePrompt(msg)
		case StateResult:
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "enter", "esc":
				m.state = StateMenu
			}
		}
		return m, nil
	}

	if m.state == StatePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := shell.MenuItems()

	switch key := msg.String(); key {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		return m.choose(shell.Op(m.cursor + 1))
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(items) {
			m.cursor = int(key[0] - '1')
			return m.choose(shell.Op(m.cursor + 1))
		}
	}
	return m, nil
}

// choose starts the operation for a menu entry.
func (m Model) choose(op shell.Op) (tea.Model, tea.Cmd) {
	m.logger.Debug("menu choice", zap.Int("choice", int(op)))

	switch op {
	case shell.OpAdd:
		m.draft = draft{}
		cmd := m.prompt(fieldID, "")
		return m, cmd
	case shell.OpView:
		students, err := m.store.All()
		if err != nil {
			m.showEvent(shell.Failure(shell.OpView, err))
		} else {
			m.showTable("All Student Records", students)
		}
	case shell.OpSearch:
		cmd := m.prompt(fieldSearch, "")
		return m, cmd
	case shell.OpTop:
		students, _, err := m.store.TopPerformers()
		if err != nil {
			m.showEvent(shell.Failure(shell.OpTop, err))
		} else {
			m.showTable(shell.MsgTopHeader, students)
		}
	case shell.OpSave:
		cmd := m.prompt(fieldSave, m.settings.DataFile)
		return m, cmd
	case shell.OpLoad:
		cmd := m.prompt(fieldLoad, m.settings.DataFile)
		return m, cmd
	case shell.OpExit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// prompt switches to the prompt screen for f, prefilled with value.
func (m *Model) prompt(f field, value string) tea.Cmd {
	m.state = StatePrompt
	m.field = f
	m.hint = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.state = StateMenu
		return m, nil
	case "enter":
		return m.submit(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles the answer to the current prompt.
func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	switch m.field {
	case fieldID:
		if m.store.Exists(value) {
			m.showEvent(shell.Failure(shell.OpAdd, store.ErrDuplicateID))
			return m, nil
		}
		m.draft.id = value
		cmd := m.prompt(fieldName, "")
		return m, cmd

	case fieldName:
		m.draft.name = value
		cmd := m.prompt(fieldSubjects, "")
		return m, cmd

	case fieldSubjects:
		m.draft.subjects = model.SplitSubjects(value)
		cmd := m.prompt(fieldMark, "")
		return m, cmd

	case fieldMark:
		if _, err := model.ParseMark(value); err != nil {
			m.hint = shell.MarkRejected(err)
			m.input.SetValue("")
			return m, nil
		}
		m.draft.answers = append(m.draft.answers, value)
		if len(m.draft.answers) < len(m.draft.subjects) {
			cmd := m.prompt(fieldMark, "")
			return m, cmd
		}
		m.addDraft()
		return m, nil

	case fieldSearch:
		student, err := m.store.FindByID(value)
		if err != nil {
			m.showEvent(shell.Failure(shell.OpSearch, err))
		} else {
			m.showTable("Student "+student.ID, []*model.Student{student})
		}
		return m, nil

	case fieldSave:
		return m.startFileOp(shell.OpSave, strings.TrimSpace(value))

	case fieldLoad:
		return m.startFileOp(shell.OpLoad, strings.TrimSpace(value))
	}
	return m, nil
}

// addDraft stores the collected student.
func (m *Model) addDraft() {
	marks := &store.ScriptedMarks{Answers: m.draft.answers}
	student, err := m.store.Add(m.draft.id, m.draft.name, m.draft.subjects, marks)
	if err != nil {
		m.showEvent(shell.Failure(shell.OpAdd, err))
		return
	}
	m.records = m.store.Len()
	m.showTable("", []*model.Student{student})
	m.result.event = shell.Event{Message: shell.MsgAdded, Level: shell.LevelSuccess}
}

// startFileOp runs a save or load in the background.
func (m Model) startFileOp(op shell.Op, path string) (tea.Model, tea.Cmd) {
	m.input.Blur()
	m.state = StateBusy

	ctx, st := m.ctx, m.store
	return m, func() tea.Msg {
		var err error
		if op == shell.OpSave {
			err = st.Save(ctx, path)
		} else {
			err = st.Load(ctx, path)
		}
		return fileOpDoneMsg{op: op, path: path, err: err}
	}
}

func (m *Model) finishFileOp(msg fileOpDoneMsg) {
	m.records = m.store.Len()
	switch {
	case msg.err != nil:
		m.showEvent(shell.Failure(msg.op, msg.err))
	case msg.op == shell.OpSave:
		m.showEvent(shell.Saved(msg.path))
	default:
		m.showEvent(shell.Loaded(msg.path))
	}
}

func (m *Model) showEvent(e shell.Event) {
	m.input.Blur()
	m.state = StateResult
	m.result = result{event: e}
}

func (m *Model) showTable(title string, students []*model.Student) {
	m.input.Blur()
	m.state = StateResult
	m.result = result{title: title, table: m.renderer.Render(students)}
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return shell.MsgGoodbye + "\n"
	}

	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Smart Student Record System"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d record(s) in memory", m.records)))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StatePrompt:
		b.WriteString(m.viewPrompt())
	case StateBusy:
		b.WriteString(infoStyle.Render("Working..."))
		b.WriteString("\n")
	case StateResult:
		b.WriteString(m.viewResult())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Menu:"))
	b.WriteString("\n")
	for i, item := range shell.MenuItems() {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.promptLabel()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.hint != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.hint))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) promptLabel() string {
	switch m.field {
	case fieldID:
		return "Enter Student ID:"
	case fieldName:
		return "Enter Name:"
	case fieldSubjects:
		return "Enter Subjects (comma-separated):"
	case fieldMark:
		return fmt.Sprintf("Enter marks for %s (%d/%d):",
			m.draft.subject(), len(m.draft.answers)+1, len(m.draft.subjects))
	case fieldSearch:
		return "Enter Student ID to search:"
	case fieldSave:
		return "Enter the filename to save records (e.g., students.json):"
	case fieldLoad:
		return "Enter the filename to load records from (e.g., students.json):"
	}
	return ""
}

func (m Model) viewResult() string {
	var b strings.Builder

	if m.result.event.Message != "" {
		b.WriteString(renderEvent(m.result.event))
		b.WriteString("\n")
	}
	if m.result.title != "" {
		b.WriteString(subtitleStyle.Render(m.result.title))
		b.WriteString("\n")
	}
	if m.result.table != "" {
		b.WriteString(m.result.table)
		b.WriteString("\n")
	}

	return b.String()
}

func renderEvent(e shell.Event) string {
	var style lipgloss.Style
	prefix := "•"
	switch e.Level {
	case shell.LevelError:
		style = errorStyle
		prefix = "✗"
	case shell.LevelWarning:
		style = warningStyle
		prefix = "!"
	case shell.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case shell.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + e.Message)
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateMenu:
		return "↑/↓: move • enter/1-7: choose • q: quit"
	case StatePrompt:
		return "enter: submit • esc: cancel • ctrl+c: quit"
	case StateBusy:
		return "ctrl+c: quit"
	case StateResult:
		return "enter: back to menu • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(ctx context.Context, st *store.Store, settings *config.Settings, logger *zap.Logger) error {
	m, err := NewModel(ctx, st, settings, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
