package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist/internal/edit"
	"github.com/BuzzLyutic/tasklist/internal/filter"
	"github.com/BuzzLyutic/tasklist/internal/model"
	"github.com/BuzzLyutic/tasklist/internal/service"
	"github.com/BuzzLyutic/tasklist/internal/view"
)

// Model is the bubbletea model for the task list. Every mutation goes to the
// TaskStore synchronously inside Update; View only projects the state.
type Model struct {
	ctx    context.Context
	store  *service.TaskStore
	themes *service.ThemeService
	logger *zap.Logger

	theme    model.Theme
	criteria filter.Criteria
	cursor   int
	mode     mode
	input    textinput.Model
	editing  edit.Session

	newCategory model.Category
	newPriority model.Priority

	status   string
	errorMsg string
	width    int
	quitting bool
}

func New(ctx context.Context, store *service.TaskStore, themes *service.ThemeService, logger *zap.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48

	return Model{
		ctx:         ctx,
		store:       store,
		themes:      themes,
		logger:      logger,
		theme:       themes.Load(ctx),
		criteria:    filter.Criteria{Status: filter.StatusAll, Category: filter.CategoryAll},
		input:       ti,
		newCategory: model.CategoryPersonal,
		newPriority: model.PriorityMedium,
		status:      "Press 'a' to add a task.",
	}
}

// Run loads the persisted tasks and blocks until the user quits.
func Run(ctx context.Context, store *service.TaskStore, themes *service.ThemeService, logger *zap.Logger) error {
	store.Load(ctx)

	program := tea.NewProgram(New(ctx, store, themes, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.errorMsg = ""
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeAdd:
			return m.handleAddKeypress(msg)
		case modeEdit:
			return m.handleEditKeypress(msg)
		case modeSearch:
			return m.handleSearchKeypress(msg)
		default:
			return m.handleListKeypress(msg)
		}
	}
	return m, nil
}

func (m Model) handleListKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "What needs to be done?"
		m.input.SetValue("")
		return m, m.input.Focus()

	case " ", "x":
		if row, ok := m.selected(); ok {
			m.report("toggle", m.store.ToggleCompleted(m.ctx, row.ID))
		}

	case "e", "enter":
		if row, ok := m.selected(); ok {
			m.editing.Start(row.ID, row.Text)
			m.mode = modeEdit
			m.input.Placeholder = ""
			m.input.SetValue(row.Text)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}

	case "d":
		if row, ok := m.selected(); ok {
			err := m.store.Delete(m.ctx, row.ID)
			m.report("delete", err)
			if err == nil {
				m.status = "Deleted."
			}
		}

	case "c":
		removed, err := m.store.ClearCompleted(m.ctx)
		m.report("clear completed", err)
		m.status = fmt.Sprintf("Cleared %d completed.", removed)

	case "s":
		m.criteria.Status = filter.Next(filter.Statuses(), m.criteria.Status)

	case "f":
		m.criteria.Category = filter.Next(filter.CategoryOptions(), m.criteria.Category)

	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search"
		m.input.SetValue(m.criteria.Query)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "t":
		theme, err := m.themes.Toggle(m.ctx)
		m.report("toggle theme", err)
		m.theme = theme
	}

	m.clampCursor()
	return m, nil
}

func (m Model) handleAddKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil

	case "enter":
		_, ok, err := m.store.Create(m.ctx, m.input.Value(), m.newCategory, m.newPriority)
		m.report("create", err)
		if ok {
			m.input.SetValue("")
			m.cursor = 0
			m.status = "Added."
		}
		return m, nil

	case "tab":
		m.newCategory = filter.Next(model.Categories(), m.newCategory)
		return m, nil

	case "shift+tab":
		m.newPriority = filter.Next(model.Priorities(), m.newPriority)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleEditKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing.Cancel()
		m.leaveInput()
		m.status = "Edit cancelled."
		return m, nil

	case "enter", "tab":
		m.commitEdit()
		return m, nil

	case "up":
		m.commitEdit()
		m.moveCursor(-1)
		return m, nil

	case "down":
		m.commitEdit()
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.editing.SetBuffer(m.input.Value())
	return m, cmd
}

func (m Model) handleSearchKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.criteria.Query = ""
		m.leaveInput()
		m.clampCursor()
		return m, nil

	case "enter":
		m.leaveInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.criteria.Query = m.input.Value()
	m.clampCursor()
	return m, cmd
}

// commitEdit applies the edit buffer; a blank buffer keeps the old text.
func (m *Model) commitEdit() {
	id, text, ok := m.editing.Commit()
	m.leaveInput()
	if !ok {
		return
	}
	_, err := m.store.UpdateText(m.ctx, id, text)
	m.report("update text", err)
	m.clampCursor()
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) report(op string, err error) {
	if err == nil {
		return
	}
	m.logger.Error("storage error", zap.String("op", op), zap.Error(err))
	m.errorMsg = fmt.Sprintf("%s: changes not saved", op)
}

func (m Model) page() view.Page {
	return view.Build(m.store.Tasks(), m.criteria, m.editing.EditingID(), m.theme)
}

func (m Model) selected() (view.Row, bool) {
	rows := m.page().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		return view.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.page().Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := stylesFor(m.theme)
	p := m.page()

	var b strings.Builder
	b.WriteString(st.Title.Render("Tasks"))
	b.WriteString("\n")

	query := p.Criteria.Query
	if query == "" {
		query = "-"
	}
	b.WriteString(st.Filters.Render(fmt.Sprintf("Status: %s   Category: %s   Search: %s   Theme: %s",
		p.Criteria.Status, p.Criteria.Category, query, p.Theme)))
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(st.Box.Render(fmt.Sprintf("%s\n%s",
			m.input.View(),
			st.Badge.Render(view.Meta(model.Task{Category: m.newCategory, Priority: m.newPriority})))))
		b.WriteString("\n\n")
	}
	if m.mode == modeSearch {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if p.Empty {
		b.WriteString(st.Empty.Render(p.EmptyText))
		b.WriteString("\n")
	}
	for i, row := range p.Rows {
		b.WriteString(m.renderRow(st, row, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Status.Render(fmt.Sprintf("%d active • %d completed", p.Counts.Active, p.Counts.Completed)))
	b.WriteString("\n")
	if m.errorMsg != "" {
		b.WriteString(st.Error.Render(m.errorMsg))
	} else {
		b.WriteString(st.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(st.Help.Render(helpByMode[m.mode]))

	return b.String()
}

func (m Model) renderRow(st Styles, row view.Row, selected bool) string {
	pointer := "  "
	if selected {
		pointer = st.Selected.Render("> ")
	}

	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}

	var text string
	switch {
	case row.Editing && m.mode == modeEdit:
		text = m.input.View()
	case row.Completed:
		text = st.Done.Render(row.Text)
	case selected:
		text = st.Selected.Render(row.Text)
	default:
		text = st.Row.Render(row.Text)
	}

	return fmt.Sprintf("%s%s %s  %s", pointer, check, text, st.Badge.Render(row.Meta))
}
