package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/bucket/internal/bucket"
	"github.com/idilsaglam/bucket/internal/model"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return i.Link }
func (i listItem) FilterValue() string { return i.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	box := mutedStyle.Render(boxUnchecked)
	name := it.Name
	if it.Completed {
		box = successStyle.Render(boxChecked)
		name = doneStyle.Render(name)
	}
	line := fmt.Sprintf("%s %s", box, name)
	if it.Link != "" {
		line += "  " + mutedStyle.Render("↗ "+it.Link)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// loadedMsg ends the loading phase.
type loadedMsg struct{ state model.State }

type Model struct {
	store  *bucket.Store
	logger *slog.Logger

	loading bool
	cat     int // index into model.Categories
	list    list.Model
	width   int
	height  int

	mode    mode
	inputs  [2]textinput.Model // name, link
	focus   int
	formErr string

	// status is a one-shot notice, cleared on the next key press
	status string
}

var (
	addBind  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	doneBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	tabBind  = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "category"))
)

// New builds the model. The store is loaded by Init, not here.
func New(s *bucket.Store, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	binds := func() []key.Binding { return []key.Binding{addBind, editBind, doneBind, delBind, tabBind} }
	l.AdditionalShortHelpKeys = binds
	l.AdditionalFullHelpKeys = binds

	m := Model{
		store:   s,
		logger:  logger,
		loading: true,
		list:    l,
		width:   80,
		height:  24,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		m.inputs[i] = ti
	}
	m.inputs[0].Placeholder = "Name of the place or event"
	m.inputs[1].Placeholder = "Map link (optional)"
	m.resize()
	return m
}

// Run starts the Bubble Tea program. Every change is persisted as it
// happens, so there is nothing to save on quit.
func Run(s *bucket.Store, logger *slog.Logger) error {
	_, err := tea.NewProgram(New(s, logger), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	s := m.store
	return func() tea.Msg { return loadedMsg{state: s.Load()} }
}

// Category is the category on screen.
func (m Model) Category() model.Category { return model.Categories[m.cat] }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case loadedMsg:
		m.loading = false
		m.logger.Debug("loaded", "items", model.ComputeStats(msg.state).Overall.Total)
		return m, m.refresh()
	}
	if m.loading {
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "ctrl+c" || k.String() == "q") {
			return m, tea.Quit
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		m.status = ""
		if k.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.mode {
	case adding, editing:
		return m.updateForm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	c := m.Category()

	switch k.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right":
		m.cat = (m.cat + 1) % len(model.Categories)
		m.list.ResetFilter()
		return m, m.refresh()
	case "shift+tab", "left":
		m.cat = (m.cat + len(model.Categories) - 1) % len(model.Categories)
		m.list.ResetFilter()
		return m, m.refresh()
	case " ":
		if it, ok := m.selected(); ok {
			_, err := m.store.ToggleComplete(c, it.ID)
			m.notify(err)
			return m, m.refresh()
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok {
			_, err := m.store.DeleteItem(c, it.ID)
			m.notify(err)
			return m, m.refresh()
		}
		return m, nil
	case "a":
		m.mode = adding
		m.formErr = ""
		m.inputs[0].SetValue("")
		m.inputs[1].SetValue("")
		return m, m.focusInput(0)
	case "e":
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.BeginEdit(c, it)
		m.mode = editing
		m.formErr = ""
		m.inputs[0].SetValue(it.Name)
		m.inputs[1].SetValue(it.Link)
		m.inputs[0].CursorEnd()
		m.inputs[1].CursorEnd()
		return m, m.focusInput(0)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "shift+tab", "up", "down":
			return m, m.focusInput(1 - m.focus)
		case "esc":
			if m.mode == editing {
				m.store.CancelEdit()
			}
			m.closeForm()
			return m, nil
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[0].Value())
	link := strings.TrimSpace(m.inputs[1].Value())

	var err error
	if m.mode == adding {
		_, err = m.store.AddItem(m.Category(), name, link)
	} else {
		_, err = m.store.CommitActiveEdit(name, link)
	}
	if errors.Is(err, bucket.ErrEmptyName) {
		m.formErr = "Name cannot be empty"
		return m, nil
	}
	m.notify(err)
	m.closeForm()
	return m, m.refresh()
}

// notify turns a store error into the one-shot status line.
func (m *Model) notify(err error) {
	if err == nil {
		return
	}
	m.logger.Error("store operation failed", "err", err)
	if errors.Is(err, bucket.ErrPersist) {
		m.status = "Could not save: " + err.Error()
		return
	}
	m.status = err.Error()
}

func (m *Model) closeForm() {
	m.mode = browsing
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].SetValue("")
	}
	m.resize()
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.focus = i
	m.inputs[1-i].Blur()
	m.resize()
	return m.inputs[i].Focus()
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

// refresh rebuilds the list from the store after any change.
func (m *Model) refresh() tea.Cmd {
	c := m.Category()
	items := m.store.State()[c]
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{Item: it})
	}
	n := m.store.Stats().ByCategory[c]
	m.list.Title = fmt.Sprintf("%s  %d/%d", c.Title(), n.Completed, n.Total)
	m.list.Styles.Title = titleStyle.Foreground(categoryColor[string(c)])
	return m.list.SetItems(li)
}

func (m *Model) resize() {
	h := m.height - 6
	if m.mode != browsing {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
	for i := range m.inputs {
		m.inputs[i].Width = w - 6
	}
}

func (m Model) View() string {
	if m.loading {
		return panelString(mutedStyle.Render("Loading..."))
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.list.View())

	if m.mode != browsing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add to " + m.Category().Title()
		if m.mode == editing {
			title = "Edit item"
		}
		if m.formErr != "" {
			title += "  " + errorStyle.Render(m.formErr)
		}
		form := title + "\n" + m.inputs[0].View() + "\n" + m.inputs[1].View() +
			"\n" + helpStyle.Render("enter save • tab switch field • esc cancel")
		b.WriteString("\n")
		b.WriteString(bar.Render(form))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✖ " + m.status))
	}
	return panelString(b.String())
}

// header shows the category tabs with their counts and the overall total.
func (m Model) header() string {
	stats := m.store.Stats()
	tabs := make([]string, 0, len(model.Categories)+1)
	for i, c := range model.Categories {
		n := stats.ByCategory[c]
		label := fmt.Sprintf("%s %d/%d", c.Title(), n.Completed, n.Total)
		if i == m.cat {
			tabs = append(tabs, activeTabStyle.Foreground(categoryColor[string(c)]).Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	total := fmt.Sprintf("%s %d  %s %d  %s %d",
		successStyle.Render("✔"), stats.Overall.Completed,
		pendingStyle.Render("•"), stats.Overall.Pending(),
		accentStyle.Render("Total"), stats.Overall.Total)
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "   " + total
}

// Status and FormError expose transient notices, used by tests.
func (m Model) Status() string    { return m.status }
func (m Model) FormError() string { return m.formErr }
func (m Model) Loading() bool     { return m.loading }
