package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pantry/internal/expiry"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/pantry"
	"github.com/idilsaglam/pantry/internal/views"
)

// expiringHorizon is how far ahead the expiring tab looks.
const expiringHorizon = 7

type viewMode int

const (
	batchesMode viewMode = iota
	categoryMode
	expiringMode
	recentMode
	modeCount
)

func (v viewMode) String() string {
	switch v {
	case batchesMode:
		return "Batches"
	case categoryMode:
		return "Categories"
	case expiringMode:
		return "Expiring"
	case recentMode:
		return "Recent"
	}
	return ""
}

// row adapts a pantry item to bubbles/list.Item
type row struct {
	item   model.Item
	status expiry.Status
	group  string
}

func (r row) Title() string       { return r.item.Glyph() + " " + r.item.Name }
func (r row) Description() string { return r.status.Label }
func (r row) FilterValue() string { return r.item.Name + " " + string(r.item.Category) }

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	parts := []string{r.Title()}
	if r.item.Quantity != "" {
		parts = append(parts, mutedStyle.Render(r.item.Quantity))
	}
	parts = append(parts, severityStyle(r.status.Severity).Render(r.status.Label))
	if r.group != "" {
		parts = append(parts, mutedStyle.Render("· "+r.group))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+strings.Join(parts, "  "))
}

// Model is the Bubble Tea model of the pantry browser.
type Model struct {
	store   *pantry.Store
	now     func() time.Time
	mode    viewMode
	list    list.Model
	changed bool
	status  string

	adding bool
	form   form

	width, height int
}

var (
	addBind  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	delBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	viewBind = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch view"))
)

// New builds the browser over store. now is read on every refresh.
func New(store *pantry.Store, now func() time.Time) Model {
	l := list.New(nil, rowDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, delBind, viewBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, delBind, viewBind} }

	m := Model{store: store, now: now, list: l, form: newForm(), width: 80, height: 24}
	m.refresh()
	return m
}

// Changed reports whether the store was mutated during the session.
func (m Model) Changed() bool { return m.changed }

// Run starts the browser and calls save on quit when anything changed.
func Run(store *pantry.Store, now func() time.Time, save func([]model.Batch) error) (bool, error) {
	p := tea.NewProgram(New(store, now), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	if !ok || !fm.changed {
		return false, nil
	}
	if err := save(store.Batches()); err != nil {
		return false, err
	}
	return true, nil
}

// refresh recomputes the current projection from the store.
func (m *Model) refresh() tea.Cmd {
	now := m.now()
	var rows []list.Item
	switch m.mode {
	case batchesMode:
		for _, b := range m.store.Batches() {
			label := b.Label(now)
			for _, it := range b.Items {
				rows = append(rows, row{item: it, status: expiry.Classify(it.ExpiresAt, now), group: label})
			}
		}
	case categoryMode:
		for _, g := range views.ByCategory(m.store.AllItems()) {
			for _, it := range g.Items {
				rows = append(rows, row{item: it, status: expiry.Classify(it.ExpiresAt, now), group: g.Category.Label()})
			}
		}
	case expiringMode:
		for _, e := range views.ExpiringWithin(m.store.AllItems(), expiringHorizon, now) {
			rows = append(rows, row{item: e.Item, status: e.Status})
		}
	case recentMode:
		for _, it := range views.RecentFirst(m.store.AllItems()) {
			rows = append(rows, row{item: it, status: expiry.Classify(it.ExpiresAt, now), group: model.DayKey(it.AddedAt)})
		}
	}
	m.list.Title = m.header(now)
	cmd := m.list.SetItems(rows)
	if n := len(rows); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	return cmd
}

func (m Model) header(now time.Time) string {
	counts := views.SeverityCounts(m.store.AllItems(), now)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Pantry"),
		errorStyle.Render("expired"), counts[expiry.Expired],
		pendingStyle.Render("soon"), counts[expiry.Today]+counts[expiry.Tomorrow]+counts[expiry.Soon],
		accentStyle.Render("total"), m.store.TotalCount(),
	)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateForm(msg)
	}

	// let the filter input have every key while the user types
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m, tea.Quit
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.mode = (m.mode + 1) % modeCount
			m.status = ""
			cmd := m.refresh()
			return m, cmd
		case "shift+tab":
			m.mode = (m.mode + modeCount - 1) % modeCount
			m.status = ""
			cmd := m.refresh()
			return m, cmd
		case "d":
			r, ok := m.list.SelectedItem().(row)
			if !ok {
				return m, nil
			}
			if m.store.RemoveItem(r.item.ID) {
				m.changed = true
				m.status = "removed " + r.item.Name
			}
			cmd := m.refresh()
			return m, cmd
		case "a":
			m.adding = true
			m.status = ""
			m.form = newForm()
			m.resize()
			cmd := m.form.focusField(0)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.adding = false
			m.resize()
			return m, nil
		case "tab", "down":
			cmd := m.form.focusField(m.form.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.form.focusField(m.form.focus - 1)
			return m, cmd
		case "enter":
			return m.submit()
		}
	}
	cmd := m.form.update(msg)
	return m, cmd
}

// submit hands the draft to the store; a rejected draft keeps the form open.
func (m Model) submit() (tea.Model, tea.Cmd) {
	now := m.now()
	d, field, err := m.form.draft(now)
	if err != nil {
		m.form.err = err.Error()
		cmd := m.form.focusField(field)
		return m, cmd
	}
	it, err := m.store.AddItem(d, now)
	if err != nil {
		var ve pantry.ValidationError
		if errors.As(err, &ve) && ve.Reason == pantry.MissingCategory {
			m.form.err = "Pick a category: " + categoryNames()
			cmd := m.form.focusField(fieldCategory)
			return m, cmd
		}
		m.form.err = "Name is required"
		cmd := m.form.focusField(fieldName)
		return m, cmd
	}
	m.adding = false
	m.changed = true
	m.status = "added " + it.Name
	m.resize()
	cmd := m.refresh()
	return m, cmd
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= len(m.form.inputs) + 3
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	var b strings.Builder
	for v := viewMode(0); v < modeCount; v++ {
		if v == m.mode {
			b.WriteString(activeTab.Render(v.String()))
		} else {
			b.WriteString(tabStyle.Render(v.String()))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.list.View())
	if m.adding {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(m.form.view()))
	}
	if m.status != "" {
		b.WriteString("\n" + successStyle.Render("✔ "+m.status))
	}
	return panelStyle.Render(b.String())
}

func categoryNames() string {
	var names []string
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
