// Package browse implements an interactive Bubble Tea browser over the
// contact book: move through contacts, filter them, and delete entries.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contacts/internal/contact"
)

// Book is the contact store the browser reads and mutates.
type Book interface {
	List() []contact.Contact
	Remove(c contact.Contact) bool
	Save() error
}

// Mode is the browser's input mode.
type Mode int

const (
	ModeList Mode = iota
	ModeFilter
	ModeConfirm
)

// Model is the Bubble Tea model for the contact browser.
type Model struct {
	book          Book
	mode          Mode
	cursor        int
	filter        textinput.Model
	help          help.Model
	listKeys      listKeys
	filterKeys    filterKeys
	confirmKeys   confirmKeys
	confirmDelete bool
	status        string
	width         int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithConfirmDelete sets whether deletions ask for y/n confirmation.
func WithConfirmDelete(confirm bool) ModelOption {
	return func(m *Model) { m.confirmDelete = confirm }
}

// NewModel creates a browser over book in list mode.
func NewModel(book Book, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name, phone or email"

	m := Model{
		book:          book,
		filter:        ti,
		help:          help.New(),
		listKeys:      ListKeyMap(),
		filterKeys:    FilterKeyMap(),
		confirmKeys:   ConfirmKeyMap(),
		confirmDelete: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeConfirm:
			return m.updateConfirm(msg), nil
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.Visible()
	switch {
	case key.Matches(msg, m.listKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.listKeys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.listKeys.Filter):
		m.mode = ModeFilter
		m.status = ""
		cmd := m.filter.Focus()
		return m, cmd
	case key.Matches(msg, m.listKeys.Delete):
		if len(visible) == 0 {
			return m, nil
		}
		if m.confirmDelete {
			m.mode = ModeConfirm
			return m, nil
		}
		return m.deleteSelected(), nil
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.filterKeys.Apply):
		m.mode = ModeList
		m.filter.Blur()
		return m, nil
	case key.Matches(msg, m.filterKeys.Clear):
		m.mode = ModeList
		m.filter.Blur()
		m.filter.SetValue("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.confirmKeys.Yes):
		m.mode = ModeList
		return m.deleteSelected()
	case key.Matches(msg, m.confirmKeys.No):
		m.mode = ModeList
		m.status = "Delete cancelled."
	}
	return m
}

// deleteSelected removes the contact under the cursor and saves the book.
func (m Model) deleteSelected() Model {
	c, ok := m.Selected()
	if !ok {
		return m
	}
	if !m.book.Remove(c) {
		m.status = fmt.Sprintf("Contact '%s' not found.", c.Name)
		return m
	}
	if err := m.book.Save(); err != nil {
		m.status = fmt.Sprintf("Deleted '%s' but saving failed: %v", c.Name, err)
	} else {
		m.status = fmt.Sprintf("Contact '%s' deleted.", c.Name)
	}
	if n := len(m.Visible()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	return m
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Status returns the last status line.
func (m Model) Status() string {
	return m.status
}

// Visible returns the contacts that pass the current filter, in book order.
// The filter is a case-insensitive substring match on name, phone, and email.
func (m Model) Visible() []contact.Contact {
	all := m.book.List()
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		return all
	}
	var out []contact.Contact
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Phone), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// Selected returns the contact under the cursor.
func (m Model) Selected() (contact.Contact, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return contact.Contact{}, false
	}
	return visible[m.cursor], true
}

// View renders the contact list, the selected contact, and the help bar.
func (m Model) View() string {
	var b strings.Builder

	visible := m.Visible()
	total := len(m.book.List())
	b.WriteString(titleStyle.Render(fmt.Sprintf("Contacts (%d/%d)", len(visible), total)))
	b.WriteString("\n")

	if m.mode == ModeFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(visible) == 0 {
		if total == 0 {
			b.WriteString(dimStyle.Render("  No contacts found."))
		} else {
			b.WriteString(dimStyle.Render("  No contacts match the filter."))
		}
		b.WriteString("\n")
	}
	for i, c := range visible {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + c.Name))
		} else {
			b.WriteString("  " + c.Name)
		}
		b.WriteString("\n")
	}

	if c, ok := m.Selected(); ok {
		detail := fmt.Sprintf("Name:  %s\nPhone: %s\nEmail: %s", c.Name, c.Phone, c.Email)
		b.WriteString("\n")
		b.WriteString(DetailBorder().Render(detail))
		b.WriteString("\n")
	}

	if m.mode == ModeConfirm {
		if c, ok := m.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(warnStyle.Render(fmt.Sprintf("Delete '%s'? [y/n]", c.Name)))
			b.WriteString("\n")
		}
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.helpBindings()))

	return lipgloss.NewStyle().MaxWidth(m.maxWidth()).Render(b.String())
}

// helpBindings returns the help.KeyMap for the current mode.
func (m Model) helpBindings() help.KeyMap {
	switch m.mode {
	case ModeFilter:
		return m.filterKeys
	case ModeConfirm:
		return m.confirmKeys
	default:
		return m.listKeys
	}
}

func (m Model) maxWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width
}
