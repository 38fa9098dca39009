package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/films/internal/lists"
	"github.com/desertthunder/films/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	SearchView
	ConfirmView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	lists    lists.Service
	userID   string
	username string
	width    int
	height   int
	entries  list.Model
	results  list.Model
	input    textinput.Model
	dirty    bool
	pending  *models.Entry
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model editing userID's list.
func NewModel(ctx context.Context, svc lists.Service, userID, username string) *Model {
	input := textinput.New()
	input.Placeholder = "Film name"
	input.CharLimit = models.MaxFilmNameLength

	entries := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	entries.Title = fmt.Sprintf("Films of %s", username)
	entries.SetFilteringEnabled(false)
	entries.SetShowHelp(false)

	results := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Catalog"
	results.SetFilteringEnabled(false)
	results.SetShowHelp(false)

	return &Model{
		ctx:      ctx,
		view:     ListView,
		lists:    svc,
		userID:   userID,
		username: username,
		entries:  entries,
		results:  results,
		input:    input,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by loading the user's list.
func (m *Model) Init() tea.Cmd {
	return m.loadEntries()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entries.SetSize(msg.Width-4, msg.Height-6)
		m.results.SetSize(msg.Width-4, msg.Height-9)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgEntriesLoaded:
		res := msg.data.(entriesResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.dirty = false
		return m, m.entries.SetItems(entryItems(res.entries))

	case MsgSorted:
		res := msg.data.(entriesResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.dirty = false
		m.err = nil
		m.status = "Saved order"
		return m, m.entries.SetItems(entryItems(res.entries))

	case MsgRemoved:
		res := msg.data.(entryResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Deleted %q from the list of films", res.entry.Name)
		return m, m.loadEntries()

	case MsgSearched:
		res := msg.data.(searchResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("%d results for %q", len(res.films), res.query)
		return m, m.results.SetItems(filmItems(res.films))

	case MsgAdded:
		res := msg.data.(entryResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.err = nil
		if res.added {
			m.status = fmt.Sprintf("Added %q to the list of films", res.entry.Name)
		} else {
			m.status = fmt.Sprintf("%q is already in the list", res.entry.Name)
		}
		m.view = ListView
		m.input.Blur()
		return m, m.loadEntries()
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case ListView:
		body = m.renderList()
	case SearchView:
		body = m.renderSearch()
	case ConfirmView:
		body = m.renderConfirm()
	}

	return fmt.Sprintf("%s\n%s", body, m.renderStatus())
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.moveUp):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.save):
		if !m.dirty {
			m.status = "Order unchanged"
			return m, nil
		}
		return m, m.applySort(itemIDs(m.entries.Items()))
	case key.Matches(msg, m.keys.remove):
		if selected, ok := m.entries.SelectedItem().(entryItem); ok {
			entry := selected.entry
			m.pending = &entry
			m.view = ConfirmView
		}
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.input.SetValue("")
		m.results.SetItems(nil)
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.reload):
		m.status = ""
		m.err = nil
		return m, m.loadEntries()
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.search(m.input.Value())
	case key.Matches(msg, m.keys.add):
		if selected, ok := m.results.SelectedItem().(filmItem); ok {
			return m, m.add(selected.film.Name)
		}
		return m, nil
	case key.Matches(msg, m.keys.addName):
		return m, m.add(m.input.Value())
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.yes):
		entry := m.pending
		m.pending = nil
		m.view = ListView
		if entry == nil {
			return m, nil
		}
		return m, m.remove(entry.ID)
	case key.Matches(msg, m.keys.no):
		m.pending = nil
		m.view = ListView
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ListView:
		m.entries, cmd = m.entries.Update(msg)
	case SearchView:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// move shifts the selected entry by delta positions without saving.
func (m *Model) move(delta int) {
	items := m.entries.Items()
	i := m.entries.Index()
	j := i + delta
	if i < 0 || j < 0 || j >= len(items) {
		return
	}

	m.entries.SetItems(swapItems(items, i, j))
	m.entries.Select(j)
	m.dirty = true
	m.status = "Unsaved order, press s to save"
}

func (m *Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.lists.List(m.ctx, m.userID, models.Page{})
		return entriesLoadedMsg(entries, err)
	}
}

func (m *Model) applySort(ids []int64) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.lists.ApplySort(m.ctx, m.userID, ids)
		return sortedMsg(entries, err)
	}
}

func (m *Model) remove(id int64) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.lists.Remove(m.ctx, m.userID, id)
		return removedMsg(entry, err)
	}
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		films, err := m.lists.Search(m.ctx, m.userID, query)
		return searchedMsg(query, films, err)
	}
}

func (m *Model) add(name string) tea.Cmd {
	return func() tea.Msg {
		entry, added, err := m.lists.Add(m.ctx, m.userID, name)
		return addedMsg(entry, added, err)
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.moveUp, m.keys.moveDown, m.keys.save, m.keys.remove, m.keys.search, m.keys.reload, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.entries.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search the catalog")
	helpKeys := []key.Binding{m.keys.enter, m.keys.add, m.keys.addName, m.keys.back}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.input.View(), m.results.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}
	title := styles.title.Render(fmt.Sprintf("Remove %q from your list?", m.pending.Name))
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s", title, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.dirty:
		return styles.warn.Render(m.status)
	case m.status != "":
		return styles.ok.Render(m.status)
	default:
		return ""
	}
}
