package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/films/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgEntriesLoaded MsgKind = iota
	MsgSorted
	MsgRemoved
	MsgSearched
	MsgAdded
)

type entriesResult struct {
	entries []models.Entry
	err     error
}

type entryResult struct {
	entry models.Entry
	added bool
	err   error
}

type searchResult struct {
	query string
	films []models.Film
	err   error
}

// entriesLoadedMsg is the constructor for [MsgEntriesLoaded]
func entriesLoadedMsg(entries []models.Entry, err error) Msg {
	return Msg{kind: MsgEntriesLoaded, data: entriesResult{entries, err}}
}

// sortedMsg is the constructor for [MsgSorted]
func sortedMsg(entries []models.Entry, err error) Msg {
	return Msg{kind: MsgSorted, data: entriesResult{entries, err}}
}

// removedMsg is the constructor for [MsgRemoved]
func removedMsg(entry models.Entry, err error) Msg {
	return Msg{kind: MsgRemoved, data: entryResult{entry: entry, err: err}}
}

// searchedMsg is the constructor for [MsgSearched]
func searchedMsg(query string, films []models.Film, err error) Msg {
	return Msg{kind: MsgSearched, data: searchResult{query, films, err}}
}

// addedMsg is the constructor for [MsgAdded]
func addedMsg(entry models.Entry, added bool, err error) Msg {
	return Msg{kind: MsgAdded, data: entryResult{entry, added, err}}
}
