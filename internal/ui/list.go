package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/films/internal/models"
)

var (
	_ list.Item = entryItem{}
	_ list.Item = filmItem{}
)

// entryItem wraps [models.Entry] to implement [list.Item].
type entryItem struct {
	entry models.Entry
}

func (i entryItem) FilterValue() string { return i.entry.Name }
func (i entryItem) Title() string       { return i.entry.Name }
func (i entryItem) Description() string {
	desc := fmt.Sprintf("#%d", i.entry.Order)
	if i.entry.Photo != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.entry.Photo)
	}
	return desc
}

// filmItem wraps a catalog [models.Film] search result to implement [list.Item].
type filmItem struct {
	film models.Film
}

func (i filmItem) FilterValue() string { return i.film.Name }
func (i filmItem) Title() string       { return i.film.Name }
func (i filmItem) Description() string {
	if i.film.Photo != "" {
		return i.film.Photo
	}
	return "in catalog"
}

func entryItems(entries []models.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}

func filmItems(films []models.Film) []list.Item {
	items := make([]list.Item, len(films))
	for i, f := range films {
		items[i] = filmItem{film: f}
	}
	return items
}

// swapItems returns a copy of items with positions i and j exchanged.
func swapItems(items []list.Item, i, j int) []list.Item {
	out := make([]list.Item, len(items))
	copy(out, items)
	out[i], out[j] = out[j], out[i]
	return out
}

// itemIDs returns the membership IDs of entry items in display order.
func itemIDs(items []list.Item) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if e, ok := item.(entryItem); ok {
			ids = append(ids, e.entry.ID)
		}
	}
	return ids
}
