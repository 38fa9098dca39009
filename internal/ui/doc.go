// Package ui implements an interactive terminal interface for a user's film list using bubbletea's Elm architecture.
//
// The TUI is the keyboard counterpart of a drag-and-drop list:
//  1. [ListView] : Browse the list, move entries with K/J and save the order with s
//  2. [SearchView] : Search the catalog and add a result (tab) or a new film (ctrl+n)
//  3. [ConfirmView] : Confirm removing the selected entry
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving results of
// [lists.Service] calls via the [Msg] union type. Reordering happens locally until saved, then the full
// id sequence is sent to [lists.Service.ApplySort] in one call.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
