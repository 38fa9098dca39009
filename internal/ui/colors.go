package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders s in the heading style. The CLI shares these with the TUI.
func Title(s string) string { return styles.title.Render(s) }

// Success renders s in the success style.
func Success(s string) string { return styles.ok.Render(s) }

// Error renders s in the error style.
func Error(s string) string { return styles.err.Render(s) }

// Warn renders s in the warning style.
func Warn(s string) string { return styles.warn.Render(s) }

// Muted renders s in the help style.
func Muted(s string) string { return styles.help.Render(s) }
