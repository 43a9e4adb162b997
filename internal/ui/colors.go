package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Spotify green for titles, amber for rate-limit warnings.
var styles = NewPalette("#1DB954", "#04B575", "#FF4D4F", "#FFA500", "#626262")

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

// phaseStyle picks the style used to render a progress line.
func phaseStyle(rateLimited bool) lipgloss.Style {
	if rateLimited {
		return styles.warn
	}
	return styles.help
}
