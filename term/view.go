// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package term

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/chainvote/livesync"
	"github.com/danielhkuo/chainvote/models"
	"github.com/danielhkuo/chainvote/page"
)

const clearScreen = "\033[H\033[2J"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	fadedStyle  = lipgloss.NewStyle().Faint(true)
	footerStyle = lipgloss.NewStyle().Faint(true)

	statusColors = map[string]lipgloss.Color{
		models.ColorSuccess: lipgloss.Color("2"),
		models.ColorFailure: lipgloss.Color("1"),
	}
)

// View draws a page.Memory on a terminal
type View struct {
	doc   *page.Memory
	out   io.Writer
	clear bool
	now   func() time.Time

	mu       sync.Mutex
	lastRows [][]string
	lastText string
	updated  time.Time
}

// NewView returns a view writing to out. The screen is cleared between
// frames only when out is a terminal.
func NewView(doc *page.Memory, out io.Writer) *View {
	return &View{
		doc:   doc,
		out:   out,
		clear: isTerminal(out),
		now:   time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ObserveTick redraws once per refresh, after the page has been updated
func (v *View) ObserveTick(livesync.TickResult, time.Duration) {
	v.Draw()
}

// Draw writes one frame
func (v *View) Draw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	frame := v.render()
	if v.clear {
		frame = clearScreen + frame
	}
	fmt.Fprint(v.out, frame)
}

// Render returns the current frame without writing it
func (v *View) Render() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.render()
}

func (v *View) render() string {
	rows := v.doc.Rows()
	text, color, hasStatus := v.doc.Status()

	if !slices.EqualFunc(rows, v.lastRows, slices.Equal[[]string]) || text != v.lastText {
		v.lastRows = rows
		v.lastText = text
		v.updated = v.now()
	}

	var b strings.Builder

	if bannerText, opacity, ok := v.doc.BannerState(); ok {
		style := bannerStyle
		if opacity < 1 {
			style = fadedStyle
		}
		b.WriteString(style.Render(bannerText))
		b.WriteString("\n\n")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Candidate", "Votes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if hasStatus && text != "" {
		style := lipgloss.NewStyle()
		if c, ok := statusColors[color]; ok {
			style = style.Foreground(c)
		}
		b.WriteString(style.Render(text))
		b.WriteString("\n")
	}

	if !v.updated.IsZero() {
		b.WriteString(footerStyle.Render("results changed " + humanize.RelTime(v.updated, v.now(), "ago", "from now")))
		b.WriteString("\n")
	}
	return b.String()
}
