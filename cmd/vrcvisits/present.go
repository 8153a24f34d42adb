package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/graaaaa/vrcvisits/internal/visit"
)

// presenter prints visits as aligned, optionally coloured rows.
// Colour is dropped automatically when out is not a terminal.
type presenter struct {
	out   io.Writer
	clock visit.Clock

	indexStyle  lipgloss.Style
	whenStyle   lipgloss.Style
	openStyle   lipgloss.Style
	closedStyle lipgloss.Style
}

func newPresenter(out io.Writer, clock visit.Clock) *presenter {
	r := lipgloss.NewRenderer(out)
	return &presenter{
		out:         out,
		clock:       clock,
		indexStyle:  r.NewStyle().Foreground(lipgloss.Color("241")).Width(4).Align(lipgloss.Right),
		whenStyle:   r.NewStyle().Foreground(lipgloss.Color("39")).Width(16),
		openStyle:   r.NewStyle().Foreground(lipgloss.Color("214")).Width(14),
		closedStyle: r.NewStyle().Foreground(lipgloss.Color("42")).Width(14),
	}
}

// list prints one numbered row per visit. The number is the --index value
// that selects the row.
func (p *presenter) list(visits visit.Sorted) {
	now := p.clock.Now()
	for i, v := range visits {
		fmt.Fprintf(p.out, "%s  %s\n", p.indexStyle.Render(fmt.Sprint(i)), p.row(v, now))
	}
}

// single prints one unnumbered row.
func (p *presenter) single(v visit.Visit) {
	fmt.Fprintln(p.out, p.row(v, p.clock.Now()))
}

func (p *presenter) row(v visit.Visit, now time.Time) string {
	perm := p.closedStyle
	if v.Instance.Permission.OpenToAnyone() {
		perm = p.openStyle
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		v.Timestamp.Format(visit.TimeLayout),
		p.whenStyle.Render(humanize.RelTime(v.Timestamp, now, "ago", "from now")),
		perm.Render(v.Instance.Permission.String()),
		v.Instance.Raw(),
	)
}
