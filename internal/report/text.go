package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Teemu/uncover/internal/history"
	"github.com/Teemu/uncover/internal/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"github.com/samber/lo"
)

const (
	colorCyan   = lipgloss.Color("12")
	colorYellow = lipgloss.Color("11")
	colorGreen  = lipgloss.Color("10")
	colorGray   = lipgloss.Color("8")

	ellipsis = "…"
)

// TextOptions control RenderText.
type TextOptions struct {
	// Width truncates command text so lines fit; zero disables truncation.
	Width int
	// Color enables ANSI styling.
	Color bool
}

type theme struct {
	header lipgloss.Style
	count  lipgloss.Style
	share  lipgloss.Style
	dim    lipgloss.Style
}

func newTheme(w io.Writer, color bool) theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return theme{
		header: r.NewStyle().Foreground(colorCyan).Bold(true),
		count:  r.NewStyle().Foreground(colorYellow),
		share:  r.NewStyle().Foreground(colorGreen),
		dim:    r.NewStyle().Foreground(colorGray),
	}
}

type textWriter struct {
	b     strings.Builder
	theme theme
	width int
}

// RenderText writes the report in the classic four section layout.
func RenderText(w io.Writer, rep *Report, opts TextOptions) error {
	tw := &textWriter{theme: newTheme(w, opts.Color), width: opts.Width}

	tw.summary(rep.Summary)
	tw.mostUsed(rep.MostUsed)
	tw.withArgs(rep.WithArgs)
	tw.typingSaves(rep.TypingSaves)
	tw.groups(rep.Groups)

	_, err := io.WriteString(w, tw.b.String())
	return err
}

func (tw *textWriter) line(s string) {
	tw.b.WriteString(s)
	tw.b.WriteByte('\n')
}

// fit truncates s so that a line starting with prefix stays within width.
func (tw *textWriter) fit(prefix, s string) string {
	if tw.width <= 0 {
		return prefix + s
	}
	room := tw.width - ansi.PrintableRuneWidth(prefix)
	if room <= 0 {
		return prefix
	}
	return prefix + truncate.StringWithTail(s, uint(room), ellipsis)
}

// counts styles every count and right-aligns them to a common width.
func (tw *textWriter) counts(values []int) []string {
	styled := lo.Map(values, func(v int, _ int) string {
		return tw.theme.count.Render(humanize.Comma(int64(v)))
	})
	width := lo.Max(lo.Map(styled, func(s string, _ int) int {
		return ansi.PrintableRuneWidth(s)
	}))
	return lo.Map(styled, func(s string, _ int) string {
		return strings.Repeat(" ", width-ansi.PrintableRuneWidth(s)) + s
	})
}

func (tw *textWriter) section(title string, empty bool) {
	tw.line(tw.theme.header.Render(title))
	if empty {
		tw.line(tw.theme.dim.Render("  (none)"))
	}
}

func (tw *textWriter) summary(s Summary) {
	sources := lo.Map(s.Sources, func(src history.Source, _ int) string {
		return fmt.Sprintf("%s (%s)", src.Name, humanize.Comma(int64(len(src.Commands))))
	})
	from := "no sources"
	if len(sources) > 0 {
		from = strings.Join(sources, ", ")
	}
	tw.line(tw.theme.dim.Render(fmt.Sprintf("Analyzed %s commands (%s distinct) from %s",
		humanize.Comma(int64(s.Invocations)), humanize.Comma(int64(s.Commands)), from)))
	if s.Filter != "" {
		tw.line(tw.theme.dim.Render("Filter: " + s.Filter))
	}
}

func (tw *textWriter) mostUsed(rows []CommandRow) {
	tw.section("Most used commands by history:", len(rows) == 0)
	counts := tw.counts(lo.Map(rows, func(r CommandRow, _ int) int { return r.Count }))
	for i, row := range rows {
		tw.line(tw.fit("- "+counts[i]+" ", row.Name))
		args := tw.counts(lo.Map(row.Args, func(a stats.Count[string], _ int) int { return a.Count }))
		for j, arg := range row.Args {
			tw.line(tw.fit("    "+args[j]+" ", arg.Key))
		}
	}
}

func (tw *textWriter) withArgs(rows []PrefixRow) {
	tw.section("Most used commands with arguments:", len(rows) == 0)
	counts := tw.counts(lo.Map(rows, func(r PrefixRow, _ int) int { return r.Count }))
	for i, row := range rows {
		tw.line(tw.fit("- "+counts[i]+" ", row.Command))
	}
}

func (tw *textWriter) typingSaves(rows []SaveRow) {
	tw.section("Typing saves:", len(rows) == 0)
	counts := tw.counts(lo.Map(rows, func(r SaveRow, _ int) int { return r.Count }))
	for i, row := range rows {
		tw.line(tw.fit("- "+counts[i]+" ", row.Command))
		if row.Alias != "" {
			tw.line("    " + tw.theme.dim.Render(row.Alias))
		}
	}
}

func (tw *textWriter) groups(groups []Group) {
	tw.section("Command groups:", len(groups) == 0)
	for _, g := range groups {
		tw.line(fmt.Sprintf("%s -> %s (%s)", g.Command, g.Next, tw.theme.share.Render(fmt.Sprintf("%d%%", g.Share))))
		tw.followers(g.Followers, 0)
	}
}

func (tw *textWriter) followers(followers []Follower, depth int) {
	for _, f := range followers {
		prefix := strings.Repeat("  ", depth) + " └ " + tw.theme.share.Render(fmt.Sprintf("%d%%", f.Share)) + " "
		tw.line(tw.fit(prefix, f.Command))
		tw.followers(f.Followers, depth+1)
	}
}
