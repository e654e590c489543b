// Package report turns an analysis Database into the uncover report and
// renders it as text or JSON.
package report

import (
	"github.com/Teemu/uncover/internal/bash"
	"github.com/Teemu/uncover/internal/config"
	"github.com/Teemu/uncover/internal/history"
	"github.com/Teemu/uncover/internal/stats"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Report is the complete result of one analysis run, in display order.
type Report struct {
	Summary     Summary      `json:"summary"`
	MostUsed    []CommandRow `json:"most_used"`
	WithArgs    []PrefixRow  `json:"with_arguments"`
	TypingSaves []SaveRow    `json:"typing_saves"`
	Groups      []Group      `json:"groups"`
}

// Summary describes what was analyzed.
type Summary struct {
	Sources     []history.Source `json:"sources"`
	Invocations int              `json:"invocations"`
	Commands    int              `json:"commands"`
	Prefixes    int              `json:"prefixes"`
	Filter      string           `json:"filter,omitempty"`
}

// CommandRow is one command name with its most used arguments.
type CommandRow struct {
	Name  string                `json:"name"`
	Count int                   `json:"count"`
	Args  []stats.Count[string] `json:"args"`
}

// PrefixRow is a command prefix and how often it was typed.
type PrefixRow struct {
	Command string `json:"command"`
	Count   int    `json:"count"`
}

// SaveRow is an aliasing candidate. Alias is set only when aliases were
// requested.
type SaveRow struct {
	Command string `json:"command"`
	Count   int    `json:"count"`
	Score   int    `json:"score"`
	Alias   string `json:"alias,omitempty"`
}

// Options select the optional parts of a report.
type Options struct {
	// Filter keeps only rows whose command name fuzzy matches it.
	Filter string
	// Aliases adds an alias definition to every typing save.
	Aliases bool
}

// Builder builds reports with fixed limits.
type Builder struct {
	cfg    config.ReportConfig
	logger *zap.Logger
}

// NewBuilder creates a report builder.
func NewBuilder(cfg config.ReportConfig, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// Build queries db and assembles the report.
func (b *Builder) Build(db *stats.Database, sources []history.Source, opts Options) *Report {
	filter := newCommandFilter(opts.Filter, db.Commands())

	rep := &Report{
		Summary: Summary{
			Sources:     sources,
			Invocations: db.Recorded(),
			Commands:    len(db.Commands()),
			Prefixes:    db.Prefixes(),
			Filter:      opts.Filter,
		},
		MostUsed:    []CommandRow{},
		WithArgs:    []PrefixRow{},
		TypingSaves: []SaveRow{},
		Groups:      []Group{},
	}

	for _, u := range db.MostUsedCommands() {
		if len(rep.MostUsed) == b.cfg.TopCommands {
			break
		}
		if !filter.keep(u.Name) {
			continue
		}
		rep.MostUsed = append(rep.MostUsed, CommandRow{
			Name:  u.Name,
			Count: u.Total,
			Args:  u.TopArgs(b.cfg.TopArguments, 1),
		})
	}

	withArgs := lo.Filter(db.MostUsedCommandsWithArgs(), func(p stats.PrefixCount, _ int) bool {
		return filter.keep(p.Tokens[0])
	})
	for _, p := range limit(withArgs, b.cfg.TopPrefixes) {
		rep.WithArgs = append(rep.WithArgs, PrefixRow{Command: p.Text(), Count: p.Count})
	}

	saves := lo.Filter(db.MostTypingSaved(), func(p stats.PrefixCount, _ int) bool {
		return filter.keep(p.Tokens[0])
	})
	var namer *bash.AliasNamer
	if opts.Aliases {
		namer = bash.NewAliasNamer(db.Commands())
	}
	for _, p := range limit(saves, b.cfg.TopTypingSaves) {
		row := SaveRow{Command: p.Text(), Count: p.Count, Score: p.SaveScore()}
		if namer != nil {
			row.Alias = b.alias(namer, p)
		}
		rep.TypingSaves = append(rep.TypingSaves, row)
	}

	expandOpts := ExpandOptions{
		Candidates: b.cfg.GroupCandidates,
		MaxDepth:   b.cfg.GroupDepth,
		MinShare:   b.cfg.GroupMinShare,
	}
	groups := RankGroups(db.Relations(), 0, filter.keepFunc())
	for _, g := range limit(groups, b.cfg.TopGroups) {
		g.Followers = ExpandSuccessors(db.Relations(), g.Command, expandOpts)
		rep.Groups = append(rep.Groups, g)
	}

	return rep
}

func (b *Builder) alias(namer *bash.AliasNamer, p stats.PrefixCount) string {
	name, ok := namer.Name(p.Tokens)
	if !ok {
		b.logger.Debug("no alias name for prefix", zap.String("prefix", p.Text()))
		return ""
	}
	def, err := bash.AliasDefinition(name, p.Text())
	if err != nil {
		b.logger.Debug("skipping alias", zap.String("prefix", p.Text()), zap.Error(err))
		return ""
	}
	return def
}

// Aliases returns every alias definition in the report.
func (r *Report) Aliases() []string {
	return lo.FilterMap(r.TypingSaves, func(row SaveRow, _ int) (string, bool) {
		return row.Alias, row.Alias != ""
	})
}

func limit[T any](items []T, n int) []T {
	if n >= 0 && n < len(items) {
		return items[:n]
	}
	return items
}
