// Package stats aggregates tokenized shell history into usage counters and
// derived rankings: most used commands, most used command prefixes, typing
// saved by aliasing, and which command tends to follow which.
package stats

import (
	"sort"

	"github.com/Teemu/uncover/internal/tokenizer"
	"github.com/samber/lo"
)

// CommandUsage is the ranked view of one command name.
type CommandUsage struct {
	Name  string          `json:"name"`
	Total int             `json:"total"`
	Args  []Count[string] `json:"args"`
}

// TopArgs takes the n most used arguments (all when n < 0) and keeps those
// whose count exceeds minCount.
func (u CommandUsage) TopArgs(n, minCount int) []Count[string] {
	args := u.Args
	if n >= 0 && n < len(args) {
		args = args[:n]
	}
	return lo.Filter(args, func(c Count[string], _ int) bool { return c.Count > minCount })
}

type commandUsage struct {
	total int
	args  *Counter[string]
}

// Database owns the counters built from one analysis run. It is not safe
// for concurrent use.
type Database struct {
	order     []string
	usage     map[string]*commandUsage
	prefixes  *prefixTable
	relations *Relations
	recorded  int
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{
		usage:     make(map[string]*commandUsage),
		prefixes:  newPrefixTable(),
		relations: newRelations(),
	}
}

// RecordCommand tokenizes line and counts it. Lines without tokens are ignored.
func (db *Database) RecordCommand(line string) {
	tokens := tokenizer.Tokenize(line)
	if len(tokens) == 0 {
		return
	}
	db.recorded++

	name := tokens.Name()
	u, ok := db.usage[name]
	if !ok {
		u = &commandUsage{args: NewCounter[string]()}
		db.usage[name] = u
		db.order = append(db.order, name)
	}
	u.total++
	for _, arg := range tokens.Args() {
		u.args.Inc(arg)
	}

	db.prefixes.record(tokens)
}

// RecordSequence counts the command-name transitions between consecutive
// lines of one history source. Lines without tokens are dropped before
// pairing, so an empty or single-command list records nothing.
func (db *Database) RecordSequence(lines []string) {
	var prev string
	for _, line := range lines {
		name := tokenizer.Tokenize(line).Name()
		if name == "" {
			continue
		}
		if prev != "" {
			db.relations.add(prev, name)
		}
		prev = name
	}
}

// MostUsedCommands returns every command name by descending usage, ties in
// the order the command was first recorded.
func (db *Database) MostUsedCommands() []CommandUsage {
	out := make([]CommandUsage, len(db.order))
	for i, name := range db.order {
		u := db.usage[name]
		out[i] = CommandUsage{Name: name, Total: u.total, Args: u.args.MostCommon(0)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// MostUsedCommandsWithArgs returns every recorded prefix of at least two
// tokens by descending count, ties in insertion order.
func (db *Database) MostUsedCommandsWithArgs() []PrefixCount {
	return lo.Filter(db.prefixes.mostCommon(), func(p PrefixCount, _ int) bool {
		return len(p.Tokens) > 1
	})
}

// MostTypingSaved returns the prefixes seen more than once by descending
// SaveScore, ties in insertion order.
func (db *Database) MostTypingSaved() []PrefixCount {
	type scored struct {
		prefix PrefixCount
		score  int
	}
	candidates := lo.FilterMap(db.prefixes.entries(), func(p PrefixCount, _ int) (scored, bool) {
		if p.Count <= 1 {
			return scored{}, false
		}
		return scored{prefix: p, score: p.SaveScore()}, true
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return lo.Map(candidates, func(c scored, _ int) PrefixCount { return c.prefix })
}

// Relations returns the command sequence graph. Callers must treat it as read-only.
func (db *Database) Relations() *Relations {
	return db.relations
}

// Usage returns how many invocations had name as their command.
func (db *Database) Usage(name string) int {
	if u, ok := db.usage[name]; ok {
		return u.total
	}
	return 0
}

// ArgCount returns how often arg appeared among the arguments of name.
func (db *Database) ArgCount(name, arg string) int {
	if u, ok := db.usage[name]; ok {
		return u.args.Get(arg)
	}
	return 0
}

// PrefixCount returns how many invocations started with exactly tokens.
func (db *Database) PrefixCount(tokens ...string) int {
	return db.prefixes.count(tokens)
}

// Prefixes returns the number of distinct prefixes recorded.
func (db *Database) Prefixes() int {
	return db.prefixes.len()
}

// Commands returns the distinct command names in first-recorded order.
func (db *Database) Commands() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// Recorded returns the number of non-empty invocations recorded.
func (db *Database) Recorded() int {
	return db.recorded
}
