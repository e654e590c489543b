package report

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/Teemu/uncover/internal/stats"
)

// RelationGraph is the read-only view of command sequence relations used to
// build command groups. *stats.Relations satisfies it.
type RelationGraph interface {
	Sources() []string
	Successors(name string) []stats.Count[string]
	Total(name string) int
}

// Group is a command together with the command that most often follows it.
type Group struct {
	Command   string     `json:"command"`
	Next      string     `json:"next"`
	Count     int        `json:"count"`
	Share     int        `json:"share"`
	Score     int        `json:"score"`
	Followers []Follower `json:"followers,omitempty"`
}

// Follower is one expanded successor edge. Followers nest up to the
// configured depth.
type Follower struct {
	Command   string     `json:"command"`
	Count     int        `json:"count"`
	Share     int        `json:"share"`
	Followers []Follower `json:"followers,omitempty"`
}

// ExpandOptions bounds ExpandSuccessors.
type ExpandOptions struct {
	// Candidates is how many of the strongest successors are considered at
	// each level. Zero considers all of them.
	Candidates int
	// MaxDepth is the deepest level expanded; the successors of the start
	// command are depth 0.
	MaxDepth int
	// MinShare is the fraction of a command's outgoing weight an edge needs.
	MinShare float64
}

// share returns count as a rounded percentage of total.
func share(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

// RankGroups ranks every command with successors by
// (len(command) + len(strongest successor)) * strongest weight, descending,
// ties in the order commands were first seen. keep, when non-nil, filters
// commands before ranking. limit <= 0 returns all groups.
func RankGroups(g RelationGraph, limit int, keep func(string) bool) []Group {
	var groups []Group
	for _, cmd := range g.Sources() {
		if keep != nil && !keep(cmd) {
			continue
		}
		succ := g.Successors(cmd)
		if len(succ) == 0 {
			continue
		}
		top := succ[0]
		groups = append(groups, Group{
			Command: cmd,
			Next:    top.Key,
			Count:   top.Count,
			Share:   share(top.Count, g.Total(cmd)),
			Score:   (utf8.RuneCountInString(cmd) + utf8.RuneCountInString(top.Key)) * top.Count,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Score > groups[j].Score
	})
	if limit > 0 && limit < len(groups) {
		groups = groups[:limit]
	}
	return groups
}

// ExpandSuccessors walks the strongest successors of cmd. An edge is kept
// when its weight is at least MinShare of cmd's outgoing weight and greater
// than one; kept edges are expanded in turn until MaxDepth.
func ExpandSuccessors(g RelationGraph, cmd string, opts ExpandOptions) []Follower {
	return expand(g, cmd, 0, opts)
}

func expand(g RelationGraph, cmd string, depth int, opts ExpandOptions) []Follower {
	if depth > opts.MaxDepth {
		return nil
	}
	total := g.Total(cmd)
	succ := g.Successors(cmd)
	if opts.Candidates > 0 && opts.Candidates < len(succ) {
		succ = succ[:opts.Candidates]
	}

	var out []Follower
	for _, s := range succ {
		if float64(s.Count) < float64(total)*opts.MinShare || s.Count <= 1 {
			continue
		}
		out = append(out, Follower{
			Command:   s.Key,
			Count:     s.Count,
			Share:     share(s.Count, total),
			Followers: expand(g, s.Key, depth+1, opts),
		})
	}
	return out
}
