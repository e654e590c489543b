package stats

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// PrefixCount is the number of invocations that started with Tokens.
type PrefixCount struct {
	Tokens []string `json:"tokens"`
	Count  int      `json:"count"`
}

// Text returns the prefix tokens joined with single spaces.
func (p PrefixCount) Text() string {
	return strings.Join(p.Tokens, " ")
}

// SaveScore estimates how many characters would not have been typed had
// this prefix been an alias: the joined length times the occurrence count.
func (p PrefixCount) SaveScore() int {
	return utf8.RuneCountInString(p.Text()) * p.Count
}

// prefixNode is one token position in the prefix trie. The path from the
// root to a node spells the prefix it counts.
type prefixNode struct {
	token    string
	count    int
	parent   *prefixNode
	children map[string]*prefixNode
}

// prefixTable counts every non-empty prefix of every recorded invocation.
// Nodes are kept in creation order so rankings can break ties by insertion.
type prefixTable struct {
	root  prefixNode
	nodes []*prefixNode
}

func newPrefixTable() *prefixTable {
	return &prefixTable{root: prefixNode{children: make(map[string]*prefixNode)}}
}

func (t *prefixTable) record(tokens []string) {
	node := &t.root
	for _, tok := range tokens {
		child, ok := node.children[tok]
		if !ok {
			child = &prefixNode{
				token:    tok,
				parent:   node,
				children: make(map[string]*prefixNode),
			}
			node.children[tok] = child
			t.nodes = append(t.nodes, child)
		}
		child.count++
		node = child
	}
}

func (t *prefixTable) count(tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	node := &t.root
	for _, tok := range tokens {
		child, ok := node.children[tok]
		if !ok {
			return 0
		}
		node = child
	}
	return node.count
}

func (t *prefixTable) len() int {
	return len(t.nodes)
}

// entries returns every prefix in insertion order.
func (t *prefixTable) entries() []PrefixCount {
	out := make([]PrefixCount, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = PrefixCount{Tokens: n.path(), Count: n.count}
	}
	return out
}

// mostCommon returns every prefix by descending count, ties in insertion order.
func (t *prefixTable) mostCommon() []PrefixCount {
	out := t.entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func (n *prefixNode) path() []string {
	var rev []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		rev = append(rev, cur.token)
	}
	tokens := make([]string, len(rev))
	for i, tok := range rev {
		tokens[len(rev)-1-i] = tok
	}
	return tokens
}
