package report

import (
	"testing"

	"github.com/Teemu/uncover/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relationsOf(lines ...string) *stats.Relations {
	db := stats.NewDatabase()
	db.RecordSequence(lines)
	return db.Relations()
}

// cd->ls 2, cd->make 1, ls->cd 2, make->vim 2, vim->make 2
var groupHistory = []string{
	"cd a", "ls", "cd b", "ls", "cd c", "make", "vim x", "make", "vim y", "make",
}

func TestRankGroups(t *testing.T) {
	g := relationsOf(groupHistory...)

	groups := RankGroups(g, 0, nil)
	require.Len(t, groups, 4)

	assert.Equal(t, []string{"make", "vim", "cd", "ls"}, []string{
		groups[0].Command, groups[1].Command, groups[2].Command, groups[3].Command,
	})
	assert.Equal(t, Group{Command: "make", Next: "vim", Count: 2, Share: 100, Score: 14}, groups[0])
	assert.Equal(t, Group{Command: "cd", Next: "ls", Count: 2, Share: 67, Score: 8}, groups[2])

	t.Run("limit", func(t *testing.T) {
		assert.Len(t, RankGroups(g, 2, nil), 2)
	})

	t.Run("keep filter", func(t *testing.T) {
		groups := RankGroups(g, 0, func(cmd string) bool { return cmd == "cd" })
		require.Len(t, groups, 1)
		assert.Equal(t, "cd", groups[0].Command)
	})

	t.Run("empty graph", func(t *testing.T) {
		assert.Empty(t, RankGroups(relationsOf(), 10, nil))
	})
}

func TestExpandSuccessors(t *testing.T) {
	g := relationsOf(groupHistory...)
	opts := ExpandOptions{Candidates: 10, MaxDepth: 2, MinShare: 0.1}

	t.Run("depth bounded", func(t *testing.T) {
		got := ExpandSuccessors(g, "cd", opts)
		want := []Follower{
			{Command: "ls", Count: 2, Share: 67, Followers: []Follower{
				{Command: "cd", Count: 2, Share: 100, Followers: []Follower{
					{Command: "ls", Count: 2, Share: 67},
				}},
			}},
		}
		assert.Equal(t, want, got)
	})

	t.Run("depth zero only lists direct successors", func(t *testing.T) {
		got := ExpandSuccessors(g, "cd", ExpandOptions{Candidates: 10, MaxDepth: 0, MinShare: 0.1})
		assert.Equal(t, []Follower{{Command: "ls", Count: 2, Share: 67}}, got)
	})

	t.Run("single occurrences are dropped", func(t *testing.T) {
		for _, f := range ExpandSuccessors(g, "cd", opts) {
			assert.NotEqual(t, "make", f.Command)
		}
	})

	t.Run("share threshold", func(t *testing.T) {
		got := ExpandSuccessors(g, "cd", ExpandOptions{Candidates: 10, MaxDepth: 2, MinShare: 0.9})
		assert.Empty(t, got)
	})

	t.Run("candidates limit", func(t *testing.T) {
		g := relationsOf("a", "b", "a", "b", "a", "c", "x", "a", "c")
		// a->b 2, a->c 2
		got := ExpandSuccessors(g, "a", ExpandOptions{Candidates: 1, MaxDepth: 0, MinShare: 0.1})
		assert.Equal(t, []Follower{{Command: "b", Count: 2, Share: 50}}, got)

		got = ExpandSuccessors(g, "a", ExpandOptions{Candidates: 0, MaxDepth: 0, MinShare: 0.1})
		assert.Len(t, got, 2)
	})

	t.Run("unknown command", func(t *testing.T) {
		assert.Empty(t, ExpandSuccessors(g, "nope", opts))
	})
}

func TestShare(t *testing.T) {
	assert.Equal(t, 0, share(1, 0))
	assert.Equal(t, 50, share(1, 2))
	assert.Equal(t, 33, share(1, 3))
	assert.Equal(t, 67, share(2, 3))
	assert.Equal(t, 100, share(4, 4))
}
