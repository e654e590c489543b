package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Teemu/uncover/internal/config"
	"github.com/muesli/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderSample(t *testing.T, opts Options, text TextOptions) string {
	t.Helper()
	rep := buildSample(t, config.DefaultReportConfig(), opts)
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, rep, text))
	return buf.String()
}

func TestRenderText(t *testing.T) {
	out := renderSample(t, Options{}, TextOptions{})
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Analyzed 8 commands (3 distinct) from zsh (8)", lines[0])

	headers := []string{
		"Most used commands by history:",
		"Most used commands with arguments:",
		"Typing saves:",
		"Command groups:",
	}
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		require.GreaterOrEqual(t, idx, 0, h)
		assert.Greater(t, idx, last, "section %q out of order", h)
		last = idx
	}

	assert.Contains(t, lines, "- 3 git")
	assert.Contains(t, lines, "    2 status")
	assert.Contains(t, lines, "- 2 kubectl get pods")
	assert.Contains(t, lines, "kubectl -> kubectl (100%)")
	assert.Contains(t, lines, "git -> git (67%)")
	assert.Contains(t, lines, " └ 67% git")
	assert.Contains(t, lines, "   └ 67% git")
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "alias ")
}

func TestRenderTextAliases(t *testing.T) {
	out := renderSample(t, Options{Aliases: true}, TextOptions{})
	assert.Contains(t, out, "    alias kgp=")
}

func TestRenderTextFilter(t *testing.T) {
	out := renderSample(t, Options{Filter: "kub"}, TextOptions{})
	assert.Contains(t, out, "Filter: kub")
	assert.NotContains(t, out, "- 3 git")
}

func TestRenderTextWidth(t *testing.T) {
	out := renderSample(t, Options{}, TextOptions{Width: 12})

	assert.NotContains(t, out, "kubectl get pods")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "- ") {
			assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), 12, line)
		}
	}
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	rep := &Report{}
	require.NoError(t, RenderText(&buf, rep, TextOptions{}))

	out := buf.String()
	assert.Contains(t, out, "from no sources")
	assert.Equal(t, 4, strings.Count(out, "(none)"))
}

func TestCountsAligned(t *testing.T) {
	tw := &textWriter{theme: newTheme(&bytes.Buffer{}, false)}
	assert.Equal(t, []string{"    7", "1,234"}, tw.counts([]int{7, 1234}))
	assert.Empty(t, tw.counts(nil))
}
