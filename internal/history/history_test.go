package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Teemu/uncover/internal/config"
	"github.com/Teemu/uncover/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseZshLine(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{": 1699999999:0;git status", "git status", true},
		{": 1699999999:0;echo a;b", "echo a", true},
		{"  : 1:0;ls -la  \n", "ls -la", true},
		{": 1:0;", "", true},
		{"git status", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseZshLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBashLine(t *testing.T) {
	got, ok := ParseBashLine("  git status \t")
	assert.True(t, ok)
	assert.Equal(t, "git status", got)

	got, ok = ParseBashLine("")
	assert.True(t, ok)
	assert.Equal(t, "", got)

	_, ok = ParseBashLine("#1699999999")
	assert.False(t, ok)

	got, ok = ParseBashLine("# just a comment")
	assert.True(t, ok)
	assert.Equal(t, "# just a comment", got)
}

func TestLoader_Parse(t *testing.T) {
	loader := NewLoader(zaptest.NewLogger(t))

	t.Run("zsh", func(t *testing.T) {
		input := ": 1:0;git status\nbroken line\n: 2:0;ls\n"
		src, err := loader.Parse("zsh", config.FormatZsh, strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "zsh", src.Name)
		assert.Equal(t, []string{"git status", "ls"}, src.Commands)
		assert.Equal(t, 1, src.Skipped)
	})

	t.Run("bash", func(t *testing.T) {
		input := "#1699999999\ncd /tmp\n\nls\n"
		src, err := loader.Parse("bash", config.FormatBash, strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"cd /tmp", "", "ls"}, src.Commands)
		assert.Equal(t, 1, src.Skipped)
	})

	t.Run("long lines", func(t *testing.T) {
		long := "echo " + strings.Repeat("x", 200*1024)
		src, err := loader.Parse("bash", config.FormatBash, strings.NewReader(long+"\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{long}, src.Commands)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := loader.Parse("fish", "fish", strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	zshPath := filepath.Join(dir, "zsh_history")
	bashPath := filepath.Join(dir, "bash_history")
	require.NoError(t, os.WriteFile(zshPath, []byte(": 1:0;git status\n: 2:0;git push\n"), 0600))
	require.NoError(t, os.WriteFile(bashPath, []byte("make\nmake test\n"), 0600))

	loader := NewLoader(zaptest.NewLogger(t))

	t.Run("reads sources in order", func(t *testing.T) {
		sources, err := loader.Load(context.Background(), []config.SourceConfig{
			{Name: "zsh", Format: config.FormatZsh, Path: zshPath},
			{Name: "bash", Format: config.FormatBash, Path: bashPath},
		})
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, "zsh", sources[0].Name)
		assert.Equal(t, zshPath, sources[0].Path)
		assert.Equal(t, []string{"git status", "git push"}, sources[0].Commands)
		assert.Equal(t, []string{"make", "make test"}, sources[1].Commands)
	})

	t.Run("empty path disables a source", func(t *testing.T) {
		sources, err := loader.Load(context.Background(), []config.SourceConfig{
			{Name: "zsh", Format: config.FormatZsh, Path: ""},
			{Name: "bash", Format: config.FormatBash, Path: bashPath},
		})
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "bash", sources[0].Name)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := loader.Load(context.Background(), []config.SourceConfig{
			{Name: "bash", Format: config.FormatBash, Path: bashPath},
			{Name: "zsh", Format: config.FormatZsh, Path: filepath.Join(dir, "missing")},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSourceMissing))
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("expands home", func(t *testing.T) {
		t.Setenv("HOME", dir)
		core.ResetPaths()
		t.Cleanup(core.ResetPaths)

		sources, err := loader.Load(context.Background(), []config.SourceConfig{
			{Name: "bash", Format: config.FormatBash, Path: "~/bash_history"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"make", "make test"}, sources[0].Commands)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.Load(ctx, []config.SourceConfig{
			{Name: "bash", Format: config.FormatBash, Path: bashPath},
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
