// Package history reads shell history files into ordered command lists.
package history

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Teemu/uncover/internal/config"
	"github.com/Teemu/uncover/internal/core"
	"go.uber.org/zap"
)

// ErrSourceMissing is returned when a configured history file does not exist.
// It wraps os.ErrNotExist.
var ErrSourceMissing = fmt.Errorf("history source missing: %w", os.ErrNotExist)

// maxLineSize bounds a single history line. Pasted scripts can be long.
const maxLineSize = 1024 * 1024

var bashTimestamp = regexp.MustCompile(`^#\d+$`)

// Source is the ordered list of raw commands read from one history file.
type Source struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Commands []string `json:"-"`
	Skipped  int      `json:"skipped"`
}

// Loader reads the history files named by the configuration.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new history loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads every enabled source in order. Sources with an empty path are
// skipped; a missing file fails the whole load with ErrSourceMissing.
func (l *Loader) Load(ctx context.Context, sources []config.SourceConfig) ([]Source, error) {
	var out []Source
	for _, sc := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sc.Path == "" {
			l.logger.Debug("history source disabled", zap.String("source", sc.Name))
			continue
		}

		src, err := l.LoadFile(sc.Name, sc.Format, core.ExpandHome(sc.Path))
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// LoadFile reads one history file in the given format.
func (l *Loader) LoadFile(name, format, path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Source{}, fmt.Errorf("%w: %s (%s)", ErrSourceMissing, name, path)
		}
		return Source{}, fmt.Errorf("failed to open %s history %s: %w", name, path, err)
	}
	defer f.Close()

	src, err := l.Parse(name, format, f)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s history %s: %w", name, path, err)
	}
	src.Path = path

	l.logger.Info("loaded history source",
		zap.String("source", name),
		zap.String("path", path),
		zap.Int("commands", len(src.Commands)),
		zap.Int("skipped", src.Skipped))
	return src, nil
}

// Parse reads history lines from r in the given format.
func (l *Loader) Parse(name, format string, r io.Reader) (Source, error) {
	var parse func(string) (string, bool)
	switch format {
	case config.FormatZsh:
		parse = ParseZshLine
	case config.FormatBash:
		parse = ParseBashLine
	default:
		return Source{}, fmt.Errorf("unknown history format %q", format)
	}

	src := Source{Name: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, ok := parse(scanner.Text())
		if !ok {
			src.Skipped++
			l.logger.Debug("skipping history line",
				zap.String("source", name),
				zap.Int("line", lineNo))
			continue
		}
		src.Commands = append(src.Commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return Source{}, err
	}
	return src, nil
}

// ParseZshLine extracts the command from a zsh extended history line
// (": 1699999999:0;git status"). The line is trimmed and split on ';', and
// the second field is the command. Lines without ';' are rejected.
func ParseZshLine(line string) (string, bool) {
	if !strings.Contains(line, ";") {
		return "", false
	}
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// ParseBashLine returns the trimmed line. Timestamp comments written when
// HISTTIMEFORMAT is set are rejected.
func ParseBashLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if bashTimestamp.MatchString(line) {
		return "", false
	}
	return line, true
}
