// Package config provides configuration management for uncover.
// It handles loading and parsing of the optional YAML configuration file
// and supplies defaults that reproduce the stock report layout.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Teemu/uncover/internal/core"
	"go.uber.org/zap"
)

// Source formats understood by the history loader.
const (
	FormatZsh  = "zsh"
	FormatBash = "bash"
)

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "UNCOVER_LOG_LEVEL"

// Config holds all settings for one analysis run.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile is a zap output path; "stderr" and "stdout" are accepted.
	LogFile string `yaml:"log_file"`

	// Sources lists the history files to analyze, in order.
	Sources []SourceConfig `yaml:"sources"`

	Report ReportConfig `yaml:"report"`
}

// SourceConfig names one history file and its line format.
// An empty Path disables the source.
type SourceConfig struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// ReportConfig holds the limits and thresholds of the textual report.
// A limit of 0 leaves its section (or argument list) empty.
type ReportConfig struct {
	TopCommands     int `yaml:"top_commands"`
	TopArguments    int `yaml:"top_arguments"`
	TopPrefixes     int `yaml:"top_prefixes"`
	TopTypingSaves  int `yaml:"top_typing_saves"`
	TopGroups       int `yaml:"top_groups"`
	GroupCandidates int `yaml:"group_candidates"`
	GroupDepth      int `yaml:"group_depth"`

	// GroupMinShare is the minimum share of a command's outgoing weight an
	// edge needs to be expanded, between 0 and 1.
	GroupMinShare float64 `yaml:"group_min_share"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		LogFile:  "stderr",
		Sources: []SourceConfig{
			{Name: "zsh", Format: FormatZsh, Path: core.ZshHistoryFile()},
			{Name: "bash", Format: FormatBash, Path: core.BashHistoryFile()},
		},
		Report: DefaultReportConfig(),
	}
}

// DefaultReportConfig returns the stock report limits.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		TopCommands:     10,
		TopArguments:    5,
		TopPrefixes:     50,
		TopTypingSaves:  50,
		TopGroups:       30,
		GroupCandidates: 10,
		GroupDepth:      2,
		GroupMinShare:   0.1,
	}
}

// GetSource returns the source with the given name, or nil if not found.
func (c *Config) GetSource(name string) *SourceConfig {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i]
		}
	}
	return nil
}

// SetSourcePath points the named source at path, adding it when absent.
func (c *Config) SetSourcePath(name, format, path string) {
	if src := c.GetSource(name); src != nil {
		src.Path = path
		return
	}
	c.Sources = append(c.Sources, SourceConfig{Name: name, Format: format, Path: path})
}

// GetLogLevel returns the effective log level, honoring UNCOVER_LOG_LEVEL.
func (c *Config) GetLogLevel() zap.AtomicLevel {
	text := c.LogLevel
	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		text = env
	}
	level, err := zap.ParseAtomicLevel(strings.ToLower(text))
	if err != nil {
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return level
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	for _, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("source with path %q has no name", src.Path)
		}
		if src.Format != FormatZsh && src.Format != FormatBash {
			return fmt.Errorf("source %q: unknown format %q", src.Name, src.Format)
		}
	}
	r := c.Report
	if r.TopCommands < 0 || r.TopArguments < 0 || r.TopPrefixes < 0 ||
		r.TopTypingSaves < 0 || r.TopGroups < 0 || r.GroupCandidates < 0 {
		return fmt.Errorf("report limits must not be negative")
	}
	if r.GroupDepth < 0 {
		return fmt.Errorf("report group_depth must not be negative")
	}
	if r.GroupMinShare < 0 || r.GroupMinShare > 1 {
		return fmt.Errorf("report group_min_share must be between 0 and 1, got %v", r.GroupMinShare)
	}
	return nil
}
