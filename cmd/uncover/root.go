package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Teemu/uncover/internal/config"
	"github.com/Teemu/uncover/internal/core"
	"github.com/Teemu/uncover/internal/history"
	"github.com/Teemu/uncover/internal/report"
	"github.com/Teemu/uncover/internal/stats"
	"github.com/Teemu/uncover/internal/styles"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type options struct {
	configFile  string
	zshHistory  string
	bashHistory string
	json        bool
	noColor     bool
	filter      string
	aliases     bool
	copyAliases bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "uncover",
		Short: "Uncover patterns in your shell history",
		Long: `uncover reads your zsh and bash history and reports the commands you
use most, the command lines worth turning into aliases and the commands
that tend to follow each other.`,
		Version:       BUILD_VERSION,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ~/.config/uncover/config.yaml)")
	flags.StringVar(&opts.zshHistory, "zsh-history", "", "zsh history file, empty to skip")
	flags.StringVar(&opts.bashHistory, "bash-history", "", "bash history file, empty to skip")
	flags.BoolVar(&opts.json, "json", false, "output the report as JSON")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.StringVarP(&opts.filter, "filter", "f", "", "only report commands fuzzy matching this pattern")
	flags.BoolVarP(&opts.aliases, "aliases", "a", false, "suggest an alias for every typing save")
	flags.BoolVar(&opts.copyAliases, "copy-aliases", false, "copy suggested aliases to the clipboard")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.noColor {
		styles.DisableColor()
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(cfg, opts.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("-------- new uncover run --------", zap.Strings("args", os.Args))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources, err := history.NewLoader(logger).Load(ctx, cfg.Sources)
	if err != nil {
		return err
	}

	db := analyze(sources)
	logger.Info("analyzed history",
		zap.Int("invocations", db.Recorded()),
		zap.Int("commands", len(db.Commands())),
		zap.Int("prefixes", db.Prefixes()))

	rep := report.NewBuilder(cfg.Report, logger).Build(db, sources, report.Options{
		Filter:  opts.filter,
		Aliases: opts.aliases || opts.copyAliases,
	})

	out := cmd.OutOrStdout()
	if opts.json {
		err = report.RenderJSON(out, rep)
	} else {
		err = report.RenderText(out, rep, textOptions(out, opts.noColor))
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.copyAliases {
		copyAliases(cmd.ErrOrStderr(), rep.Aliases(), logger)
	}
	return nil
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	loader := config.NewLoader(nil)

	var cfg *config.Config
	var err error
	if opts.configFile != "" {
		cfg, err = loader.LoadFromFile(core.ExpandHome(opts.configFile))
	} else {
		cfg, err = loader.LoadDefaultConfigPath()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("zsh-history") {
		cfg.SetSourcePath("zsh", config.FormatZsh, opts.zshHistory)
	}
	if cmd.Flags().Changed("bash-history") {
		cfg.SetSourcePath("bash", config.FormatBash, opts.bashHistory)
	}
	return cfg, nil
}

func initializeLogger(cfg *config.Config, levelOverride string) (*zap.Logger, error) {
	logLevel := cfg.GetLogLevel()
	if levelOverride != "" {
		level, err := zap.ParseAtomicLevel(levelOverride)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelOverride, err)
		}
		logLevel = level
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.ExpandHome(cfg.LogFile),
	}

	return loggerConfig.Build()
}

// analyze feeds every source into a fresh Database.
func analyze(sources []history.Source) *stats.Database {
	db := stats.NewDatabase()
	for _, src := range sources {
		for _, line := range src.Commands {
			db.RecordCommand(line)
		}
		db.RecordSequence(src.Commands)
	}
	return db
}

func textOptions(out io.Writer, noColor bool) report.TextOptions {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return report.TextOptions{}
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		width = 0
	}
	return report.TextOptions{Width: width, Color: !noColor}
}

func copyAliases(errOut io.Writer, aliases []string, logger *zap.Logger) {
	if len(aliases) == 0 {
		fmt.Fprintln(errOut, styles.WARNING("no aliases to copy"))
		return
	}
	if err := writeClipboard(strings.Join(aliases, "\n") + "\n"); err != nil {
		logger.Warn("failed to copy aliases", zap.Error(err))
		fmt.Fprintln(errOut, styles.WARNING("could not copy aliases to the clipboard: "+err.Error()))
		return
	}
	fmt.Fprintf(errOut, "copied %d aliases to the clipboard\n", len(aliases))
}
