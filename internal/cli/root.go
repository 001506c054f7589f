// Package cli defines Cobra command definitions for the questclock CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/questclock/questclock/internal/config"
	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/log"
	"github.com/questclock/questclock/internal/session"
	"github.com/questclock/questclock/internal/tui"
	"github.com/questclock/questclock/internal/tui/app"
)

var version = "dev" // set via ldflags at build time

// options holds the flags shared by every command.
type options struct {
	nerdFonts bool
	configDir string
	dataFile  string
	stateDir  string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "questclock",
	Short: "A countdown timer that keeps score",
	Long: `questclock runs a full-screen countdown tagged with a project and task.
Finished and abandoned sessions are appended to a local history file, which
feeds a yearly heatmap, a weekly summary and a daily timeline.

When stdout is not a terminal a plain-text summary is printed instead.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}

	if !tui.IsTTY() {
		return tui.WriteSummary(cmd.OutOrStdout(), env.store.Load(), time.Now())
	}

	sess := session.New(session.SystemClock, env.store, env.events)
	tuiApp := app.New(env.cfg, session.SystemClock, sess, env.store, env.events)
	if err := tui.Run(tuiApp); err != nil {
		return fmt.Errorf("running terminal program: %w", err)
	}
	return nil
}

// environment is what every command needs after flags are applied.
type environment struct {
	cfg    *config.Config
	store  *history.Store
	events log.Sink
}

// setup reads the config, applies flag overrides and opens the event log.
// A log that cannot be opened only produces a warning.
func setup(cmd *cobra.Command) (*environment, error) {
	dir := opts.configDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if changed(flags, "nerd-fonts") {
		cfg.NerdFonts = opts.nerdFonts
	}
	if opts.dataFile != "" {
		cfg.DataFile = opts.dataFile
	}
	if opts.stateDir != "" {
		cfg.StateDir = opts.stateDir
	}
	if cfg.StateDir == "" {
		if d, err := config.DefaultStateDir(); err == nil {
			cfg.StateDir = d
		}
	}

	env := &environment{cfg: cfg}
	if logger, err := log.NewLogger(cfg.StateDir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: event log disabled: %v\n", err)
	} else {
		env.events = logger
	}
	env.store = history.NewStore(cfg.DataFile, env.events)
	return env, nil
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// Main runs the root command and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "questclock:", err)
		return 1
	}
	return 0
}

// Execute runs the root command. Called from main.
func Execute() {
	os.Exit(Main())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&opts.nerdFonts, "nerd-fonts", false, "Use Nerd Font glyphs for status icons")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config", "", "Config directory (default ~/.config/questclock)")
	rootCmd.PersistentFlags().StringVar(&opts.dataFile, "data", "", "History file (overrides data_file)")
	rootCmd.PersistentFlags().StringVar(&opts.stateDir, "state-dir", "", "Directory for the event log")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
}
