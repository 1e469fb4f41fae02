package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/config"
	"github.com/timelapsetech/videocalc-db/internal/logging"
	"github.com/timelapsetech/videocalc-db/internal/preset"
)

const (
	ExitOK           = 0
	ExitCLIError     = 1
	ExitCatalogError = 2
	ExitIncomplete   = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "videocalc",
		Short: "Video bitrate and file size calculator",
		Long: "videocalc estimates storage for recorded or delivered video. Pick a category, codec, " +
			"variant, resolution and frame rate, give a duration, and it reports the bitrate and file size. " +
			"Choices that a codec does not support are corrected automatically.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(cmd.Root()); err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("config: %w", err)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Bare invocation opens the picker on a terminal.
			if isTerminal() {
				return runTUI(cmd)
			}
			return cmd.Help()
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("catalog", "", "Codec database file (YAML or JSON); empty uses the built-in database")
	root.PersistentFlags().String("presets", "", "Preset store file (default: state dir/presets.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log resolver and calculation details to stderr")
	root.PersistentFlags().Bool("binary-units", false, "Show sizes in GiB/TiB instead of GB/TB")
	root.PersistentFlags().Duration("debounce", config.DefaultDebounce, "Delay before the picker recalculates after an edit")

	// Subcommands
	root.AddCommand(newCalcCmd())
	root.AddCommand(newOptionsCmd())
	root.AddCommand(newLinkCmd())
	root.AddCommand(newPresetsCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// session bundles what most subcommands need after configuration is loaded.
type session struct {
	settings config.Settings
	logger   zerolog.Logger
	catalog  *catalog.Catalog
}

func openSession(cmd *cobra.Command) (*session, error) {
	s := config.Load()
	logger := logging.Setup(cmd.ErrOrStderr(), s.Verbose)
	cat, err := catalog.Open(s.Catalog, catalog.WithLogger(logger))
	if err != nil {
		return nil, &ExitError{Code: ExitCatalogError, Err: fmt.Errorf("load codec database: %w", err)}
	}
	return &session{settings: s, logger: logger, catalog: cat}, nil
}

func (s *session) presets() (*preset.Store, error) {
	store := preset.NewStore(s.settings.Presets)
	if err := store.Load(); err != nil {
		return nil, &ExitError{Code: ExitCLIError, Err: err}
	}
	return store, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
