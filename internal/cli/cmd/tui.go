package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timelapsetech/videocalc-db/internal/ui"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Pick a selection interactively",
		Long:  "Open the interactive picker. Selection flags, --link and --preset set the starting point.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd)
		},
	}
	bindSelectionFlags(cmd.Flags())
	registerSelectionCompletions(cmd)
	return cmd
}

func runTUI(cmd *cobra.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	sel, err := selectionFromFlags(cmd, sess)
	if err != nil {
		return err
	}
	store, err := sess.presets()
	if err != nil {
		return err
	}
	err = ui.Run(cmd.Context(), ui.Config{
		Catalog:     sess.catalog,
		Initial:     sel,
		Presets:     store,
		Logger:      sess.logger,
		Debounce:    sess.settings.Debounce,
		BinaryUnits: sess.settings.BinaryUnits,
	})
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return nil
}
