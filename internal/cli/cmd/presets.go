package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/preset"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved workflow presets",
	}
	cmd.AddCommand(newPresetsListCmd())
	cmd.AddCommand(newPresetsAddCmd())
	cmd.AddCommand(newPresetsUpdateCmd())
	cmd.AddCommand(newPresetsDeleteCmd())
	cmd.AddCommand(newPresetsResetCmd())
	return cmd
}

func newPresetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			store, err := sess.presets()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range store.List() {
				fmt.Fprintf(out, "%-16s %s / %s / %s / %s / %s fps  (%s)\n",
					p.Name, p.Category, p.Codec, p.Variant, p.Resolution, p.FrameRate, p.ID)
			}
			return nil
		},
	}
}

func newPresetsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Save the selection given by the flags as a preset",
		Example: `  videocalc presets add "Dailies" -c raw --codec braw --variant "BRAW 12:1" -r 4K -f 24`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			store, err := sess.presets()
			if err != nil {
				return err
			}
			if store.Index(args[0]) >= 0 {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("preset %q already exists; use 'videocalc presets update'", args[0])}
			}
			sel, err := selectionFromFlags(cmd, sess)
			if err != nil {
				return err
			}
			p, err := store.Add(settledPreset(sess, args[0], sel))
			if err != nil {
				return presetError(err)
			}
			if err := store.Save(); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	bindSelectionFlags(cmd.Flags())
	registerSelectionCompletions(cmd)
	return cmd
}

func newPresetsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Change a preset; flags override its saved selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			store, err := sess.presets()
			if err != nil {
				return err
			}
			i := store.Index(args[0])
			if i < 0 {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("no preset named %q", args[0])}
			}
			cur := store.List()[i]
			sel, err := applySelectionFlags(cmd, cur.Selection(model.DefaultDuration()))
			if err != nil {
				return err
			}
			name := cur.Name
			if cmd.Flags().Changed("name") {
				name, _ = cmd.Flags().GetString("name")
			}
			next := settledPreset(sess, name, sel)
			next.ID = cur.ID
			if err := store.Update(i, next); err != nil {
				return presetError(err)
			}
			if err := store.Save(); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated preset %q\n", next.Name)
			return nil
		},
	}
	bindSelectionFlags(cmd.Flags())
	cmd.Flags().String("name", "", "Rename the preset")
	registerSelectionCompletions(cmd)
	return cmd
}

func newPresetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			store, err := sess.presets()
			if err != nil {
				return err
			}
			if err := store.Delete(store.Index(args[0])); err != nil {
				if errors.Is(err, preset.ErrIndex) {
					err = fmt.Errorf("no preset named %q", args[0])
				}
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			if err := store.Save(); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", args[0])
			return nil
		},
	}
}

func newPresetsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			store, err := sess.presets()
			if err != nil {
				return err
			}
			if err := store.Reset(); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Presets restored to defaults")
			return nil
		},
	}
}

// settledPreset resolves sel before it is stored, so a preset never holds a
// combination the codec database cannot price.
func settledPreset(sess *session, name string, sel model.Selection) model.Preset {
	sch := settle(sess, sel)
	defer sch.Close()
	s := sch.Selection()
	return model.Preset{
		Name:       name,
		Category:   s.CategoryID,
		Codec:      s.CodecID,
		Variant:    s.VariantName,
		Resolution: s.ResolutionID,
		FrameRate:  s.FrameRateID,
	}
}

func presetError(err error) error {
	if errors.Is(err, preset.ErrIncomplete) {
		return &ExitError{Code: ExitIncomplete, Err: err}
	}
	return &ExitError{Code: ExitCLIError, Err: err}
}
