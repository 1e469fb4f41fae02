package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/timelapsetech/videocalc-db/internal/calc"
	"github.com/timelapsetech/videocalc-db/internal/events"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/scheduler"
	"github.com/timelapsetech/videocalc-db/internal/ui"
	"github.com/timelapsetech/videocalc-db/internal/util/format"
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate bitrate and file size for a selection",
		Long: "Calculate bitrate and file size for a selection. Levels you leave out are filled in " +
			"when only one choice exists; unsupported resolutions and frame rates are replaced " +
			"with supported ones and reported.",
		Example: `  videocalc calc -c delivery --codec h264 --variant "High Profile" -d 10:00
  videocalc calc --preset "Netflix 4K" -d 1h30m --capacity 2TB
  videocalc calc --link "?category=cinema&codec=dcp&variant=DCP+2K" -o yaml`,
		Args: cobra.NoArgs,
		RunE: runCalc,
	}
	bindSelectionFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "text", "Output format: text, yaml")
	cmd.Flags().String("capacity", "", "Also report how much footage fits in this size, e.g. 512GB or 2TiB")
	cmd.Flags().String("report", "", "Write a YAML report to this file, or into this directory")
	registerSelectionCompletions(cmd)
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions([]string{"text", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func runCalc(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	output = strings.ToLower(output)
	if output != "text" && output != "yaml" {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --output: %q (valid: text|yaml)", output)}
	}
	var capacityMB float64
	if raw, _ := cmd.Flags().GetString("capacity"); raw != "" {
		mb, err := format.ParseSize(raw)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --capacity: %w", err)}
		}
		capacityMB = mb
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	sel, err := selectionFromFlags(cmd, sess)
	if err != nil {
		return err
	}

	rec := &events.Recorder{}
	sch := settle(sess, sel, scheduler.WithReporter(events.Multi{rec, events.Log{Logger: sess.logger}}))
	defer sch.Close()

	res := sch.Result()
	if res == nil {
		return unresolved(sch)
	}

	rep := newReport(res, sch.Selection(), rec.Changes())
	if capacityMB > 0 {
		rep.setCapacity(capacityMB, sess.settings.BinaryUnits)
	}
	if path, _ := cmd.Flags().GetString("report"); path != "" {
		written, err := writeReport(path, rep)
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("write report: %w", err)}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written: %s\n", written)
	}

	out := cmd.OutOrStdout()
	if output == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		return enc.Close()
	}

	notes := rep.Adjusted
	if rep.Capacity != nil {
		notes = append(notes, fmt.Sprintf("%s holds %s of footage", rep.Capacity.Size, rep.Capacity.Fits))
	}
	fmt.Fprintln(out, ui.ResultPanel(ui.DefaultStyles(), res, ui.PanelOptions{
		Binary: sess.settings.BinaryUnits,
		Notes:  notes,
	}))
	return nil
}

// unresolved explains why the settled selection did not price.
func unresolved(sch *scheduler.Scheduler) error {
	sel := sch.Selection()
	outcome := sch.Outcome()
	switch outcome {
	case calc.OutcomeMalformed:
		return &ExitError{Code: ExitCatalogError, Err: fmt.Errorf("%s: %s / %s / %s", outcome, sel.CategoryID, sel.CodecID, sel.VariantName)}
	case calc.OutcomeIncomplete:
		missing := sel.Missing()
		if len(missing) == 0 {
			return &ExitError{Code: ExitIncomplete, Err: errors.New("selection incomplete: duration must be greater than zero")}
		}
		first := missing[0]
		ids := model.OptionIDs(sch.Options(first))
		if len(ids) == 0 {
			return &ExitError{Code: ExitIncomplete, Err: fmt.Errorf("selection incomplete: no %s is available for %s", first, describe(sel))}
		}
		return &ExitError{Code: ExitIncomplete, Err: fmt.Errorf("selection incomplete: choose --%s from: %s", flagFor(first), strings.Join(ids, ", "))}
	}
	msg := sch.Explain()
	if msg == "" {
		msg = outcome.String()
	}
	return &ExitError{Code: ExitIncomplete, Err: errors.New(msg)}
}

func flagFor(f model.Field) string {
	for _, lf := range levelFlags {
		if lf.field == f {
			return lf.flag
		}
	}
	return string(f)
}

func describe(sel model.Selection) string {
	var parts []string
	for _, v := range []string{sel.CategoryID, sel.CodecID, sel.VariantName} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "this selection"
	}
	return strings.Join(parts, " / ")
}
