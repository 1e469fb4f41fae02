package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/ui"
)

func newOptionsCmd() *cobra.Command {
	levels := make([]string, 0, len(model.Levels))
	for _, l := range model.Levels {
		levels = append(levels, string(l))
	}
	cmd := &cobra.Command{
		Use:   "options <category|codec|variant|resolution|framerate>",
		Short: "List the choices a selection level offers",
		Long: "List the choices a selection level offers for the selection given by the flags. " +
			"The current value is marked with *.",
		Example: `  videocalc options codec -c camera
  videocalc options framerate -c broadcast --codec jpeg2000 --variant "J2K Broadcast HD" -r 1080i`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: levels,
		RunE:      runOptions,
	}
	bindSelectionFlags(cmd.Flags())
	registerSelectionCompletions(cmd)
	return cmd
}

func runOptions(cmd *cobra.Command, args []string) error {
	field, err := model.ParseField(args[0])
	if err != nil || !field.IsLevel() {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("unknown level %q (valid: category|codec|variant|resolution|framerate)", args[0])}
	}
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	sel, err := selectionFromFlags(cmd, sess)
	if err != nil {
		return err
	}
	sch := settle(sess, sel)
	defer sch.Close()

	st := ui.DefaultStyles()
	out := cmd.OutOrStdout()
	opts := sch.Options(field)
	if len(opts) == 0 {
		fmt.Fprintln(out, st.Faint.Render("No "+string(field)+" is available for this selection."))
		return nil
	}
	current := sch.Selection().Get(field)
	for _, o := range opts {
		mark := " "
		if o.ID == current {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-16s %s", mark, o.ID, o.Name)
		if o.Class != "" {
			line += " " + st.Faint.Render("["+o.Class+"]")
		}
		fmt.Fprintln(out, line)
	}
	if field == model.FieldFrameRate {
		if hint := sch.Hint(); hint != "" {
			fmt.Fprintln(out, st.Faint.Render(hint))
		}
	}
	return nil
}
