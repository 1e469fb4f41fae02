package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timelapsetech/videocalc-db/internal/share"
)

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [url]",
		Short: "Build a shareable link for a selection, or read one back",
		Long: "Without an argument, link prints the query (or full URL with --base) that reproduces " +
			"the selection given by the flags. With an argument, it decodes the link, validates it " +
			"against the codec database and prints the resulting selection.",
		Example: `  videocalc link -c cinema --codec dcp --variant "DCP 4K" -d 2:00:00
  videocalc link --base https://calc.example.com/ --preset "News TV"
  videocalc link "https://calc.example.com/?category=raw&codec=braw"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLink,
	}
	bindSelectionFlags(cmd.Flags())
	cmd.Flags().String("base", "", "Base URL to prefix the query with")
	registerSelectionCompletions(cmd)
	return cmd
}

func runLink(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		l, err := share.Decode(args[0])
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		sch := settle(sess, share.Validate(l, sess.catalog))
		defer sch.Close()
		sel := sch.Selection()
		for _, lf := range levelFlags {
			fmt.Fprintf(out, "%-11s %s\n", lf.flag+":", sel.Get(lf.field))
		}
		fmt.Fprintf(out, "%-11s %s\n", "duration:", sel.Duration)
		return nil
	}

	sel, err := selectionFromFlags(cmd, sess)
	if err != nil {
		return err
	}
	sch := settle(sess, sel)
	defer sch.Close()

	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		fmt.Fprintln(out, "?"+share.Encode(sch.Selection()).Encode())
		return nil
	}
	u, err := share.URL(base, sch.Selection())
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	fmt.Fprintln(out, u)
	return nil
}
