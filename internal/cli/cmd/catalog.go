package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timelapsetech/videocalc-db/internal/ui"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the codec database",
	}
	cmd.AddCommand(newCatalogCheckCmd())
	cmd.AddCommand(newCatalogListCmd())
	return cmd
}

func newCatalogCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the codec database and report unusable data",
		Long: "Report variants with empty or malformed bitrate tables, non-positive bitrates, " +
			"duplicate variant names and unknown resolution or frame-rate ids. " +
			"Exits with status 2 when anything is found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			st := ui.DefaultStyles()
			out := cmd.OutOrStdout()
			issues := sess.catalog.Issues()
			if len(issues) == 0 {
				fmt.Fprintln(out, st.Success.Render("✓ codec database OK"))
				return nil
			}
			for _, is := range issues {
				fmt.Fprintln(out, st.Warning.Render("• ")+is.String())
			}
			return &ExitError{Code: ExitCatalogError, Err: fmt.Errorf("%d issue(s) found", len(issues))}
		},
	}
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the categories, codecs and variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			st := ui.DefaultStyles()
			out := cmd.OutOrStdout()
			for _, cat := range sess.catalog.Categories() {
				fmt.Fprintf(out, "%s %s\n", st.Header.Render(cat.ID), st.Faint.Render(cat.Name))
				for _, cd := range cat.Codecs {
					fmt.Fprintf(out, "  %s %s\n", cd.ID, st.Faint.Render(cd.Name))
					for _, v := range cd.Variants {
						fmt.Fprintf(out, "    %s %s\n", v.Name, st.Faint.Render(fmt.Sprintf("(%d resolutions)", v.Bitrates.Len())))
					}
				}
			}
			return nil
		},
	}
}
