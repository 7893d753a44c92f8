package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	httpx "github.com/dreamteam/stockme-dashboard/internal/http"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect route guard behaviour",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "classify <path>...",
		Short: "Print whether each path is public or needs a session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range args {
				if err := writef(tw, "%s\t%s\n", p, httpx.Classify(p)); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	})
	return cmd
}
