package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs stored in the history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tCREATED\tSEED\tCUSTOMERS\tAVG WAIT")
			for _, entry := range store.HistoryN(limit) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.2f\n",
					entry.ID, entry.Kind, entry.CreatedAt.Format(time.RFC3339), entry.Seed,
					entry.Params.Customers, entry.Summary.AverageWaitingTime)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of most recent runs to list (0 for all)")
	cmd.AddCommand(newRunsShowCmd(a))
	return cmd
}

func newRunsShowCmd(a *app) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStorage()
			if err != nil {
				return err
			}
			entry, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("run %s not found in %s", args[0], store.Path())
			}
			return printRun(cmd.OutOrStdout(), entry, &out)
		},
	}
	cmd.Flags().BoolVar(&out.json, "json", false, "print the run as JSON")
	cmd.Flags().BoolVar(&out.table, "table", true, "print a per-customer table")
	cmd.Flags().BoolVar(&out.summary, "summary", true, "print derived statistics")
	cmd.Flags().BoolVar(&out.chart, "chart", true, "print a busy/idle chart per server")
	cmd.Flags().IntVar(&out.width, "width", 0, "chart width in cells")
	return cmd
}

