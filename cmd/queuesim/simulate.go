package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"queuesim/internal/models"
	"queuesim/internal/report"
	"queuesim/internal/runner"
)

// outputFlags control how a finished run is printed.
type outputFlags struct {
	seed    uint64
	save    bool
	json    bool
	table   bool
	summary bool
	chart   bool
	width   int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&o.save, "save", false, "append the run to the history file")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the run as JSON")
	cmd.Flags().BoolVar(&o.table, "table", false, "print a per-customer table")
	cmd.Flags().BoolVar(&o.summary, "summary", false, "print derived statistics")
	cmd.Flags().BoolVar(&o.chart, "chart", false, "print a busy/idle chart per server")
	cmd.Flags().IntVar(&o.width, "width", 0, "chart width in cells")
}

func (o *outputFlags) options() report.Options {
	return report.Options{Table: o.table, Summary: o.summary, Chart: o.chart, ChartWidth: o.width}
}

func (a *app) newRunner(save bool) (*runner.Runner, error) {
	if !save {
		return runner.New(a.logger), nil
	}
	store, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	return runner.New(a.logger, runner.WithStore(store)), nil
}

func newSingleCmd(a *app) *cobra.Command {
	var out outputFlags
	var customers, maxGap, maxService int
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Simulate a single-server queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.cfg.Single
			overrideInt(cmd, "customers", &p.Customers, customers)
			overrideInt(cmd, "max-interarrival", &p.MaxInterArrival, maxGap)
			overrideInt(cmd, "max-service", &p.MaxServiceTime, maxService)

			run, err := a.newRunner(out.save)
			if err != nil {
				return err
			}
			entry, err := run.RunSingle(cmd.Context(), out.seed, p)
			if err != nil {
				return err
			}
			return printRun(cmd.OutOrStdout(), entry, &out)
		},
	}
	cmd.Flags().IntVarP(&customers, "customers", "n", 0, "number of customers")
	cmd.Flags().IntVar(&maxGap, "max-interarrival", 0, "inclusive upper bound of inter-arrival gaps")
	cmd.Flags().IntVar(&maxService, "max-service", 0, "inclusive upper bound of service times")
	out.register(cmd)
	return cmd
}

func newDualCmd(a *app) *cobra.Command {
	var out outputFlags
	var customers, maxGap, maxAble, maxBaker int
	cmd := &cobra.Command{
		Use:   "dual",
		Short: "Simulate the Able/Baker two-server queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.cfg.Dual
			overrideInt(cmd, "customers", &p.Customers, customers)
			overrideInt(cmd, "max-interarrival", &p.MaxInterArrival, maxGap)
			overrideInt(cmd, "max-service-able", &p.MaxServiceTimeAble, maxAble)
			overrideInt(cmd, "max-service-baker", &p.MaxServiceTimeBaker, maxBaker)

			run, err := a.newRunner(out.save)
			if err != nil {
				return err
			}
			entry, err := run.RunDual(cmd.Context(), out.seed, p)
			if err != nil {
				return err
			}
			return printRun(cmd.OutOrStdout(), entry, &out)
		},
	}
	cmd.Flags().IntVarP(&customers, "customers", "n", 0, "number of customers")
	cmd.Flags().IntVar(&maxGap, "max-interarrival", 0, "inclusive upper bound of inter-arrival gaps")
	cmd.Flags().IntVar(&maxAble, "max-service-able", 0, "inclusive upper bound of Able's service times")
	cmd.Flags().IntVar(&maxBaker, "max-service-baker", 0, "inclusive upper bound of Baker's service times")
	out.register(cmd)
	return cmd
}

func newBothCmd(a *app) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "both",
		Short: "Run the configured single-server and dual-server simulations back to back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, err := a.newRunner(out.save)
			if err != nil {
				return err
			}
			single, err := run.RunSingle(cmd.Context(), out.seed, a.cfg.Single)
			if err != nil {
				return err
			}
			dual, err := run.RunDual(cmd.Context(), out.seed, a.cfg.Dual)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := printRun(w, single, &out); err != nil {
				return err
			}
			fmt.Fprintln(w)
			return printRun(w, dual, &out)
		},
	}
	out.register(cmd)
	return cmd
}

func overrideInt(cmd *cobra.Command, flag string, dst *int, value int) {
	if cmd.Flags().Changed(flag) {
		*dst = value
	}
}

func printRun(w io.Writer, entry models.RunEntry, out *outputFlags) error {
	if out.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	}
	return report.WriteRun(w, entry, out.options())
}
