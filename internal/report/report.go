// Package report renders simulation records as plain text.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"queuesim/internal/history"
	"queuesim/internal/models"
)

// Options selects the optional sections of a rendered run.
type Options struct {
	Table      bool
	Summary    bool
	Chart      bool
	ChartWidth int
}

// Record is implemented by both timeline records.
type Record interface {
	Metrics() []models.Metric
	Customers() int
}

// WriteMetrics prints every metric as a "Name: value" line in record order.
func WriteMetrics(w io.Writer, rec Record) error {
	for _, m := range rec.Metrics() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", m.Name, formatValue(m.Value)); err != nil {
			return err
		}
	}
	return nil
}

// WriteRun renders a stored run: a title, the metric lines and the sections
// enabled in opts.
func WriteRun(w io.Writer, entry models.RunEntry, opts Options) error {
	var (
		rec       Record
		timelines []models.ServerTimeline
		rows      [][]string
		header    []string
	)
	switch {
	case entry.Single != nil:
		rec = entry.Single
		timelines = history.BuildSingleTimeline(*entry.Single)
		header, rows = singleRows(*entry.Single)
		fmt.Fprintln(w, "Single Queue Simulation Results:")
	case entry.Dual != nil:
		rec = entry.Dual
		timelines = history.BuildDualTimelines(*entry.Dual)
		header, rows = dualRows(*entry.Dual)
		fmt.Fprintln(w, "Multi-Queue Simulation Results:")
	default:
		return fmt.Errorf("run %s has no record", entry.ID)
	}

	if err := WriteMetrics(w, rec); err != nil {
		return err
	}
	if opts.Table {
		fmt.Fprintln(w)
		if err := writeTable(w, header, rows); err != nil {
			return err
		}
	}
	if opts.Summary {
		fmt.Fprintln(w)
		WriteSummary(w, entry.Summary)
	}
	if opts.Chart {
		fmt.Fprintln(w)
		WriteChart(w, timelines, entry.Summary.Makespan, opts.ChartWidth)
	}
	return nil
}

// WriteSummary prints the derived statistics of a run.
func WriteSummary(w io.Writer, s models.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Average inter-arrival time:\t%.2f\n", s.AverageInterArrival)
	fmt.Fprintf(tw, "Average service time:\t%.2f\n", s.AverageServiceTime)
	fmt.Fprintf(tw, "Average waiting time:\t%.2f\n", s.AverageWaitingTime)
	fmt.Fprintf(tw, "Average wait of those who wait:\t%.2f\n", s.AverageWaitOfWaiting)
	fmt.Fprintf(tw, "Average time in system:\t%.2f\n", s.AverageTimeInSystem)
	fmt.Fprintf(tw, "Probability of waiting:\t%.2f\n", s.ProbabilityOfWait)
	fmt.Fprintf(tw, "Makespan:\t%d\n", s.Makespan)
	fmt.Fprintf(tw, "Idle fraction:\t%.2f\n", s.IdleFraction)
	for _, srv := range s.Servers {
		fmt.Fprintf(tw, "%s:\t%d customers, service %d (avg %.2f), utilization %.2f\n",
			srv.Server, srv.Customers, srv.TotalServiceTime, srv.AverageServiceTime, srv.Utilization)
	}
	_ = tw.Flush()
}

// WriteChart prints one occupancy row per server.
func WriteChart(w io.Writer, timelines []models.ServerTimeline, horizon, width int) {
	label := 0
	for _, tl := range timelines {
		label = max(label, len(tl.Server))
	}
	for _, tl := range timelines {
		fmt.Fprintf(w, "%-*s |%s| busy %d idle %d\n", label, tl.Server, history.Chart(tl, horizon, width), tl.Busy, tl.Idle)
	}
}

func singleRows(rec models.SingleQueueRecord) ([]string, [][]string) {
	header := []string{"Customer", "Inter-Arrival", "Arrival", "Service", "Begins", "Ends", "Wait", "Idle"}
	rows := make([][]string, 0, rec.Customers())
	for i := range rec.ArrivalTimes {
		rows = append(rows, ints(i+1, rec.InterArrivalTimes[i], rec.ArrivalTimes[i], rec.ServiceTimes[i],
			rec.ServiceStartTimes[i], rec.ServiceEndTimes[i], rec.WaitingTimes[i], rec.IdleTimes[i]))
	}
	return header, rows
}

func dualRows(rec models.DualServerRecord) ([]string, [][]string) {
	header := []string{"Customer", "Inter-Arrival", "Arrival", "Server", "Service", "Begins", "Ends", "Wait", "Idle"}
	rows := make([][]string, 0, rec.Customers())
	for i := range rec.ArrivalTimes {
		row := ints(i+1, rec.InterArrivalTimes[i], rec.ArrivalTimes[i])
		row = append(row, string(rec.ServerAssignments[i]))
		row = append(row, ints(rec.ServiceTime(i), rec.ServiceStartTimes[i], rec.ServiceEndTimes[i],
			rec.WaitingTimes[i], rec.IdleTimes[i])...)
		rows = append(rows, row)
	}
	return header, rows
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

func ints(values ...int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprint(val)
	}
}
