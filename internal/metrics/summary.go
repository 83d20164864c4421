package metrics

import (
	"math"

	"queuesim/internal/models"
)

// serverAcc accumulates per-server totals while walking a record.
type serverAcc struct {
	customers int
	service   int
}

// SummarizeSingle derives the textbook statistics of a single-server run.
func SummarizeSingle(rec models.SingleQueueRecord) models.Summary {
	n := rec.Customers()
	if n == 0 {
		return models.Summary{}
	}
	summary := summarize(rec.InterArrivalTimes, rec.WaitingTimes, rec.ServiceEndTimes, rec.TotalServiceTime, rec.TotalIdleTime, 1)
	summary.Servers = []models.ServerStatistics{
		serverStats(models.SingleServer, serverAcc{customers: n, service: rec.TotalServiceTime}, summary.Makespan),
	}
	return summary
}

// SummarizeDual derives the textbook statistics of an Able/Baker run.
func SummarizeDual(rec models.DualServerRecord) models.Summary {
	n := rec.Customers()
	if n == 0 {
		return models.Summary{}
	}

	state := map[models.Server]*serverAcc{
		models.Able:  {},
		models.Baker: {},
	}
	for i, server := range rec.ServerAssignments {
		acc := state[server]
		acc.customers++
		acc.service += rec.ServiceTime(i)
	}

	total := rec.TotalServiceTimeAble + rec.TotalServiceTimeBaker
	summary := summarize(rec.InterArrivalTimes, rec.WaitingTimes, rec.ServiceEndTimes, total, rec.TotalIdleTime, 2)
	summary.Servers = []models.ServerStatistics{
		serverStats(models.Able, *state[models.Able], summary.Makespan),
		serverStats(models.Baker, *state[models.Baker], summary.Makespan),
	}
	return summary
}

// summarize measures idle time against the combined horizon of all servers,
// each running until makespan.
func summarize(gaps, waits, ends []int, totalService, totalIdle, servers int) models.Summary {
	n := len(waits)
	totalWait, waiting := 0, 0
	for _, w := range waits {
		totalWait += w
		if w > 0 {
			waiting++
		}
	}
	makespan := 0
	for _, end := range ends {
		makespan = max(makespan, end)
	}
	totalGap := 0
	for _, g := range gaps {
		totalGap += g
	}

	return models.Summary{
		AverageInterArrival:  round2(ratio(totalGap, n-1)),
		AverageServiceTime:   round2(ratio(totalService, n)),
		AverageWaitingTime:   round2(ratio(totalWait, n)),
		AverageWaitOfWaiting: round2(ratio(totalWait, waiting)),
		AverageTimeInSystem:  round2(ratio(totalWait+totalService, n)),
		ProbabilityOfWait:    round2(ratio(waiting, n)),
		Makespan:             makespan,
		IdleFraction:         round2(ratio(totalIdle, servers*makespan)),
	}
}

func serverStats(server models.Server, acc serverAcc, makespan int) models.ServerStatistics {
	return models.ServerStatistics{
		Server:             server,
		Customers:          acc.customers,
		TotalServiceTime:   acc.service,
		AverageServiceTime: round2(ratio(acc.service, acc.customers)),
		Utilization:        round2(ratio(acc.service, makespan)),
	}
}

func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
