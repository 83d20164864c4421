package queue

import (
	"queuesim/internal/models"
)

// SingleParams are the inputs of a single-server run.
type SingleParams struct {
	Customers       int
	MaxInterArrival int
	MaxServiceTime  int
}

// Validate reports the first parameter outside its domain.
func (p SingleParams) Validate() error {
	return validate(
		param{"num_customers", p.Customers},
		param{"max_interarrival", p.MaxInterArrival},
		param{"max_service_time", p.MaxServiceTime},
	)
}

// SimulateSingle draws one trial for a single-server queue and returns its
// timeline. Gaps are drawn before service times.
func SimulateSingle(s Sampler, p SingleParams) (models.SingleQueueRecord, error) {
	if err := p.Validate(); err != nil {
		return models.SingleQueueRecord{}, err
	}
	gaps := drawGaps(s, p.Customers, p.MaxInterArrival)
	service := drawServiceTimes(s, p.Customers, p.MaxServiceTime)
	return BuildSingleTimeline(gaps, service)
}

// BuildSingleTimeline walks pre-drawn samples through one server. The server
// takes customers strictly in arrival order.
func BuildSingleTimeline(gaps, service []int) (models.SingleQueueRecord, error) {
	if err := checkSamples(gaps, service); err != nil {
		return models.SingleQueueRecord{}, err
	}

	n := len(gaps)
	rec := models.SingleQueueRecord{
		InterArrivalTimes: append([]int(nil), gaps...),
		ServiceTimes:      append([]int(nil), service...),
		ArrivalTimes:      DeriveArrivals(gaps),
		ServiceStartTimes: make([]int, n),
		ServiceEndTimes:   make([]int, n),
		WaitingTimes:      make([]int, n),
		IdleTimes:         make([]int, n),
	}

	free := 0
	for i, arrival := range rec.ArrivalTimes {
		start, idle := arrival, 0
		if i > 0 {
			idle = max(0, arrival-free)
			start = max(arrival, free)
		}
		rec.ServiceStartTimes[i] = start
		rec.ServiceEndTimes[i] = start + service[i]
		rec.WaitingTimes[i] = start - arrival
		rec.IdleTimes[i] = idle
		free = rec.ServiceEndTimes[i]
	}

	rec.TotalWaitingTime = sum(rec.WaitingTimes)
	rec.AverageWaitingTime = average(rec.TotalWaitingTime, n)
	rec.TotalServiceTime = sum(rec.ServiceTimes)
	rec.TotalIdleTime = sum(rec.IdleTimes)
	return rec, nil
}
