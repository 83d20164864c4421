package queue

import (
	"queuesim/internal/models"
)

// DualParams are the inputs of an Able/Baker run.
type DualParams struct {
	Customers           int
	MaxInterArrival     int
	MaxServiceTimeAble  int
	MaxServiceTimeBaker int
}

// Validate reports the first parameter outside its domain.
func (p DualParams) Validate() error {
	return validate(
		param{"num_customers", p.Customers},
		param{"max_interarrival", p.MaxInterArrival},
		param{"max_service_time_able", p.MaxServiceTimeAble},
		param{"max_service_time_baker", p.MaxServiceTimeBaker},
	)
}

// serverState holds the time at which each server becomes free.
type serverState struct {
	able  int
	baker int
}

type assignment struct {
	server models.Server
	start  int
	idle   int
}

// assign picks the server for a customer arriving at the given time.
// When both servers are free Able always wins, even if Baker has been idle
// longer.
func (st serverState) assign(arrival int) assignment {
	switch {
	case st.able <= arrival && st.baker <= arrival:
		return assignment{
			server: models.Able,
			start:  arrival,
			idle:   arrival - max(st.able, st.baker),
		}
	case st.able <= st.baker:
		return assignment{
			server: models.Able,
			start:  max(arrival, st.able),
			idle:   max(0, arrival-st.able),
		}
	default:
		return assignment{
			server: models.Baker,
			start:  max(arrival, st.baker),
			idle:   max(0, arrival-st.baker),
		}
	}
}

// complete returns the state after server finishes a customer at end.
func (st serverState) complete(server models.Server, end int) serverState {
	if server == models.Able {
		st.able = end
	} else {
		st.baker = end
	}
	return st
}

// SimulateDual draws one trial for the two-server queue and returns its
// timeline. Gaps are drawn first, then Able's service times, then Baker's.
func SimulateDual(s Sampler, p DualParams) (models.DualServerRecord, error) {
	if err := p.Validate(); err != nil {
		return models.DualServerRecord{}, err
	}
	gaps := drawGaps(s, p.Customers, p.MaxInterArrival)
	able := drawServiceTimes(s, p.Customers, p.MaxServiceTimeAble)
	baker := drawServiceTimes(s, p.Customers, p.MaxServiceTimeBaker)
	return BuildDualTimeline(gaps, able, baker)
}

// BuildDualTimeline walks pre-drawn samples through the Able/Baker servers.
// Each customer consumes only the service time of the server it lands on.
func BuildDualTimeline(gaps, able, baker []int) (models.DualServerRecord, error) {
	if err := checkSamples(gaps, able, baker); err != nil {
		return models.DualServerRecord{}, err
	}

	n := len(gaps)
	rec := models.DualServerRecord{
		InterArrivalTimes: append([]int(nil), gaps...),
		ServiceTimesAble:  append([]int(nil), able...),
		ServiceTimesBaker: append([]int(nil), baker...),
		ArrivalTimes:      DeriveArrivals(gaps),
		ServiceStartTimes: make([]int, n),
		ServiceEndTimes:   make([]int, n),
		WaitingTimes:      make([]int, n),
		IdleTimes:         make([]int, n),
		ServerAssignments: make([]models.Server, n),
	}

	var st serverState
	for i, arrival := range rec.ArrivalTimes {
		a := st.assign(arrival)
		service := able[i]
		if a.server == models.Baker {
			service = baker[i]
			rec.TotalServiceTimeBaker += service
		} else {
			rec.TotalServiceTimeAble += service
		}
		end := a.start + service

		rec.ServerAssignments[i] = a.server
		rec.ServiceStartTimes[i] = a.start
		rec.ServiceEndTimes[i] = end
		rec.WaitingTimes[i] = a.start - arrival
		rec.IdleTimes[i] = a.idle
		st = st.complete(a.server, end)
	}

	rec.TotalWaitingTime = sum(rec.WaitingTimes)
	rec.AverageWaitingTime = average(rec.TotalWaitingTime, n)
	rec.TotalIdleTime = sum(rec.IdleTimes)
	return rec, nil
}
