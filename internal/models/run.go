package models

import "time"

// RunKind names the topology a run was executed against.
type RunKind string

const (
	KindSingle RunKind = "single"
	KindDual   RunKind = "dual"
)

// RunParams captures the inputs of a run. Bounds that do not apply to the
// run kind are left zero.
type RunParams struct {
	Customers           int `json:"customers" yaml:"customers"`
	MaxInterArrival     int `json:"max_interarrival" yaml:"max_interarrival"`
	MaxServiceTime      int `json:"max_service_time,omitempty" yaml:"max_service_time"`
	MaxServiceTimeAble  int `json:"max_service_time_able,omitempty" yaml:"max_service_time_able"`
	MaxServiceTimeBaker int `json:"max_service_time_baker,omitempty" yaml:"max_service_time_baker"`
}

// Summary holds derived statistics of a run, rounded for display.
type Summary struct {
	AverageInterArrival  float64            `json:"average_interarrival"`
	AverageServiceTime   float64            `json:"average_service_time"`
	AverageWaitingTime   float64            `json:"average_waiting_time"`
	AverageWaitOfWaiting float64            `json:"average_wait_of_waiting"`
	AverageTimeInSystem  float64            `json:"average_time_in_system"`
	ProbabilityOfWait    float64            `json:"probability_of_wait"`
	Makespan             int                `json:"makespan"`
	IdleFraction         float64            `json:"idle_fraction"`
	Servers              []ServerStatistics `json:"servers"`
}

// ServerStatistics describes how much of the run a server spent working.
type ServerStatistics struct {
	Server             Server  `json:"server"`
	Customers          int     `json:"customers"`
	TotalServiceTime   int     `json:"total_service_time"`
	AverageServiceTime float64 `json:"average_service_time"`
	Utilization        float64 `json:"utilization"`
}

// RunEntry stores one executed simulation.
type RunEntry struct {
	ID        string             `json:"id"`
	Kind      RunKind            `json:"kind"`
	Seed      uint64             `json:"seed"`
	Params    RunParams          `json:"params"`
	Single    *SingleQueueRecord `json:"single,omitempty"`
	Dual      *DualServerRecord  `json:"dual,omitempty"`
	Summary   Summary            `json:"summary"`
	CreatedAt time.Time          `json:"created_at"`
}
