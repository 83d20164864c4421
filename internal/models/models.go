package models

// Server labels the server a customer was served by.
type Server string

const (
	Able  Server = "Able"
	Baker Server = "Baker"

	// SingleServer labels the only server of a single-queue run.
	SingleServer Server = "Server"
)

// Metric is a single named value of a record, in presentation order.
type Metric struct {
	Name  string
	Value any
}

// SingleQueueRecord is the full timeline of a single-server run.
type SingleQueueRecord struct {
	InterArrivalTimes  []int   `json:"inter_arrival_times"`
	ServiceTimes       []int   `json:"service_times"`
	ArrivalTimes       []int   `json:"arrival_times"`
	ServiceStartTimes  []int   `json:"time_service_begins"`
	ServiceEndTimes    []int   `json:"time_service_ends"`
	WaitingTimes       []int   `json:"waiting_times"`
	IdleTimes          []int   `json:"idle_times"`
	TotalWaitingTime   int     `json:"total_waiting_time"`
	AverageWaitingTime float64 `json:"average_waiting_time"`
	TotalServiceTime   int     `json:"total_service_time"`
	TotalIdleTime      int     `json:"total_idle_time"`
}

// Customers returns the number of customers in the record.
func (r SingleQueueRecord) Customers() int {
	return len(r.ArrivalTimes)
}

// Metrics lists the record values keyed by their report names.
func (r SingleQueueRecord) Metrics() []Metric {
	return []Metric{
		{"Inter-Arrival Times", r.InterArrivalTimes},
		{"Service Times", r.ServiceTimes},
		{"Arrival Times", r.ArrivalTimes},
		{"Time Service Begins", r.ServiceStartTimes},
		{"Time Service Ends", r.ServiceEndTimes},
		{"Waiting Times", r.WaitingTimes},
		{"Idle Times", r.IdleTimes},
		{"Average Waiting Time", r.AverageWaitingTime},
		{"Total Service Time", r.TotalServiceTime},
		{"Total Idle Time", r.TotalIdleTime},
	}
}

// DualServerRecord is the full timeline of an Able/Baker run.
type DualServerRecord struct {
	InterArrivalTimes     []int    `json:"inter_arrival_times"`
	ServiceTimesAble      []int    `json:"service_times_able"`
	ServiceTimesBaker     []int    `json:"service_times_baker"`
	ArrivalTimes          []int    `json:"arrival_times"`
	ServiceStartTimes     []int    `json:"time_service_begins"`
	ServiceEndTimes       []int    `json:"time_service_ends"`
	WaitingTimes          []int    `json:"waiting_times"`
	IdleTimes             []int    `json:"idle_times"`
	ServerAssignments     []Server `json:"server_assignments"`
	TotalWaitingTime      int      `json:"total_waiting_time"`
	AverageWaitingTime    float64  `json:"average_waiting_time"`
	TotalServiceTimeAble  int      `json:"total_service_time_able"`
	TotalServiceTimeBaker int      `json:"total_service_time_baker"`
	TotalIdleTime         int      `json:"total_idle_time"`
}

// Customers returns the number of customers in the record.
func (r DualServerRecord) Customers() int {
	return len(r.ArrivalTimes)
}

// ServiceTime returns the duration actually consumed by customer i, i.e. the
// sample drawn for the server it was assigned to.
func (r DualServerRecord) ServiceTime(i int) int {
	if r.ServerAssignments[i] == Baker {
		return r.ServiceTimesBaker[i]
	}
	return r.ServiceTimesAble[i]
}

// Metrics lists the record values keyed by their report names.
func (r DualServerRecord) Metrics() []Metric {
	return []Metric{
		{"Inter-Arrival Times", r.InterArrivalTimes},
		{"Service Times Able", r.ServiceTimesAble},
		{"Service Times Baker", r.ServiceTimesBaker},
		{"Arrival Times", r.ArrivalTimes},
		{"Time Service Begins", r.ServiceStartTimes},
		{"Time Service Ends", r.ServiceEndTimes},
		{"Waiting Times", r.WaitingTimes},
		{"Idle Times", r.IdleTimes},
		{"Server Assignments", r.ServerAssignments},
		{"Average Waiting Time", r.AverageWaitingTime},
		{"Total Service Time Able", r.TotalServiceTimeAble},
		{"Total Service Time Baker", r.TotalServiceTimeBaker},
		{"Total Idle Time", r.TotalIdleTime},
	}
}
