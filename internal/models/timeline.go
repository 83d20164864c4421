package models

// Segment kinds on a server timeline.
const (
	SegmentBusy = "busy"
	SegmentIdle = "idle"
)

// TimelineSegment is one contiguous busy or idle stretch of a server.
type TimelineSegment struct {
	Kind     string `json:"kind"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Customer *int   `json:"customer,omitempty"`
}

// ServerTimeline aggregates the segments of a single server.
type ServerTimeline struct {
	Server   Server            `json:"server"`
	Segments []TimelineSegment `json:"segments"`
	Busy     int               `json:"busy"`
	Idle     int               `json:"idle"`
}
