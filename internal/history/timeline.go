package history

import (
	"sort"

	"queuesim/internal/models"
)

const (
	// DefaultChartWidth controls how many cells a rendered server row has.
	DefaultChartWidth = 60

	cellBusy    = '#'
	cellIdle    = '.'
	cellPartial = '+'
)

type visit struct {
	customer int
	start    int
	end      int
}

// BuildSingleTimeline converts a single-server record into busy and idle
// segments of its one server.
func BuildSingleTimeline(rec models.SingleQueueRecord) []models.ServerTimeline {
	visits := make([]visit, 0, rec.Customers())
	for i := range rec.ArrivalTimes {
		visits = append(visits, visit{customer: i, start: rec.ServiceStartTimes[i], end: rec.ServiceEndTimes[i]})
	}
	return []models.ServerTimeline{buildTimeline(models.SingleServer, visits)}
}

// BuildDualTimelines converts an Able/Baker record into per-server segments.
// Idle segments are measured from the server's own previous completion, so
// they may differ from the record's idle times when both servers were free.
func BuildDualTimelines(rec models.DualServerRecord) []models.ServerTimeline {
	visitMap := map[models.Server][]visit{}
	for i, server := range rec.ServerAssignments {
		visitMap[server] = append(visitMap[server], visit{
			customer: i,
			start:    rec.ServiceStartTimes[i],
			end:      rec.ServiceEndTimes[i],
		})
	}
	return []models.ServerTimeline{
		buildTimeline(models.Able, visitMap[models.Able]),
		buildTimeline(models.Baker, visitMap[models.Baker]),
	}
}

func buildTimeline(server models.Server, visits []visit) models.ServerTimeline {
	if len(visits) > 1 {
		sort.SliceStable(visits, func(i, j int) bool {
			return visits[i].start < visits[j].start
		})
	}

	timeline := models.ServerTimeline{
		Server:   server,
		Segments: make([]models.TimelineSegment, 0, 2*len(visits)),
	}
	free := 0
	for _, v := range visits {
		if v.start > free {
			timeline.Segments = append(timeline.Segments, models.TimelineSegment{
				Kind:  models.SegmentIdle,
				Start: free,
				End:   v.start,
			})
			timeline.Idle += v.start - free
		}
		customer := v.customer
		timeline.Segments = append(timeline.Segments, models.TimelineSegment{
			Kind:     models.SegmentBusy,
			Start:    v.start,
			End:      v.end,
			Customer: &customer,
		})
		timeline.Busy += v.end - v.start
		free = v.end
	}
	return timeline
}

// Chart renders a timeline into width cells spanning [0, horizon). A cell is
// '#' when fully busy, '.' when fully idle and '+' when mixed. Time after the
// server's last segment counts as idle.
func Chart(timeline models.ServerTimeline, horizon, width int) string {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if horizon <= 0 {
		return ""
	}
	if horizon < width {
		width = horizon
	}

	cells := make([]rune, width)
	cursor := 0
	for i := range cells {
		cellStart := i * horizon / width
		cellEnd := (i + 1) * horizon / width
		busy, nextCursor := busyWithin(timeline.Segments, cellStart, cellEnd, cursor)
		cursor = nextCursor
		switch {
		case busy == 0:
			cells[i] = cellIdle
		case busy == cellEnd-cellStart:
			cells[i] = cellBusy
		default:
			cells[i] = cellPartial
		}
	}
	return string(cells)
}

// busyWithin sums busy time overlapping [start, end). Segments are ordered,
// so the scan resumes from cursor.
func busyWithin(segments []models.TimelineSegment, start, end, cursor int) (int, int) {
	for cursor < len(segments) && segments[cursor].End <= start {
		cursor++
	}
	busy := 0
	for i := cursor; i < len(segments) && segments[i].Start < end; i++ {
		seg := segments[i]
		if seg.Kind != models.SegmentBusy {
			continue
		}
		busy += min(seg.End, end) - max(seg.Start, start)
	}
	return busy, cursor
}
