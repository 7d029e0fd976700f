package domain

import "time"

// Priority is the urgency level of a task. Values outside the four known
// levels are kept as-is and carry no deadline offset.
type Priority string

const (
	PriorityUrgent Priority = "Urgent"
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the known levels from most to least urgent.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

var offsetDays = map[Priority]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityMedium: 7,
	PriorityLow:    30,
}

func (p Priority) Valid() bool {
	_, ok := offsetDays[p]
	return ok
}

// OffsetDays returns how many calendar days after creation a task of this
// priority should be done. Unknown priorities return 0.
func (p Priority) OffsetDays() int {
	return offsetDays[p]
}

// ComputeDeadline adds the priority offset to start in calendar days, keeping
// the time of day and rolling over months and years.
func ComputeDeadline(start time.Time, p Priority) time.Time {
	return start.AddDate(0, 0, p.OffsetDays())
}
