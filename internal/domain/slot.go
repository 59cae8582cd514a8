package domain

import "time"

// TimeSlot is a bookable window on a given day. Generated on demand, never persisted on its own
type TimeSlot struct {
	Start       time.Time
	End         time.Time
	IsAvailable bool
}

// Duration returns the length of the slot
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// StartsBefore returns true if the slot starts before t
func (s TimeSlot) StartsBefore(t time.Time) bool {
	return s.Start.Before(t)
}
