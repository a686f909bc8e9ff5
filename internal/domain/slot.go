package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DayStatus aggregate booking posture of a calendar day
type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayFull      DayStatus = "full"
	DayClosed    DayStatus = "closed"
)

// DayStatusEntry status of one calendar day
type DayStatusEntry struct {
	Date   time.Time
	Status DayStatus
}

// FirstSlot result of the first-open-slot search
type FirstSlot struct {
	Found bool
	Date  time.Time
	Time  types.TimeString
}

// Interval occupied or requested time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps returns true if the intervals really intersect
// Touching intervals (one ends exactly where the other starts) do not overlap
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}
