package model

import (
	"errors"
	"time"
)

// Membership represents a user's membership window. The start date is fixed
// at creation; the end date is always start date plus the offset implied by
// the current duration code.
type Membership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Duration  string    `json:"duration"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`

	// Joined fields (not always populated).
	Username string `json:"username,omitempty"`
}

// Duration codes.
const (
	DurationSixMonths = "6months"
	DurationOneYear   = "1year"
	DurationTwoYears  = "2years"
)

// Membership statuses.
const (
	MembershipActive    = "active"
	MembershipCancelled = "cancelled"
)

// ErrInvalidDuration is returned for duration codes outside the known set.
var ErrInvalidDuration = errors.New("invalid membership duration")

// durationDays maps each duration code to its fixed day offset.
var durationDays = map[string]int{
	DurationSixMonths: 180,
	DurationOneYear:   365,
	DurationTwoYears:  730,
}

// ComputeEndDate returns start plus the day offset for the given duration
// code. Unknown codes fail with ErrInvalidDuration rather than silently
// leaving the end date stale.
func ComputeEndDate(start time.Time, duration string) (time.Time, error) {
	days, ok := durationDays[duration]
	if !ok {
		return time.Time{}, ErrInvalidDuration
	}
	return start.AddDate(0, 0, days), nil
}
