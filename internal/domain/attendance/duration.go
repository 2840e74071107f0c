package attendance

import (
	"time"
)

// WorkDuration is the checkout summary derived from the record's timestamps.
type WorkDuration struct {
	TotalMinutes      int `json:"total_minutes"`
	BreakMinutes      int `json:"break_minutes"`
	ActualWorkMinutes int `json:"actual_work_minutes"`
}

// OpenBreak returns the break without an end time, or nil. The domain
// invariant allows at most one.
func (a *Attendance) OpenBreak() *BreakInterval {
	for i := range a.Breaks {
		if a.Breaks[i].EndTime == nil {
			return &a.Breaks[i]
		}
	}
	return nil
}

// FindBreak returns the break with the given ID, or nil.
func (a *Attendance) FindBreak(breakID string) *BreakInterval {
	for i := range a.Breaks {
		if a.Breaks[i].ID == breakID {
			return &a.Breaks[i]
		}
	}
	return nil
}

// CloseOpenBreak stamps the open break's end time, if any, and returns it.
func (a *Attendance) CloseOpenBreak(at time.Time) *BreakInterval {
	br := a.OpenBreak()
	if br == nil {
		return nil
	}
	end := at
	br.EndTime = &end
	return br
}

// TotalBreakMinutes sums all break intervals in whole minutes, counting an
// open break up to the given time. Never negative.
func (a *Attendance) TotalBreakMinutes(upto time.Time) int {
	total := 0
	for _, br := range a.Breaks {
		total += breakMinutes(br, upto)
	}
	return total
}

func breakMinutes(br BreakInterval, upto time.Time) int {
	end := upto
	if br.EndTime != nil && br.EndTime.Before(upto) {
		end = *br.EndTime
	}
	mins := int(end.Sub(br.StartTime).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

// WorkDurationAt computes the checkout summary for the given checkout time.
// A checkout at or before the check-in time, or break time exceeding total
// time, is a data-integrity fault and returns ErrNegativeWorkDuration.
func (a *Attendance) WorkDurationAt(checkOut time.Time) (WorkDuration, error) {
	if !checkOut.After(a.CheckInTime) {
		return WorkDuration{}, ErrNegativeWorkDuration
	}

	total := int(checkOut.Sub(a.CheckInTime).Minutes())
	breaks := a.TotalBreakMinutes(checkOut)
	actual := total - breaks
	if actual < 0 {
		return WorkDuration{}, ErrNegativeWorkDuration
	}

	return WorkDuration{
		TotalMinutes:      total,
		BreakMinutes:      breaks,
		ActualWorkMinutes: actual,
	}, nil
}
