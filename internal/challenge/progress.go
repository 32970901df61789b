package challenge

import (
	"suds/internal/dateutil"
	"suds/internal/ledger"
	"suds/internal/model"
)

// Phase is the display state of a challenge relative to today.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseOnTrack  Phase = "on-track"
	PhaseBehind   Phase = "behind"
	PhaseFailing  Phase = "failing" // target mathematically unreachable
	PhaseSuccess  Phase = "success"
	PhaseFailed   Phase = "failed"
)

// Progress summarizes an active challenge for display.
type Progress struct {
	TotalBudget  float64
	TargetAmount float64
	SavedSoFar   float64
	DayNumber    int // 1-based, clamped to [0, TotalDays]
	TotalDays    int
	DaysLeft     int
	Phase        Phase
}

// Report derives the progress of the active challenge from the stats
// timeline. Pacing compares savings so far against the elapsed fraction of
// the target amount.
func Report(c model.Challenge, s model.Settings, stats ledger.StatsMap, today dateutil.Date) Progress {
	totalBudget := TotalBudget(c, s)
	targetAmount := totalBudget * c.TargetFraction()

	pastEnd := today.After(c.EndDate)
	upcoming := today.Before(c.StartDate)
	refDate := today
	if pastEnd {
		refDate = c.EndDate
	}
	saved := stats.Lookup(refDate).ChallengeSavedSoFar

	var phase Phase
	switch {
	case upcoming:
		phase = PhaseUpcoming
	case pastEnd:
		phase = PhaseFailed
		if saved >= targetAmount {
			phase = PhaseSuccess
		}
	case IsFailed(c, s, saved, today):
		phase = PhaseFailing
	default:
		duration := dateutil.DaysBetween(c.StartDate, c.EndDate)
		ratio := 1.0
		if duration > 0 {
			ratio = clamp01(float64(dateutil.DaysBetween(c.StartDate, today)) / float64(duration))
		}
		phase = PhaseBehind
		if saved >= targetAmount*ratio {
			phase = PhaseOnTrack
		}
	}

	totalDays := dateutil.DaysBetween(c.StartDate, c.EndDate) + 1
	dayNumber := dateutil.DaysBetween(c.StartDate, today) + 1
	if dayNumber < 0 {
		dayNumber = 0
	}
	if dayNumber > totalDays {
		dayNumber = totalDays
	}
	daysLeft := dateutil.DaysBetween(today, c.EndDate)
	if daysLeft < 0 {
		daysLeft = 0
	}

	return Progress{
		TotalBudget:  totalBudget,
		TargetAmount: targetAmount,
		SavedSoFar:   saved,
		DayNumber:    dayNumber,
		TotalDays:    totalDays,
		DaysLeft:     daysLeft,
		Phase:        phase,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
