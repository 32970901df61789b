// Package model defines the core data types: settings, spend entries,
// challenges, and the derived per-day statistics.
package model

import (
	"time"

	"suds/internal/dateutil"
)

// BudgetStatus classifies a day's spending against its available budget.
type BudgetStatus int

const (
	UnderAlarm BudgetStatus = iota
	Warning
	OverBudget
)

func (s BudgetStatus) String() string {
	switch s {
	case Warning:
		return "warning"
	case OverBudget:
		return "over-budget"
	default:
		return "ok"
	}
}

// Recurrence controls whether an archived challenge spawns a successor.
type Recurrence string

const (
	RecurrenceNone     Recurrence = "none"
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiWeekly Recurrence = "bi-weekly"
	RecurrenceMonthly  Recurrence = "monthly"
)

// ChallengeStatus is the lifecycle state of a challenge.
type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeFailed    ChallengeStatus = "failed"
	ChallengeCancelled ChallengeStatus = "cancelled"
)

// Entry is a single expense, attributed to Date regardless of when it was
// recorded. CreatedAt orders entries within a day for display only.
type Entry struct {
	ID        string
	Date      dateutil.Date
	Amount    float64
	Note      string
	CreatedAt time.Time
}

// Challenge is a fixed date-range savings goal. FinalSaved and
// FinalTotalBudget are snapshots frozen at archival time and stay zero
// while the challenge is active.
type Challenge struct {
	ID                string
	Name              string
	Purpose           string
	StartDate         dateutil.Date
	EndDate           dateutil.Date
	TargetPercentage  int // 1-100, 0 means the default of 100
	Recurrence        Recurrence
	RecurrenceEndDate dateutil.Date // zero = recur indefinitely
	Status            ChallengeStatus
	FinalSaved        float64
	FinalTotalBudget  float64
}

// Contains reports whether d falls inside the challenge's inclusive range.
func (c Challenge) Contains(d dateutil.Date) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}

// TargetFraction returns the success target as a fraction of the total
// allocated budget, defaulting to 1.0 when unset.
func (c Challenge) TargetFraction() float64 {
	pct := c.TargetPercentage
	if pct <= 0 {
		pct = 100
	}
	return float64(pct) / 100
}

// Settings is the whole user configuration the ledger derives from.
// Mutations replace the value as a whole; persistence happens outside.
type Settings struct {
	WeekdayBudget  float64
	WeekendBudget  float64
	AlarmThreshold float64 // fraction in [0,1] that triggers Warning

	// Inclusive tracking range. EndDate zero = open-ended.
	StartDate dateutil.Date
	EndDate   dateutil.Date

	CustomBudgets   map[dateutil.Date]float64 // per-day base budget override
	CustomRollovers map[dateutil.Date]float64 // per-day starting-rollover override

	ActiveChallenge *Challenge
	PastChallenges  []Challenge // most recent first, immutable once archived
}

// DefaultSettings returns a fresh configuration starting today.
func DefaultSettings() Settings {
	return Settings{
		AlarmThreshold:  0.8,
		StartDate:       dateutil.Today(),
		CustomBudgets:   map[dateutil.Date]float64{},
		CustomRollovers: map[dateutil.Date]float64{},
	}
}

// DayBudget returns the allowance for d: the custom override when present,
// otherwise the weekday or weekend default. The tracking range is not
// consulted here; challenge budget sums deliberately ignore it.
func (s Settings) DayBudget(d dateutil.Date) float64 {
	if amt, ok := s.CustomBudgets[d]; ok {
		return amt
	}
	if d.IsWeekend() {
		return s.WeekendBudget
	}
	return s.WeekdayBudget
}

// ChallengeOn returns the challenge covering d, checking the active
// challenge first and then the archive in stored order. First match wins.
func (s Settings) ChallengeOn(d dateutil.Date) (Challenge, bool) {
	if s.ActiveChallenge != nil && s.ActiveChallenge.Contains(d) {
		return *s.ActiveChallenge, true
	}
	for _, c := range s.PastChallenges {
		if c.Contains(d) {
			return c, true
		}
	}
	return Challenge{}, false
}

// DailyStats is the derived view of a single calendar day. It is recomputed
// from scratch on every change and never persisted.
type DailyStats struct {
	Date           dateutil.Date
	BaseBudget     float64
	Rollover       float64 // carried in; 0 on challenge days unless overridden
	TotalAvailable float64
	Spent          float64
	Remaining      float64 // may be negative
	Status         BudgetStatus
	Entries        []Entry

	IsCustomBudget   bool
	IsCustomRollover bool

	IsChallengeDay      bool
	ChallengeName       string
	ChallengeSavedSoFar float64 // cumulative remaining since the run began
}
