package challenge

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"suds/internal/dateutil"
	"suds/internal/ledger"
	"suds/internal/model"
)

// archiveEpsilon is the success tolerance applied when a finished
// challenge is evaluated against its target amount.
const archiveEpsilon = 0.001

// Validation errors for challenge create/edit. An invalid draft is
// rejected whole; settings are never partially updated.
var (
	ErrNameRequired      = errors.New("challenge name is required")
	ErrStartRequired     = errors.New("start date is required")
	ErrEndRequired       = errors.New("end date is required")
	ErrEndBeforeStart    = errors.New("end date must not be before start date")
	ErrStartInPast       = errors.New("start date cannot be moved into the past")
	ErrRecurrenceEnd     = errors.New("recurrence end date must not be before the challenge end date")
	ErrNoActiveChallenge = errors.New("no active challenge")
)

// Draft holds the user-editable challenge fields for create and edit.
type Draft struct {
	Name              string
	Purpose           string
	StartDate         dateutil.Date
	EndDate           dateutil.Date
	TargetPercentage  int
	Recurrence        model.Recurrence
	RecurrenceEndDate dateutil.Date
}

// validate checks a draft. prevStart is the zero Date on create; on edit
// it allows an unchanged start date to stay in the past.
func (d Draft) validate(today, prevStart dateutil.Date) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if d.StartDate.IsZero() {
		return ErrStartRequired
	}
	if d.EndDate.IsZero() {
		return ErrEndRequired
	}
	if d.EndDate.Before(d.StartDate) {
		return ErrEndBeforeStart
	}
	if d.StartDate.Before(today) && d.StartDate != prevStart {
		return ErrStartInPast
	}
	if d.Recurrence != "" && d.Recurrence != model.RecurrenceNone &&
		!d.RecurrenceEndDate.IsZero() && d.RecurrenceEndDate.Before(d.EndDate) {
		return ErrRecurrenceEnd
	}
	return nil
}

func (d Draft) challenge() model.Challenge {
	pct := d.TargetPercentage
	if pct <= 0 {
		pct = 100
	} else if pct > 100 {
		pct = 100
	}
	rec := d.Recurrence
	if rec == "" {
		rec = model.RecurrenceNone
	}
	return model.Challenge{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(d.Name),
		Purpose:           strings.TrimSpace(d.Purpose),
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		TargetPercentage:  pct,
		Recurrence:        rec,
		RecurrenceEndDate: d.RecurrenceEndDate,
		Status:            model.ChallengeActive,
	}
}

// Start installs a new active challenge. A challenge already running is
// archived as cancelled first, snapshotting the savings accumulated so
// far; its total budget is recorded as 0 since the cancellation point is
// not recomputed. Returns the updated settings; the input is not mutated.
func Start(s model.Settings, d Draft, stats ledger.StatsMap, today dateutil.Date) (model.Settings, error) {
	if err := d.validate(today, dateutil.Date{}); err != nil {
		return s, err
	}

	out := s
	out.PastChallenges = append([]model.Challenge(nil), s.PastChallenges...)

	if s.ActiveChallenge != nil {
		cancelled := *s.ActiveChallenge
		cancelled.Status = model.ChallengeCancelled
		cancelled.FinalSaved = stats.Lookup(today).ChallengeSavedSoFar
		cancelled.FinalTotalBudget = 0
		out.PastChallenges = append([]model.Challenge{cancelled}, out.PastChallenges...)
	}

	nc := d.challenge()
	out.ActiveChallenge = &nc
	return out, nil
}

// Edit applies a draft to the active challenge in place, keeping its id.
func Edit(s model.Settings, d Draft, today dateutil.Date) (model.Settings, error) {
	if s.ActiveChallenge == nil {
		return s, ErrNoActiveChallenge
	}
	if err := d.validate(today, s.ActiveChallenge.StartDate); err != nil {
		return s, err
	}

	updated := d.challenge()
	updated.ID = s.ActiveChallenge.ID
	updated.Status = s.ActiveChallenge.Status

	out := s
	out.ActiveChallenge = &updated
	return out, nil
}

// End archives the active challenge manually. Ended before its end date it
// records as cancelled; on or after, it is evaluated against the target
// like an expiry. No successor is spawned on a manual end.
func End(s model.Settings, stats ledger.StatsMap, today dateutil.Date) (model.Settings, error) {
	if s.ActiveChallenge == nil {
		return s, ErrNoActiveChallenge
	}
	active := *s.ActiveChallenge

	finished := today.After(active.EndDate)
	checkDate := today
	if finished {
		checkDate = active.EndDate
	}
	finalSaved := stats.Lookup(checkDate).ChallengeSavedSoFar
	totalBudget := TotalBudget(active, s)

	status := model.ChallengeCancelled
	if finished {
		status = model.ChallengeFailed
		if finalSaved >= totalBudget*active.TargetFraction()-archiveEpsilon {
			status = model.ChallengeCompleted
		}
	}

	active.Status = status
	active.FinalSaved = finalSaved
	active.FinalTotalBudget = totalBudget

	out := s
	out.ActiveChallenge = nil
	out.PastChallenges = append([]model.Challenge{active},
		append([]model.Challenge(nil), s.PastChallenges...)...)
	return out, nil
}

// AutoArchive archives an active challenge whose end date has passed,
// evaluating success against the target and spawning a recurrence
// successor when configured. Reports whether anything changed so callers
// can persist the archived record and successor in one update.
func AutoArchive(s model.Settings, stats ledger.StatsMap, today dateutil.Date) (model.Settings, bool) {
	if s.ActiveChallenge == nil || !today.After(s.ActiveChallenge.EndDate) {
		return s, false
	}
	active := *s.ActiveChallenge

	finalSaved := stats.Lookup(active.EndDate).ChallengeSavedSoFar
	totalBudget := TotalBudget(active, s)
	targetAmount := totalBudget * active.TargetFraction()

	archived := active
	archived.Status = model.ChallengeFailed
	if finalSaved >= targetAmount-archiveEpsilon {
		archived.Status = model.ChallengeCompleted
	}
	archived.FinalSaved = finalSaved
	archived.FinalTotalBudget = totalBudget

	out := s
	out.ActiveChallenge = nextRecurrence(active)
	out.PastChallenges = append([]model.Challenge{archived},
		append([]model.Challenge(nil), s.PastChallenges...)...)
	return out, true
}

// nextRecurrence builds the successor challenge for a just-archived run,
// or nil when recurrence is off or the recurrence end date is reached.
func nextRecurrence(active model.Challenge) *model.Challenge {
	var newStart, newEnd dateutil.Date
	switch active.Recurrence {
	case model.RecurrenceDaily:
		newStart, newEnd = active.StartDate.AddDays(1), active.EndDate.AddDays(1)
	case model.RecurrenceWeekly:
		newStart, newEnd = active.StartDate.AddDays(7), active.EndDate.AddDays(7)
	case model.RecurrenceBiWeekly:
		newStart, newEnd = active.StartDate.AddDays(14), active.EndDate.AddDays(14)
	case model.RecurrenceMonthly:
		newStart, newEnd = active.StartDate.AddMonths(1), active.EndDate.AddMonths(1)
	default:
		return nil
	}

	// A shift shorter than the run would overlap the run just archived;
	// push the successor to the day after, keeping the duration.
	if !newStart.After(active.EndDate) {
		duration := dateutil.DaysBetween(active.StartDate, active.EndDate)
		newStart = active.EndDate.AddDays(1)
		newEnd = newStart.AddDays(duration)
	}

	if !active.RecurrenceEndDate.IsZero() && newStart.After(active.RecurrenceEndDate) {
		return nil
	}

	next := active
	next.ID = uuid.NewString()
	next.StartDate = newStart
	next.EndDate = newEnd
	next.Status = model.ChallengeActive
	next.FinalSaved = 0
	next.FinalTotalBudget = 0
	return &next
}
