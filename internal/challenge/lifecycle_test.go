package challenge

import (
	"errors"
	"testing"

	"suds/internal/dateutil"
	"suds/internal/ledger"
	"suds/internal/model"
)

func computeFor(t *testing.T, s model.Settings, entries []model.Entry, today dateutil.Date) ledger.StatsMap {
	t.Helper()
	return ledger.Compute(s, entries, today, dateutil.Date{})
}

func draft(t *testing.T, start, end string) Draft {
	t.Helper()
	return Draft{
		Name:             "Dry Spell",
		StartDate:        mustDate(t, start),
		EndDate:          mustDate(t, end),
		TargetPercentage: 100,
		Recurrence:       model.RecurrenceNone,
	}
}

func TestStartInstallsActiveChallenge(t *testing.T) {
	s := testSettings(t)
	today := mustDate(t, "2024-01-01")

	out, err := Start(s, draft(t, "2024-01-01", "2024-01-07"), ledger.StatsMap{}, today)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if out.ActiveChallenge == nil {
		t.Fatal("Start did not install an active challenge")
	}
	if out.ActiveChallenge.ID == "" {
		t.Fatal("challenge must get a generated id")
	}
	if out.ActiveChallenge.Status != model.ChallengeActive {
		t.Fatalf("status = %q, want active", out.ActiveChallenge.Status)
	}
	if s.ActiveChallenge != nil {
		t.Fatal("input settings must not be mutated")
	}
}

func TestStartSupersedesActiveAsCancelled(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "old",
		Name:             "Old Run",
		StartDate:        mustDate(t, "2024-01-01"),
		EndDate:          mustDate(t, "2024-01-10"),
		TargetPercentage: 100,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-01-04")
	stats := computeFor(t, s, nil, today)

	out, err := Start(s, draft(t, "2024-01-04", "2024-01-08"), stats, today)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(out.PastChallenges) != 1 {
		t.Fatalf("past challenges = %d, want 1", len(out.PastChallenges))
	}
	old := out.PastChallenges[0]
	if old.Status != model.ChallengeCancelled {
		t.Fatalf("superseded status = %q, want cancelled", old.Status)
	}
	if old.FinalTotalBudget != 0 {
		t.Fatalf("superseded finalTotalBudget = %.0f, want 0", old.FinalTotalBudget)
	}
	if old.FinalSaved != stats.Lookup(today).ChallengeSavedSoFar {
		t.Fatal("superseded finalSaved must snapshot today's accumulator")
	}
	if out.ActiveChallenge.ID == "old" {
		t.Fatal("new challenge must get a fresh id")
	}
}

func TestStartValidation(t *testing.T) {
	s := testSettings(t)
	today := mustDate(t, "2024-01-05")

	tests := []struct {
		name string
		mod  func(*Draft)
		want error
	}{
		{"empty name", func(d *Draft) { d.Name = "  " }, ErrNameRequired},
		{"no start", func(d *Draft) { d.StartDate = dateutil.Date{} }, ErrStartRequired},
		{"no end", func(d *Draft) { d.EndDate = dateutil.Date{} }, ErrEndRequired},
		{"end before start", func(d *Draft) { d.EndDate = mustDate(t, "2024-01-04") }, ErrEndBeforeStart},
		{"start in past", func(d *Draft) { d.StartDate, d.EndDate = mustDate(t, "2024-01-02"), mustDate(t, "2024-01-09") }, ErrStartInPast},
		{"recurrence end before end", func(d *Draft) {
			d.Recurrence = model.RecurrenceWeekly
			d.RecurrenceEndDate = mustDate(t, "2024-01-08")
		}, ErrRecurrenceEnd},
	}
	for _, tt := range tests {
		d := draft(t, "2024-01-05", "2024-01-12")
		tt.mod(&d)
		_, err := Start(s, d, ledger.StatsMap{}, today)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestEditKeepsIDAndAllowsUnchangedPastStart(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "keep-me",
		Name:             "Run",
		StartDate:        mustDate(t, "2024-01-01"),
		EndDate:          mustDate(t, "2024-01-10"),
		TargetPercentage: 100,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-01-05")

	d := draft(t, "2024-01-01", "2024-01-15") // start unchanged, in the past
	d.Name = "Renamed"
	out, err := Edit(s, d, today)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if out.ActiveChallenge.ID != "keep-me" || out.ActiveChallenge.Name != "Renamed" {
		t.Fatalf("edit result = %+v", out.ActiveChallenge)
	}

	// Moving the start elsewhere into the past is rejected.
	d.StartDate = mustDate(t, "2024-01-02")
	if _, err := Edit(s, d, today); !errors.Is(err, ErrStartInPast) {
		t.Fatalf("err = %v, want ErrStartInPast", err)
	}
}

func TestEditWithoutActiveChallenge(t *testing.T) {
	s := testSettings(t)
	_, err := Edit(s, draft(t, "2024-01-05", "2024-01-12"), mustDate(t, "2024-01-05"))
	if !errors.Is(err, ErrNoActiveChallenge) {
		t.Fatalf("err = %v, want ErrNoActiveChallenge", err)
	}
}

func TestEndBeforeExpiryIsCancelled(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "run",
		Name:             "Run",
		StartDate:        mustDate(t, "2024-01-01"),
		EndDate:          mustDate(t, "2024-01-10"),
		TargetPercentage: 100,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-01-05")
	stats := computeFor(t, s, nil, today)

	out, err := End(s, stats, today)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if out.ActiveChallenge != nil {
		t.Fatal("End must clear the active challenge")
	}
	got := out.PastChallenges[0]
	if got.Status != model.ChallengeCancelled {
		t.Fatalf("status = %q, want cancelled", got.Status)
	}
	// Manual end records the full allocated budget, unlike supersede.
	if got.FinalTotalBudget == 0 {
		t.Fatal("manual end must record the total budget")
	}
}

func TestEndAfterExpiryEvaluatesTarget(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "run",
		Name:             "Run",
		StartDate:        mustDate(t, "2024-01-01"),
		EndDate:          mustDate(t, "2024-01-05"),
		TargetPercentage: 100,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-01-07")
	stats := computeFor(t, s, nil, today) // nothing spent: full save

	out, err := End(s, stats, today)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if got := out.PastChallenges[0].Status; got != model.ChallengeCompleted {
		t.Fatalf("status = %q, want completed", got)
	}
}

func TestAutoArchiveSingleDayFailure(t *testing.T) {
	// Daily budget 1000, one entry of 1 on the challenge day: saved 999,
	// which misses a 100% target at archival.
	s := testSettings(t)
	s.StartDate = mustDate(t, "2024-02-01") // Thursday
	s.ActiveChallenge = &model.Challenge{
		ID:               "one-day",
		Name:             "One Day",
		StartDate:        mustDate(t, "2024-02-01"),
		EndDate:          mustDate(t, "2024-02-01"),
		TargetPercentage: 100,
		Recurrence:       model.RecurrenceNone,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-02-02")
	entries := []model.Entry{{ID: "e1", Date: mustDate(t, "2024-02-01"), Amount: 1}}
	stats := computeFor(t, s, entries, today)

	if got := stats.Lookup(mustDate(t, "2024-02-01")).ChallengeSavedSoFar; !approx(got, 999) {
		t.Fatalf("saved-so-far = %.2f, want 999", got)
	}

	out, changed := AutoArchive(s, stats, today)
	if !changed {
		t.Fatal("AutoArchive should fire after the end date")
	}
	got := out.PastChallenges[0]
	if got.Status != model.ChallengeFailed {
		t.Fatalf("status = %q, want failed", got.Status)
	}
	if !approx(got.FinalSaved, 999) || !approx(got.FinalTotalBudget, 1000) {
		t.Fatalf("snapshot = saved %.0f budget %.0f, want 999/1000", got.FinalSaved, got.FinalTotalBudget)
	}
	if out.ActiveChallenge != nil {
		t.Fatal("no successor without recurrence")
	}
}

func TestAutoArchiveNotDue(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:        "run",
		Name:      "Run",
		StartDate: mustDate(t, "2024-01-01"),
		EndDate:   mustDate(t, "2024-01-10"),
		Status:    model.ChallengeActive,
	}
	// On the end date itself the challenge is still live.
	_, changed := AutoArchive(s, ledger.StatsMap{}, mustDate(t, "2024-01-10"))
	if changed {
		t.Fatal("AutoArchive must not fire on the end date")
	}
}

func TestWeeklyRecurrenceSuccessor(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "wk",
		Name:             "Weekly",
		StartDate:        mustDate(t, "2024-03-01"),
		EndDate:          mustDate(t, "2024-03-07"),
		TargetPercentage: 100,
		Recurrence:       model.RecurrenceWeekly,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-03-08")
	stats := computeFor(t, s, nil, today)

	out, changed := AutoArchive(s, stats, today)
	if !changed || out.ActiveChallenge == nil {
		t.Fatal("weekly recurrence should spawn a successor")
	}
	next := out.ActiveChallenge
	if next.StartDate != mustDate(t, "2024-03-08") || next.EndDate != mustDate(t, "2024-03-14") {
		t.Fatalf("successor range = %s..%s, want 2024-03-08..2024-03-14", next.StartDate, next.EndDate)
	}
	if next.ID == "wk" {
		t.Fatal("successor must get a fresh id")
	}
	if next.FinalSaved != 0 || next.FinalTotalBudget != 0 {
		t.Fatal("successor snapshot fields must start zero")
	}
}

func TestDailyRecurrenceOverlapShifts(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "dl",
		Name:             "Daily",
		StartDate:        mustDate(t, "2024-03-01"),
		EndDate:          mustDate(t, "2024-03-07"),
		TargetPercentage: 100,
		Recurrence:       model.RecurrenceDaily,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-03-08")
	stats := computeFor(t, s, nil, today)

	out, _ := AutoArchive(s, stats, today)
	next := out.ActiveChallenge
	if next == nil {
		t.Fatal("daily recurrence should spawn a successor")
	}
	// Naive +1 day would overlap the archived run, so the successor shifts
	// to the day after the old end and keeps the 7-day duration.
	if next.StartDate != mustDate(t, "2024-03-08") || next.EndDate != mustDate(t, "2024-03-14") {
		t.Fatalf("successor range = %s..%s, want 2024-03-08..2024-03-14", next.StartDate, next.EndDate)
	}
}

func TestRecurrenceEndDateStopsSuccessor(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:                "wk",
		Name:              "Weekly",
		StartDate:         mustDate(t, "2024-03-01"),
		EndDate:           mustDate(t, "2024-03-07"),
		TargetPercentage:  100,
		Recurrence:        model.RecurrenceWeekly,
		RecurrenceEndDate: mustDate(t, "2024-03-07"),
		Status:            model.ChallengeActive,
	}
	today := mustDate(t, "2024-03-08")
	stats := computeFor(t, s, nil, today)

	out, changed := AutoArchive(s, stats, today)
	if !changed {
		t.Fatal("archive should still happen")
	}
	if out.ActiveChallenge != nil {
		t.Fatal("successor past the recurrence end date must not be created")
	}
}

func TestMonthlyRecurrenceShiftsCalendarMonth(t *testing.T) {
	s := testSettings(t)
	s.ActiveChallenge = &model.Challenge{
		ID:               "mo",
		Name:             "Monthly",
		StartDate:        mustDate(t, "2024-03-01"),
		EndDate:          mustDate(t, "2024-03-31"),
		TargetPercentage: 100,
		Recurrence:       model.RecurrenceMonthly,
		Status:           model.ChallengeActive,
	}
	today := mustDate(t, "2024-04-01")
	stats := computeFor(t, s, nil, today)

	out, _ := AutoArchive(s, stats, today)
	next := out.ActiveChallenge
	if next == nil {
		t.Fatal("monthly recurrence should spawn a successor")
	}
	if next.StartDate != mustDate(t, "2024-04-01") {
		t.Fatalf("successor start = %s, want 2024-04-01", next.StartDate)
	}
}

func TestReportPhases(t *testing.T) {
	s := testSettings(t)
	c := model.Challenge{
		ID:               "run",
		Name:             "Run",
		StartDate:        mustDate(t, "2024-01-08"), // Mon
		EndDate:          mustDate(t, "2024-01-12"), // Fri
		TargetPercentage: 100,
		Status:           model.ChallengeActive,
	}
	s.ActiveChallenge = &c

	// Upcoming.
	today := mustDate(t, "2024-01-05")
	stats := computeFor(t, s, nil, today)
	if p := Report(c, s, stats, today); p.Phase != PhaseUpcoming {
		t.Fatalf("phase = %q, want upcoming", p.Phase)
	}

	// Mid-run with nothing spent: on track.
	today = mustDate(t, "2024-01-10")
	stats = computeFor(t, s, nil, today)
	p := Report(c, s, stats, today)
	if p.Phase != PhaseOnTrack {
		t.Fatalf("phase = %q, want on-track", p.Phase)
	}
	if p.DayNumber != 3 || p.TotalDays != 5 || p.DaysLeft != 2 {
		t.Fatalf("day %d/%d left %d, want 3/5 left 2", p.DayNumber, p.TotalDays, p.DaysLeft)
	}

	// Mid-run after spending: the 100 percent target is gone.
	entries := []model.Entry{{ID: "e", Date: mustDate(t, "2024-01-08"), Amount: 50}}
	stats = computeFor(t, s, entries, today)
	if p := Report(c, s, stats, today); p.Phase != PhaseFailing {
		t.Fatalf("phase = %q, want failing", p.Phase)
	}

	// Past the end with a clean run: success.
	today = mustDate(t, "2024-01-15")
	stats = computeFor(t, s, nil, today)
	if p := Report(c, s, stats, today); p.Phase != PhaseSuccess {
		t.Fatalf("phase = %q, want success", p.Phase)
	}
}
