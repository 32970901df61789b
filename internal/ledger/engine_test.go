package ledger

import (
	"math"
	"testing"
	"time"

	"suds/internal/dateutil"
	"suds/internal/model"
)

func mustDate(t *testing.T, s string) dateutil.Date {
	t.Helper()
	d, err := dateutil.Parse(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func baseSettings(t *testing.T) model.Settings {
	t.Helper()
	return model.Settings{
		WeekdayBudget:   1000,
		WeekendBudget:   2000,
		AlarmThreshold:  0.8,
		StartDate:       mustDate(t, "2024-01-01"), // a Monday
		CustomBudgets:   map[dateutil.Date]float64{},
		CustomRollovers: map[dateutil.Date]float64{},
	}
}

func entry(t *testing.T, date string, amount float64) model.Entry {
	t.Helper()
	return model.Entry{
		ID:        date + "-e",
		Date:      mustDate(t, date),
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWarningAndRolloverScenario(t *testing.T) {
	s := baseSettings(t)
	entries := []model.Entry{entry(t, "2024-01-01", 850)}
	today := mustDate(t, "2024-01-03")

	stats := Compute(s, entries, today, dateutil.Date{})

	d1 := stats.Lookup(mustDate(t, "2024-01-01"))
	if !approx(d1.TotalAvailable, 1000) || !approx(d1.Spent, 850) || !approx(d1.Remaining, 150) {
		t.Fatalf("day 1 = avail %.0f spent %.0f remaining %.0f, want 1000/850/150",
			d1.TotalAvailable, d1.Spent, d1.Remaining)
	}
	if d1.Status != model.Warning { // 850 >= 0.8*1000
		t.Fatalf("day 1 status = %v, want Warning", d1.Status)
	}

	d2 := stats.Lookup(mustDate(t, "2024-01-02"))
	if !approx(d2.Rollover, 150) || !approx(d2.TotalAvailable, 1150) || !approx(d2.Remaining, 1150) {
		t.Fatalf("day 2 = rollover %.0f avail %.0f remaining %.0f, want 150/1150/1150",
			d2.Rollover, d2.TotalAvailable, d2.Remaining)
	}
	if d2.Status != model.UnderAlarm {
		t.Fatalf("day 2 status = %v, want UnderAlarm", d2.Status)
	}
}

func TestRolloverContinuity(t *testing.T) {
	s := baseSettings(t)
	entries := []model.Entry{
		entry(t, "2024-01-01", 400),
		entry(t, "2024-01-02", 1900),
		entry(t, "2024-01-03", 100),
	}
	today := mustDate(t, "2024-01-10")
	stats := Compute(s, entries, today, dateutil.Date{})

	for d := s.StartDate; d.Before(today.AddDays(-1)); d = d.AddDays(1) {
		cur := stats.Lookup(d)
		next := stats.Lookup(d.AddDays(1))
		if !approx(next.TotalAvailable, next.BaseBudget+cur.Remaining) {
			t.Fatalf("%s: next avail %.2f != base %.2f + remaining %.2f",
				d, next.TotalAvailable, next.BaseBudget, cur.Remaining)
		}
	}
}

func TestTodayDoesNotPropagate(t *testing.T) {
	s := baseSettings(t)
	today := mustDate(t, "2024-01-03")
	stats := Compute(s, nil, today, mustDate(t, "2024-01-05"))

	// Today's remaining must not fold into tomorrow.
	tomorrow := stats.Lookup(mustDate(t, "2024-01-04"))
	if !approx(tomorrow.Rollover, 0) {
		t.Fatalf("tomorrow rollover = %.2f, want 0", tomorrow.Rollover)
	}
	// But yesterday's did fold into today.
	todayStats := stats.Lookup(today)
	if approx(todayStats.Rollover, 0) {
		t.Fatalf("today rollover = 0, want accumulated past remainder")
	}
}

func TestTargetDateExtendsWalk(t *testing.T) {
	s := baseSettings(t)
	today := mustDate(t, "2024-01-02")
	target := mustDate(t, "2024-02-15")
	stats := Compute(s, nil, today, target)

	if _, ok := stats[target]; !ok {
		t.Fatal("stats missing for target date")
	}
	if _, ok := stats[target.AddDays(1)]; ok {
		t.Fatal("stats computed past target date")
	}
}

func TestFutureEntryExtendsWalk(t *testing.T) {
	s := baseSettings(t)
	today := mustDate(t, "2024-01-02")
	entries := []model.Entry{entry(t, "2024-01-20", 100)}
	stats := Compute(s, entries, today, dateutil.Date{})

	ds := stats.Lookup(mustDate(t, "2024-01-20"))
	if !approx(ds.Spent, 100) {
		t.Fatalf("future entry day spent = %.2f, want 100", ds.Spent)
	}
}

func TestZeroBudgetDayIsNotWarning(t *testing.T) {
	s := baseSettings(t)
	s.EndDate = mustDate(t, "2024-01-02")
	today := mustDate(t, "2024-01-05")
	stats := Compute(s, nil, today, dateutil.Date{})

	ds := stats.Lookup(mustDate(t, "2024-01-03"))
	if !approx(ds.BaseBudget, 0) {
		t.Fatalf("base budget outside range = %.2f, want 0", ds.BaseBudget)
	}
	if ds.Status != model.UnderAlarm {
		t.Fatalf("zero-budget day status = %v, want UnderAlarm", ds.Status)
	}
}

func TestCustomBudgetOverride(t *testing.T) {
	s := baseSettings(t)
	s.CustomBudgets[mustDate(t, "2024-01-02")] = 5000
	today := mustDate(t, "2024-01-03")
	stats := Compute(s, nil, today, dateutil.Date{})

	ds := stats.Lookup(mustDate(t, "2024-01-02"))
	if !approx(ds.BaseBudget, 5000) || !ds.IsCustomBudget {
		t.Fatalf("custom budget day = %.2f custom=%v, want 5000/true", ds.BaseBudget, ds.IsCustomBudget)
	}
}

func TestCustomRolloverOverride(t *testing.T) {
	s := baseSettings(t)
	s.CustomRollovers[mustDate(t, "2024-01-03")] = 250
	entries := []model.Entry{entry(t, "2024-01-01", 100)}
	today := mustDate(t, "2024-01-05")
	stats := Compute(s, entries, today, dateutil.Date{})

	ds := stats.Lookup(mustDate(t, "2024-01-03"))
	if !ds.IsCustomRollover || !approx(ds.Rollover, 250) {
		t.Fatalf("custom rollover day = %.2f custom=%v, want 250/true", ds.Rollover, ds.IsCustomRollover)
	}
	if !approx(ds.TotalAvailable, 1250) {
		t.Fatalf("custom rollover avail = %.2f, want 1250", ds.TotalAvailable)
	}
}

func withChallenge(s model.Settings, t *testing.T, start, end string) model.Settings {
	t.Helper()
	s.ActiveChallenge = &model.Challenge{
		ID:               "ch-1",
		Name:             "Dry Week",
		StartDate:        mustDate(t, start),
		EndDate:          mustDate(t, end),
		TargetPercentage: 100,
		Recurrence:       model.RecurrenceNone,
		Status:           model.ChallengeActive,
	}
	return s
}

func TestChallengeIsolation(t *testing.T) {
	s := withChallenge(baseSettings(t), t, "2024-01-03", "2024-01-05")
	today := mustDate(t, "2024-01-08")
	stats := Compute(s, nil, today, dateutil.Date{})

	// Two untouched normal days accumulate 2000 of rollover, none of which
	// reaches the challenge days.
	first := stats.Lookup(mustDate(t, "2024-01-03"))
	if !first.IsChallengeDay || !approx(first.Rollover, 0) || !approx(first.TotalAvailable, 1000) {
		t.Fatalf("first challenge day = rollover %.0f avail %.0f, want 0/1000", first.Rollover, first.TotalAvailable)
	}
	if first.ChallengeName != "Dry Week" {
		t.Fatalf("challenge name = %q", first.ChallengeName)
	}
}

func TestChallengePauseResume(t *testing.T) {
	s := withChallenge(baseSettings(t), t, "2024-01-03", "2024-01-05")
	today := mustDate(t, "2024-01-08")
	stats := Compute(s, nil, today, dateutil.Date{})

	before := stats.Lookup(mustDate(t, "2024-01-02"))
	after := stats.Lookup(mustDate(t, "2024-01-06"))
	if after.IsChallengeDay {
		t.Fatal("2024-01-06 should be a normal day")
	}
	// The balance the challenge froze comes back untouched.
	if !approx(after.Rollover, before.Remaining) {
		t.Fatalf("post-challenge rollover = %.2f, want pre-challenge remaining %.2f",
			after.Rollover, before.Remaining)
	}
}

func TestChallengeAccumulatorDecomposition(t *testing.T) {
	s := withChallenge(baseSettings(t), t, "2024-01-03", "2024-01-05")
	entries := []model.Entry{
		entry(t, "2024-01-03", 200),
		entry(t, "2024-01-04", 1500), // over budget inside the run
	}
	today := mustDate(t, "2024-01-08")
	stats := Compute(s, entries, today, dateutil.Date{})

	var sum float64
	for d := mustDate(t, "2024-01-03"); !d.After(mustDate(t, "2024-01-05")); d = d.AddDays(1) {
		sum += stats.Lookup(d).Remaining
	}
	last := stats.Lookup(mustDate(t, "2024-01-05"))
	if !approx(last.ChallengeSavedSoFar, sum) {
		t.Fatalf("saved-so-far = %.2f, want sum of remainings %.2f", last.ChallengeSavedSoFar, sum)
	}
	if !approx(sum, 1000-200+1000-1500+1000) {
		t.Fatalf("sum = %.2f, want 1300", sum)
	}
}

func TestChallengeCustomRolloverHonored(t *testing.T) {
	s := withChallenge(baseSettings(t), t, "2024-01-03", "2024-01-05")
	s.CustomRollovers[mustDate(t, "2024-01-04")] = 500
	today := mustDate(t, "2024-01-08")
	stats := Compute(s, nil, today, dateutil.Date{})

	ds := stats.Lookup(mustDate(t, "2024-01-04"))
	if !approx(ds.TotalAvailable, 1500) || !approx(ds.Rollover, 500) {
		t.Fatalf("override challenge day = avail %.0f rollover %.0f, want 1500/500", ds.TotalAvailable, ds.Rollover)
	}

	// The override discards the preserved pre-challenge balance, so the
	// first normal day resumes from zero.
	after := stats.Lookup(mustDate(t, "2024-01-06"))
	if !approx(after.Rollover, 0) {
		t.Fatalf("post-challenge rollover after override = %.2f, want 0", after.Rollover)
	}
}

func TestBackToBackChallengesResetAccumulator(t *testing.T) {
	s := baseSettings(t)
	s.PastChallenges = []model.Challenge{
		{ID: "a", Name: "A", StartDate: mustDate(t, "2024-01-02"), EndDate: mustDate(t, "2024-01-03"), Status: model.ChallengeCompleted},
		{ID: "b", Name: "B", StartDate: mustDate(t, "2024-01-04"), EndDate: mustDate(t, "2024-01-05"), Status: model.ChallengeCompleted},
	}
	today := mustDate(t, "2024-01-08")
	stats := Compute(s, nil, today, dateutil.Date{})

	endA := stats.Lookup(mustDate(t, "2024-01-03"))
	startB := stats.Lookup(mustDate(t, "2024-01-04"))
	if !approx(endA.ChallengeSavedSoFar, 2000) {
		t.Fatalf("challenge A saved = %.0f, want 2000", endA.ChallengeSavedSoFar)
	}
	if !approx(startB.ChallengeSavedSoFar, 1000) {
		t.Fatalf("challenge B first day saved = %.0f, want fresh 1000", startB.ChallengeSavedSoFar)
	}
	if startB.ChallengeName != "B" {
		t.Fatalf("challenge B day attributed to %q", startB.ChallengeName)
	}
}

func TestLookupMissingDateReturnsZeroed(t *testing.T) {
	s := baseSettings(t)
	stats := Compute(s, nil, mustDate(t, "2024-01-02"), dateutil.Date{})

	ds := stats.Lookup(mustDate(t, "2023-12-01"))
	if ds.Spent != 0 || ds.TotalAvailable != 0 || ds.Status != model.UnderAlarm {
		t.Fatalf("missing date lookup = %+v, want zeroed record", ds)
	}
	if ds.Date != mustDate(t, "2023-12-01") {
		t.Fatal("zeroed record should carry the requested date")
	}
}

func TestEmptyInputsDegenerate(t *testing.T) {
	var s model.Settings // zero settings, zero start date
	today := mustDate(t, "2024-06-01")
	stats := Compute(s, nil, today, dateutil.Date{})

	ds := stats.Lookup(today)
	if ds.TotalAvailable != 0 || ds.Status != model.UnderAlarm {
		t.Fatalf("degenerate stats = %+v, want all-zero UnderAlarm", ds)
	}
}
