package store

import (
	"path/filepath"
	"testing"
	"time"

	"suds/internal/dateutil"
	"suds/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "suds.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestLoadSettingsDefaultsWhenEmpty(t *testing.T) {
	st := openTestStore(t)

	s, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.AlarmThreshold != 0.8 {
		t.Fatalf("default alarm threshold = %.2f, want 0.8", s.AlarmThreshold)
	}
	if s.StartDate.IsZero() {
		t.Fatal("default start date should be today, not zero")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	st := openTestStore(t)

	in := model.Settings{
		WeekdayBudget:  1000,
		WeekendBudget:  2000,
		AlarmThreshold: 0.75,
		StartDate:      dateutil.MustParse("2024-01-01"),
		EndDate:        dateutil.MustParse("2024-12-31"),
		CustomBudgets: map[dateutil.Date]float64{
			dateutil.MustParse("2024-02-14"): 5000,
		},
		CustomRollovers: map[dateutil.Date]float64{
			dateutil.MustParse("2024-03-01"): 250,
		},
		ActiveChallenge: &model.Challenge{
			ID:                "active-1",
			Name:              "Dry March",
			Purpose:           "vacation fund",
			StartDate:         dateutil.MustParse("2024-03-01"),
			EndDate:           dateutil.MustParse("2024-03-31"),
			TargetPercentage:  90,
			Recurrence:        model.RecurrenceMonthly,
			RecurrenceEndDate: dateutil.MustParse("2024-06-30"),
			Status:            model.ChallengeActive,
		},
		PastChallenges: []model.Challenge{
			{
				ID: "past-1", Name: "Dry Feb",
				StartDate: dateutil.MustParse("2024-02-01"), EndDate: dateutil.MustParse("2024-02-29"),
				TargetPercentage: 100, Recurrence: model.RecurrenceNone,
				Status: model.ChallengeFailed, FinalSaved: 123.45, FinalTotalBudget: 2900,
			},
			{
				ID: "past-2", Name: "Dry Jan",
				StartDate: dateutil.MustParse("2024-01-01"), EndDate: dateutil.MustParse("2024-01-31"),
				TargetPercentage: 100, Recurrence: model.RecurrenceNone,
				Status: model.ChallengeCancelled, FinalSaved: 50, FinalTotalBudget: 0,
			},
		},
	}

	if err := st.SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	out, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	if out.WeekdayBudget != 1000 || out.WeekendBudget != 2000 || out.AlarmThreshold != 0.75 {
		t.Fatalf("budgets = %+v", out)
	}
	if out.StartDate != in.StartDate || out.EndDate != in.EndDate {
		t.Fatalf("range = %s..%s", out.StartDate, out.EndDate)
	}
	if out.CustomBudgets[dateutil.MustParse("2024-02-14")] != 5000 {
		t.Fatal("custom budget override lost")
	}
	if out.CustomRollovers[dateutil.MustParse("2024-03-01")] != 250 {
		t.Fatal("custom rollover override lost")
	}
	if out.ActiveChallenge == nil || out.ActiveChallenge.ID != "active-1" {
		t.Fatalf("active challenge = %+v", out.ActiveChallenge)
	}
	if out.ActiveChallenge.RecurrenceEndDate != dateutil.MustParse("2024-06-30") {
		t.Fatal("recurrence end date lost")
	}
	if len(out.PastChallenges) != 2 {
		t.Fatalf("past challenges = %d, want 2", len(out.PastChallenges))
	}
	// Archive order is significant: most recent first.
	if out.PastChallenges[0].ID != "past-1" || out.PastChallenges[1].ID != "past-2" {
		t.Fatalf("archive order = %s, %s", out.PastChallenges[0].ID, out.PastChallenges[1].ID)
	}
	if out.PastChallenges[0].FinalSaved != 123.45 {
		t.Fatal("archived snapshot lost")
	}
}

func TestSaveSettingsReplacesWholeValue(t *testing.T) {
	st := openTestStore(t)

	s := model.DefaultSettings()
	s.CustomBudgets[dateutil.MustParse("2024-02-14")] = 5000
	if err := st.SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	// Removing the override and saving again must not resurrect it.
	delete(s.CustomBudgets, dateutil.MustParse("2024-02-14"))
	if err := st.SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	out, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if len(out.CustomBudgets) != 0 {
		t.Fatal("stale override survived a whole-value save")
	}
}

func TestEntryLifecycle(t *testing.T) {
	st := openTestStore(t)

	e := model.Entry{
		ID:        "e1",
		Date:      dateutil.MustParse("2024-01-05"),
		Amount:    850,
		Note:      "IPA night",
		CreatedAt: time.Date(2024, 1, 5, 20, 30, 0, 0, time.UTC),
	}
	if err := st.SaveEntry(e); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}

	entries, err := st.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Amount != 850 || entries[0].Note != "IPA night" {
		t.Fatalf("entries = %+v", entries)
	}

	// Update in place by id.
	e.Amount = 900
	if err := st.SaveEntry(e); err != nil {
		t.Fatalf("SaveEntry update: %v", err)
	}
	entries, _ = st.LoadEntries()
	if len(entries) != 1 || entries[0].Amount != 900 {
		t.Fatalf("after update entries = %+v", entries)
	}

	if err := st.DeleteEntry("e1"); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	entries, _ = st.LoadEntries()
	if len(entries) != 0 {
		t.Fatalf("after delete entries = %d, want 0", len(entries))
	}

	// Deleting again is fine.
	if err := st.DeleteEntry("e1"); err != nil {
		t.Fatalf("DeleteEntry missing id: %v", err)
	}
}

func TestEntriesOrderedByCreation(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		e := model.Entry{
			ID:        id,
			Date:      dateutil.MustParse("2024-01-05"),
			Amount:    float64(i + 1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.SaveEntry(e); err != nil {
			t.Fatalf("SaveEntry: %v", err)
		}
	}

	entries, err := st.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if entries[0].ID != "b" || entries[1].ID != "a" || entries[2].ID != "c" {
		t.Fatalf("order = %s,%s,%s, want b,a,c", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestReset(t *testing.T) {
	st := openTestStore(t)

	s := model.DefaultSettings()
	s.WeekdayBudget = 1000
	_ = st.SaveSettings(s)
	_ = st.SaveEntry(model.Entry{ID: "e1", Date: dateutil.MustParse("2024-01-05"), Amount: 1, CreatedAt: time.Now()})

	if err := st.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	out, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if out.WeekdayBudget != 0 {
		t.Fatal("settings survived reset")
	}
	entries, _ := st.LoadEntries()
	if len(entries) != 0 {
		t.Fatal("entries survived reset")
	}
}
