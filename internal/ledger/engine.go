// Package ledger derives the day-by-day budget timeline from settings and
// spend entries: rollover propagation, challenge-aware accounting, status
// classification, and the streak count.
package ledger

import (
	"sort"

	"suds/internal/dateutil"
	"suds/internal/model"
)

// StatsMap holds one DailyStats per computed calendar day.
type StatsMap map[dateutil.Date]model.DailyStats

// Lookup returns the stats for d, or a zeroed record when d was never
// computed (e.g. before the tracking start date). Callers never need to
// distinguish the two cases.
func (m StatsMap) Lookup(d dateutil.Date) model.DailyStats {
	if s, ok := m[d]; ok {
		return s
	}
	return model.DailyStats{Date: d}
}

// Dates returns all computed days in ascending order.
func (m StatsMap) Dates() []dateutil.Date {
	dates := make([]dateutil.Date, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// walkState is the accumulator threaded through the day walk. Challenge
// days pause the normal rollover: the pre-challenge balance is parked in
// preserved and restored on the first normal day after the run.
type walkState struct {
	rollover     float64
	preserved    float64
	hasPreserved bool

	challengeSaved float64
	challengeID    string
}

// Compute walks every day from the tracking start date through
// max(today, target, latest entry date) and derives the stats timeline.
// Pure function of its inputs; today is passed in rather than read from
// the clock so partial timelines are testable.
func Compute(s model.Settings, entries []model.Entry, today, target dateutil.Date) StatsMap {
	stats := make(StatsMap)

	byDate := groupByDate(entries)

	start := s.StartDate
	if start.IsZero() {
		start = today
	}
	end := today
	if !target.IsZero() {
		end = dateutil.Max(end, target)
	}
	for d := range byDate {
		end = dateutil.Max(end, d)
	}

	var st walkState
	for d := start; !d.After(end); d = d.AddDays(1) {
		stats[d] = dayStats(s, byDate[d], d, today, &st)
	}
	return stats
}

// dayStats computes one day's record and advances the accumulator.
func dayStats(s model.Settings, dayEntries []model.Entry, d, today dateutil.Date, st *walkState) model.DailyStats {
	ch, inChallenge := s.ChallengeOn(d)

	// A new challenge id starts a fresh savings run, even when two
	// archived ranges touch back to back.
	if inChallenge {
		if ch.ID != st.challengeID {
			st.challengeSaved = 0
			st.challengeID = ch.ID
		}
	} else {
		st.challengeID = ""
		st.challengeSaved = 0
	}

	var baseBudget float64
	var isCustomBudget bool
	if s.EndDate.IsZero() || !d.After(s.EndDate) {
		if amt, ok := s.CustomBudgets[d]; ok {
			baseBudget = amt
			isCustomBudget = true
		} else {
			baseBudget = s.DayBudget(d)
		}
	}

	var spent float64
	for _, e := range dayEntries {
		spent += e.Amount
	}

	// A manual rollover override replaces whatever the walk carried in and
	// cancels any parked pre-challenge balance.
	var isCustomRollover bool
	if amt, ok := s.CustomRollovers[d]; ok {
		st.rollover = amt
		isCustomRollover = true
		st.preserved = 0
		st.hasPreserved = false
	}

	var totalAvailable, remaining, statsRollover float64

	if inChallenge {
		if !st.hasPreserved && !isCustomRollover {
			st.preserved = st.rollover
			st.hasPreserved = true
		}

		// Challenge days run on the base budget alone; a same-day manual
		// override is the only rollover they honor.
		totalAvailable = baseBudget
		if isCustomRollover {
			totalAvailable += st.rollover
			statsRollover = st.rollover
		}
		remaining = totalAvailable - spent
		st.challengeSaved += remaining
		st.rollover = 0
	} else {
		if st.hasPreserved && !isCustomRollover {
			st.rollover = st.preserved
			st.preserved = 0
			st.hasPreserved = false
		}

		totalAvailable = baseBudget + st.rollover
		remaining = totalAvailable - spent
		statsRollover = st.rollover

		// Only fully elapsed days hand their remainder to tomorrow; today
		// and future days are still open.
		if d.Before(today) {
			st.rollover = remaining
		} else {
			st.rollover = 0
		}
	}

	out := model.DailyStats{
		Date:             d,
		BaseBudget:       baseBudget,
		Rollover:         statsRollover,
		TotalAvailable:   totalAvailable,
		Spent:            spent,
		Remaining:        remaining,
		Status:           classify(spent, totalAvailable, s.AlarmThreshold),
		Entries:          dayEntries,
		IsCustomBudget:   isCustomBudget,
		IsCustomRollover: isCustomRollover,
		IsChallengeDay:   inChallenge,
	}
	if inChallenge {
		out.ChallengeName = ch.Name
		out.ChallengeSavedSoFar = st.challengeSaved
	}
	return out
}

// classify applies the alarm threshold. The threshold only fires on days
// with a positive budget, so an empty zero-budget day stays green.
func classify(spent, totalAvailable, threshold float64) model.BudgetStatus {
	switch {
	case spent > totalAvailable:
		return model.OverBudget
	case totalAvailable > 0 && spent >= totalAvailable*threshold:
		return model.Warning
	default:
		return model.UnderAlarm
	}
}

// groupByDate buckets entries by attributed day, keeping each bucket in
// creation order for display.
func groupByDate(entries []model.Entry) map[dateutil.Date][]model.Entry {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	byDate := make(map[dateutil.Date][]model.Entry)
	for _, e := range sorted {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	return byDate
}
