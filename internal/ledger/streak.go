package ledger

import (
	"suds/internal/dateutil"
	"suds/internal/model"
)

// Streak counts consecutive non-over-budget days walking backward from
// today. Challenge days are transparent: they neither break nor extend the
// count. A day with no computed stats ends the walk.
func Streak(stats StatsMap, today dateutil.Date) int {
	if ts, ok := stats[today]; ok && ts.Status == model.OverBudget {
		return 0
	}

	streak := 0
	for d := today.AddDays(-1); ; d = d.AddDays(-1) {
		ds, ok := stats[d]
		if !ok {
			break
		}
		if ds.IsChallengeDay {
			continue
		}
		if ds.Status == model.OverBudget {
			break
		}
		streak++
	}
	return streak
}
