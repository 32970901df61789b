// Package challenge implements savings-challenge accounting: allocated
// budget sums, the mathematical failure predicate, pacing reports, and the
// lifecycle controller that starts, edits, ends, and archives challenges.
package challenge

import (
	"suds/internal/dateutil"
	"suds/internal/model"
)

// failureEpsilon absorbs float error in the unreachable-target check.
const failureEpsilon = 0.01

// TotalBudget sums the per-day allowance over the challenge's whole
// inclusive range. Custom budget overrides apply; the settings tracking
// range does not.
func TotalBudget(c model.Challenge, s model.Settings) float64 {
	var total float64
	for d := c.StartDate; !d.After(c.EndDate); d = d.AddDays(1) {
		total += s.DayBudget(d)
	}
	return total
}

// BudgetSoFar sums the allowance from the challenge start through
// min(through, end) inclusive. Zero when through precedes the start.
func BudgetSoFar(c model.Challenge, s model.Settings, through dateutil.Date) float64 {
	if through.Before(c.StartDate) {
		return 0
	}
	end := dateutil.Min(through, c.EndDate)

	var total float64
	for d := c.StartDate; !d.After(end); d = d.AddDays(1) {
		total += s.DayBudget(d)
	}
	return total
}

// IsFailed reports whether the challenge target is already mathematically
// unreachable: even spending nothing for the rest of the run would leave
// final savings below the target. Spending never improves the best case,
// so once true this stays true.
func IsFailed(c model.Challenge, s model.Settings, savedSoFar float64, today dateutil.Date) bool {
	totalBudget := TotalBudget(c, s)
	budgetSoFar := BudgetSoFar(c, s, today)

	spentSoFar := budgetSoFar - savedSoFar
	maxPossibleFinalSavings := totalBudget - spentSoFar
	targetAmount := totalBudget * c.TargetFraction()

	return maxPossibleFinalSavings < targetAmount-failureEpsilon
}
