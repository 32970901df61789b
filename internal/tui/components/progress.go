package components

import (
	"fmt"

	"suds/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForSpend returns green/yellow/orange/red based on how much of the
// available budget has been spent.
func ColorForSpend(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1.0:
		return string(t.Red)
	case pct >= 0.8:
		return string(t.Orange)
	case pct >= 0.5:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// SpendBar renders a labeled progress bar showing spent vs available budget.
func SpendBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForSpend(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForSpend(pct))).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(shown) +
		" " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// SavingsBar renders a challenge savings bar (saved vs target), colored by
// how close the saver is to the goal.
func SavingsBar(pct float64, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}

	var fill string
	switch {
	case pct >= 1.0:
		fill = string(t.GreenBright)
	case pct >= 0.6:
		fill = string(t.Green)
	case pct >= 0.3:
		fill = string(t.Yellow)
	default:
		fill = string(t.Orange)
	}

	bar := progress.New(
		progress.WithSolidFill(fill),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Bold(true)

	return bar.ViewAs(shown) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
