package tui

import (
	"fmt"
	"strings"

	"suds/internal/model"
	"suds/internal/tui/components"
	"suds/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderChallengeTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	rep, ch, ok := a.activeReport()
	if ok {
		pct := 0.0
		if rep.TargetAmount > 0 {
			pct = rep.SavedSoFar / rep.TargetAmount
		}

		cards := []struct{ Label, Value, Caption string }{
			{"Saved", a.money(rep.SavedSoFar), fmt.Sprintf("target %s", a.money(rep.TargetAmount))},
			{"Budget", a.money(rep.TotalBudget), fmt.Sprintf("%d%% to save", ch.TargetPercentage)},
			{"Day", fmt.Sprintf("%d/%d", rep.DayNumber, rep.TotalDays), fmt.Sprintf("%d left", rep.DaysLeft)},
			{"Phase", string(rep.Phase), string(ch.Recurrence)},
		}
		b.WriteString(components.MetricCardRow(cards, cw))
		b.WriteString("\n")

		nameStyle := lipgloss.NewStyle().Foreground(t.Magenta).Bold(true)
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

		barW := components.CardInnerWidth(cw) - 6
		if barW < 10 {
			barW = 10
		}

		var body strings.Builder
		body.WriteString(nameStyle.Render(ch.Name))
		if ch.Purpose != "" {
			body.WriteString(mutedStyle.Render("  " + truncStr(ch.Purpose, components.CardInnerWidth(cw)-len(ch.Name)-4)))
		}
		body.WriteString("\n")
		body.WriteString(components.SavingsBar(pct, barW))
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s", ch.StartDate, ch.EndDate)))

		b.WriteString(components.ContentCard("Active Challenge", body.String(), cw))
		b.WriteString("\n")
	} else {
		b.WriteString(components.ContentCard("Active Challenge",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No active challenge — start one with `suds challenge start`"), cw))
		b.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Past Challenges", a.renderPastChallenges(), cw))
	return b.String()
}

func (a App) renderPastChallenges() string {
	t := theme.Active
	past := a.snap.Settings.PastChallenges
	if len(past) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("None yet")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	// Already ordered most recent first
	for _, ch := range past {
		var badge string
		switch ch.Status {
		case model.ChallengeCompleted:
			badge = lipgloss.NewStyle().Foreground(t.Green).Render("✓")
		case model.ChallengeFailed:
			badge = lipgloss.NewStyle().Foreground(t.Red).Render("✗")
		default:
			badge = lipgloss.NewStyle().Foreground(t.TextDim).Render("–")
		}

		fmt.Fprintf(&b, "%s %s %s  %s\n",
			badge,
			nameStyle.Render(fmt.Sprintf("%-20s", truncStr(ch.Name, 20))),
			mutedStyle.Render(fmt.Sprintf("%s → %s", ch.StartDate, ch.EndDate)),
			mutedStyle.Render(fmt.Sprintf("saved %s of %s",
				a.money(ch.FinalSaved), a.money(ch.FinalTotalBudget))))
	}
	return strings.TrimRight(b.String(), "\n")
}
