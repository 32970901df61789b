package tui

import (
	"fmt"
	"strings"

	"suds/internal/challenge"
	"suds/internal/model"
	"suds/internal/tui/components"
	"suds/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	today := a.snap.Stats.Lookup(a.snap.Today)
	var b strings.Builder

	// Row 1: Metric cards
	remainCaption := "remaining"
	if today.Remaining < 0 {
		remainCaption = "over budget"
	}
	streakCaption := "days under budget"
	if a.snap.Streak == 1 {
		streakCaption = "day under budget"
	}

	cards := []struct{ Label, Value, Caption string }{
		{"Available", a.money(today.TotalAvailable), fmt.Sprintf("budget %s", a.money(today.BaseBudget))},
		{"Spent", a.money(today.Spent), fmt.Sprintf("%d entries", len(today.Entries))},
		{"Remaining", a.money(today.Remaining), remainCaption},
		{"Streak", fmt.Sprintf("%d", a.snap.Streak), streakCaption},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Spend bar for today
	spendPct := 0.0
	if today.TotalAvailable > 0 {
		spendPct = today.Spent / today.TotalAvailable
	} else if today.Spent > 0 {
		spendPct = 1
	}
	barW := components.CardInnerWidth(cw) - 18
	if barW < 10 {
		barW = 10
	}
	spendBody := components.SpendBar("Today", spendPct, 7, barW)
	if today.Rollover != 0 {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
		spendBody += "\n" + dimStyle.Render(fmt.Sprintf("includes %s rolled over", a.money(today.Rollover)))
	}
	b.WriteString(components.ContentCard("Budget", spendBody, cw))
	b.WriteString("\n")

	// Row 3: today's entries + challenge summary
	halves := components.LayoutRow(cw, 2)

	entryCard := components.ContentCard("Today's Entries", a.renderEntryList(today.Entries, components.CardInnerWidth(halves[0])), halves[0])

	var challengeBody string
	if rep, ch, ok := a.activeReport(); ok {
		challengeBody = a.renderChallengeSummary(rep, ch.Name, components.CardInnerWidth(halves[1]))
	} else {
		challengeBody = lipgloss.NewStyle().Foreground(t.TextDim).Render("No active challenge")
	}
	challengeCard := components.ContentCard("Challenge", challengeBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Today's Entries", a.renderEntryList(today.Entries, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Challenge", challengeBody, cw))
	} else {
		b.WriteString(components.CardRow([]string{entryCard, challengeCard}))
	}

	return b.String()
}

func (a App) renderEntryList(entries []model.Entry, innerW int) string {
	t := theme.Active
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing logged yet")
	}

	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	noteW := innerW - 12
	if noteW < 8 {
		noteW = 8
	}

	var b strings.Builder
	for _, e := range entries {
		note := e.Note
		if note == "" {
			note = "—"
		}
		fmt.Fprintf(&b, "%s  %s\n",
			amountStyle.Render(fmt.Sprintf("%9s", a.money(e.Amount))),
			noteStyle.Render(truncStr(note, noteW)))
	}
	return b.String()
}

func (a App) renderChallengeSummary(rep challenge.Progress, name string, innerW int) string {
	t := theme.Active

	nameStyle := lipgloss.NewStyle().Foreground(t.Magenta).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	pct := 0.0
	if rep.TargetAmount > 0 {
		pct = rep.SavedSoFar / rep.TargetAmount
	}
	barW := innerW - 6
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render(name))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  day %d/%d · %s", rep.DayNumber, rep.TotalDays, rep.Phase)))
	b.WriteString("\n")
	b.WriteString(components.SavingsBar(pct, barW))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("saved %s of %s target",
		a.money(rep.SavedSoFar), a.money(rep.TargetAmount))))
	return b.String()
}
