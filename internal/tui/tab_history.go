package tui

import (
	"fmt"
	"strings"

	"suds/internal/cli"
	"suds/internal/dateutil"
	"suds/internal/tui/components"
	"suds/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderHistoryTab(cw, contentH int) string {
	t := theme.Active
	var b strings.Builder

	days := a.historyDates()
	if len(days) == 0 {
		return components.ContentCard("History",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No tracked days yet"), cw)
	}

	// Spend sparkline over the visible window, oldest left
	sparkVals := make([]float64, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		sparkVals = append(sparkVals, a.snap.Stats.Lookup(days[i]).Spent)
	}
	sparkStyle := lipgloss.NewStyle().Foreground(t.Blue)
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Spending (%d days)", len(days)),
		sparkStyle.Render(cli.RenderSparkline(sparkVals)),
		cw,
	))
	b.WriteString("\n")

	// Day rows, newest first, scrolled by histScroll
	rows := contentH - 8
	if rows < 3 {
		rows = 3
	}
	start := a.histScroll
	if start > len(days)-1 {
		start = len(days) - 1
	}
	end := start + rows
	if end > len(days) {
		end = len(days)
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var list strings.Builder
	for _, d := range days[start:end] {
		ds := a.snap.Stats.Lookup(d)

		marker := lipgloss.NewStyle().Foreground(statusColor(ds.Status)).Render("●")
		if ds.IsChallengeDay {
			marker = lipgloss.NewStyle().Foreground(t.Magenta).Render("◆")
		}

		line := fmt.Sprintf("%s %s %s  spent %s of %s",
			marker,
			dateStyle.Render(d.String()),
			dimStyle.Render(cli.FormatDayOfWeek(d.Weekday())),
			mutedStyle.Render(fmt.Sprintf("%9s", a.money(ds.Spent))),
			mutedStyle.Render(fmt.Sprintf("%9s", a.money(ds.TotalAvailable))))
		if ds.IsChallengeDay {
			line += dimStyle.Render(fmt.Sprintf("  saved %s", a.money(ds.ChallengeSavedSoFar)))
		} else if ds.Rollover != 0 {
			line += dimStyle.Render(fmt.Sprintf("  +%s rolled", a.money(ds.Rollover)))
		}
		list.WriteString(line)
		list.WriteString("\n")
	}
	if end < len(days) {
		list.WriteString(dimStyle.Render(fmt.Sprintf("… %d more (j to scroll)", len(days)-end)))
	}

	b.WriteString(components.ContentCard("Daily Ledger", list.String(), cw))
	return b.String()
}

// historyDates returns tracked dates up to today, newest first.
func (a App) historyDates() []dateutil.Date {
	all := a.snap.Stats.Dates()
	var out []dateutil.Date
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].After(a.snap.Today) {
			continue
		}
		out = append(out, all[i])
	}
	return out
}
