package tui

import (
	"fmt"
	"strings"
	"time"

	"suds/internal/dateutil"
	"suds/internal/model"
	"suds/internal/tui/components"
	"suds/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const calCellWidth = 9

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	monthLabel := fmt.Sprintf("%s %d", a.calMonth.Month.String(), a.calMonth.Year)
	b.WriteString(" " + titleStyle.Render(monthLabel))
	b.WriteString(hintStyle.Render("   [p]rev  [n]ext  [t]oday"))
	b.WriteString("\n\n")

	b.WriteString(a.renderMonthGrid())
	b.WriteString("\n")
	b.WriteString(a.renderCalendarLegend())

	return components.ContentCard("", b.String(), cw)
}

func (a App) renderMonthGrid() string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	var b strings.Builder

	// Weekday header, Monday first
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for _, n := range names {
		b.WriteString(headStyle.Render(fmt.Sprintf(" %-*s", calCellWidth-1, n)))
	}
	b.WriteString("\n")

	dates := dateutil.MonthDates(a.calMonth.Year, a.calMonth.Month)
	if len(dates) == 0 {
		return b.String()
	}

	// Leading blanks to align the 1st under its weekday column
	offset := mondayIndex(dates[0].Weekday())
	col := 0
	for ; col < offset; col++ {
		b.WriteString(strings.Repeat(" ", calCellWidth))
	}

	for _, d := range dates {
		b.WriteString(a.renderDayCell(d))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	return b.String()
}

// renderDayCell renders one calendar day: day number plus a spend/status
// marker. Days outside the tracked range render dimmed.
func (a App) renderDayCell(d dateutil.Date) string {
	t := theme.Active
	ds, ok := a.snap.Stats[d]

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	if !ok {
		return dimStyle.Render(fmt.Sprintf(" %2d      ", d.Day))
	}

	var marker string
	var markerColor lipgloss.Color
	switch {
	case d.After(a.snap.Today):
		marker = "·"
		markerColor = t.TextDim
	case ds.IsChallengeDay:
		marker = "◆"
		markerColor = t.Magenta
		if ds.Status == model.OverBudget {
			markerColor = t.Red
		}
	default:
		marker = "●"
		markerColor = statusColor(ds.Status)
	}

	numStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	if d == a.snap.Today {
		numStyle = lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	}

	spent := ""
	if ds.Spent > 0 {
		spent = truncStr(a.money(ds.Spent), calCellWidth-5)
	}

	cell := fmt.Sprintf(" %s %s %s",
		numStyle.Render(fmt.Sprintf("%2d", d.Day)),
		lipgloss.NewStyle().Foreground(markerColor).Render(marker),
		dimStyle.Render(spent))

	// Pad to fixed cell width
	pad := calCellWidth - lipgloss.Width(cell)
	if pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}

func (a App) renderCalendarLegend() string {
	t := theme.Active

	item := func(c lipgloss.Color, marker, label string) string {
		return lipgloss.NewStyle().Foreground(c).Render(marker) + " " +
			lipgloss.NewStyle().Foreground(t.TextMuted).Render(label)
	}

	return " " + strings.Join([]string{
		item(t.Green, "●", "under"),
		item(t.Orange, "●", "warning"),
		item(t.Red, "●", "over"),
		item(t.Magenta, "◆", "challenge"),
		item(t.TextDim, "·", "future"),
	}, "   ")
}

// mondayIndex maps time.Weekday to a Monday-first column index.
func mondayIndex(wd time.Weekday) int {
	idx := int(wd) - 1
	if idx < 0 {
		idx = 6
	}
	return idx
}
