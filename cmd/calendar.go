package cmd

import (
	"fmt"
	"strings"
	"time"

	"suds/internal/cli"
	"suds/internal/dateutil"
	"suds/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var flagCalMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month of budget statuses",
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().StringVarP(&flagCalMonth, "month", "m", "", "Month to show as YYYY-MM (default: current)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	anchor := state.today
	if flagCalMonth != "" {
		parsed, err := dateutil.Parse(flagCalMonth + "-01")
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", flagCalMonth)
		}
		anchor = parsed
	}

	dates := dateutil.MonthDates(anchor.Year, anchor.Month)
	if len(dates) == 0 {
		return fmt.Errorf("invalid month %q", flagCalMonth)
	}

	// Extend the walk so future days of the month get projected budgets.
	last := dates[len(dates)-1]
	if last.After(state.today) {
		state.recompute(last)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s %d", anchor.Month, anchor.Year)))
	fmt.Println()

	headStyle := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(cli.ColorTextDim)

	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	var head strings.Builder
	head.WriteString("  ")
	for _, n := range names {
		head.WriteString(headStyle.Render(fmt.Sprintf("%-8s", n)))
	}
	fmt.Println(head.String())

	offset := int(dates[0].Weekday()) - 1
	if offset < 0 {
		offset = 6
	}

	var line strings.Builder
	line.WriteString("  ")
	line.WriteString(strings.Repeat(" ", offset*8))
	col := offset
	for _, d := range dates {
		line.WriteString(calendarCell(state, d))
		col++
		if col == 7 {
			fmt.Println(line.String())
			line.Reset()
			line.WriteString("  ")
			col = 0
		}
	}
	if col != 0 {
		fmt.Println(line.String())
	}

	fmt.Println()
	fmt.Printf("  %s under   %s warning   %s over   %s challenge   %s untracked/future\n\n",
		lipgloss.NewStyle().Foreground(cli.ColorGreen).Render("●"),
		lipgloss.NewStyle().Foreground(cli.ColorOrange).Render("●"),
		lipgloss.NewStyle().Foreground(cli.ColorRed).Render("●"),
		lipgloss.NewStyle().Foreground(cli.ColorPurple).Render("◆"),
		dimStyle.Render("·"))
	return nil
}

func calendarCell(state *appState, d dateutil.Date) string {
	dimStyle := lipgloss.NewStyle().Foreground(cli.ColorTextDim)

	ds, tracked := state.stats[d]

	var marker string
	switch {
	case !tracked || d.After(state.today):
		marker = dimStyle.Render("·")
	case ds.IsChallengeDay:
		color := cli.ColorPurple
		if ds.Status == model.OverBudget {
			color = cli.ColorRed
		}
		marker = lipgloss.NewStyle().Foreground(color).Render("◆")
	default:
		color := cli.ColorGreen
		switch ds.Status {
		case model.Warning:
			color = cli.ColorOrange
		case model.OverBudget:
			color = cli.ColorRed
		}
		marker = lipgloss.NewStyle().Foreground(color).Render("●")
	}

	numStyle := lipgloss.NewStyle().Foreground(cli.ColorText)
	if d == state.today {
		numStyle = lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true).Underline(true)
	} else if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		numStyle = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	}

	return fmt.Sprintf("%s %s    ", numStyle.Render(fmt.Sprintf("%2d", d.Day)), marker)
}
