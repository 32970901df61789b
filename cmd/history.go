package cmd

import (
	"fmt"

	"suds/internal/cli"

	"github.com/spf13/cobra"
)

var flagHistoryDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the daily ledger for recent days",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 0, "Days to show (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	days := flagHistoryDays
	if days <= 0 {
		days = state.cfg.General.HistoryDays
	}
	if days <= 0 {
		days = 30
	}

	cur := state.cfg.General.Currency

	// Newest first, capped at the requested window
	all := state.stats.Dates()
	var rows [][]string
	for i := len(all) - 1; i >= 0 && len(rows) < days; i-- {
		d := all[i]
		if d.After(state.today) {
			continue
		}
		ds := state.stats.Lookup(d)

		note := ""
		switch {
		case ds.IsChallengeDay:
			note = ds.ChallengeName
		case ds.IsCustomBudget:
			note = "custom budget"
		}

		rows = append(rows, []string{
			fmt.Sprintf("%s %s", d, cli.FormatDayOfWeek(d.Weekday())),
			cli.FormatMoney(cur, ds.TotalAvailable),
			cli.FormatMoney(cur, ds.Spent),
			cli.FormatMoney(cur, ds.Remaining),
			cli.StatusLabel(ds.Status),
			note,
		})
	}

	if len(rows) == 0 {
		fmt.Println("  No tracked days yet.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Last %d days", len(rows)),
		Headers: []string{"Date", "Available", "Spent", "Remaining", "Status", ""},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
