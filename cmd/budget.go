package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"suds/internal/cli"
	"suds/internal/dateutil"

	"github.com/spf13/cobra"
)

var (
	flagBudgetWeekday   float64
	flagBudgetWeekend   float64
	flagBudgetThreshold int
	flagBudgetStart     string
	flagBudgetEnd       string
	flagBudgetClear     bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Adjust budgets and rollover overrides",
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the base budgets or tracking range",
	RunE:  runBudgetSet,
}

var budgetDayCmd = &cobra.Command{
	Use:   "day <date> [amount]",
	Short: "Override the budget for a single day",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runBudgetDay,
}

var budgetRolloverCmd = &cobra.Command{
	Use:   "rollover <date> [amount]",
	Short: "Override the rollover carried into a day",
	Long:  "Pins the amount carried into a day, replacing whatever the previous day left behind.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runBudgetRollover,
}

func init() {
	budgetSetCmd.Flags().Float64Var(&flagBudgetWeekday, "weekday", 0, "Weekday budget")
	budgetSetCmd.Flags().Float64Var(&flagBudgetWeekend, "weekend", 0, "Weekend budget")
	budgetSetCmd.Flags().IntVar(&flagBudgetThreshold, "threshold", 0, "Warning threshold percent (1-100)")
	budgetSetCmd.Flags().StringVar(&flagBudgetStart, "start", "", "Tracking start date (YYYY-MM-DD)")
	budgetSetCmd.Flags().StringVar(&flagBudgetEnd, "end", "", "Tracking end date (YYYY-MM-DD, empty for open-ended)")

	budgetDayCmd.Flags().BoolVar(&flagBudgetClear, "clear", false, "Remove the override")
	budgetRolloverCmd.Flags().BoolVar(&flagBudgetClear, "clear", false, "Remove the override")

	budgetCmd.AddCommand(budgetSetCmd, budgetDayCmd, budgetRolloverCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	s := state.settings
	cur := state.cfg.General.Currency

	fmt.Println()
	pairs := [][2]string{
		{"Weekday", cli.FormatMoney(cur, s.WeekdayBudget)},
		{"Weekend", cli.FormatMoney(cur, s.WeekendBudget)},
		{"Threshold", cli.FormatPercent(s.AlarmThreshold)},
		{"Tracking from", s.StartDate.String()},
	}
	if !s.EndDate.IsZero() {
		pairs = append(pairs, [2]string{"Tracking until", s.EndDate.String()})
	}
	fmt.Println(cli.RenderCard("Budget", pairs))

	if len(s.CustomBudgets) > 0 {
		var rows [][]string
		for _, d := range sortedOverrideDates(s.CustomBudgets) {
			rows = append(rows, []string{d.String(), cli.FormatMoney(cur, s.CustomBudgets[d])})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Day overrides",
			Headers: []string{"Date", "Budget"},
			Rows:    rows,
		}))
	}
	if len(s.CustomRollovers) > 0 {
		var rows [][]string
		for _, d := range sortedOverrideDates(s.CustomRollovers) {
			rows = append(rows, []string{d.String(), cli.FormatMoney(cur, s.CustomRollovers[d])})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Rollover overrides",
			Headers: []string{"Date", "Carried in"},
			Rows:    rows,
		}))
	}
	fmt.Println()
	return nil
}

func runBudgetSet(cmd *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	s := state.settings
	changed := false

	if cmd.Flags().Changed("weekday") {
		if flagBudgetWeekday < 0 {
			return fmt.Errorf("weekday budget must not be negative")
		}
		s.WeekdayBudget = flagBudgetWeekday
		changed = true
	}
	if cmd.Flags().Changed("weekend") {
		if flagBudgetWeekend < 0 {
			return fmt.Errorf("weekend budget must not be negative")
		}
		s.WeekendBudget = flagBudgetWeekend
		changed = true
	}
	if cmd.Flags().Changed("threshold") {
		if flagBudgetThreshold < 1 || flagBudgetThreshold > 100 {
			return fmt.Errorf("threshold must be 1-100")
		}
		s.AlarmThreshold = float64(flagBudgetThreshold) / 100
		changed = true
	}
	if cmd.Flags().Changed("start") {
		if s.StartDate, err = dateutil.Parse(flagBudgetStart); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("end") {
		if s.EndDate, err = parseOptionalDate(flagBudgetEnd); err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change, see `suds budget set --help`")
	}
	if !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("end date must not be before start date")
	}

	if err := state.saveSettings(s); err != nil {
		return err
	}
	fmt.Println("  Budget updated.")
	return nil
}

func runBudgetDay(_ *cobra.Command, args []string) error {
	return setOverride(args, "budget")
}

func runBudgetRollover(_ *cobra.Command, args []string) error {
	return setOverride(args, "rollover")
}

func setOverride(args []string, kind string) error {
	date, err := dateutil.Parse(args[0])
	if err != nil {
		return err
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	s := state.settings
	if s.CustomBudgets == nil {
		s.CustomBudgets = map[dateutil.Date]float64{}
	}
	if s.CustomRollovers == nil {
		s.CustomRollovers = map[dateutil.Date]float64{}
	}
	m := s.CustomBudgets
	if kind == "rollover" {
		m = s.CustomRollovers
	}

	if flagBudgetClear {
		if _, ok := m[date]; !ok {
			return fmt.Errorf("no %s override on %s", kind, date)
		}
		delete(m, date)
		if err := state.saveSettings(s); err != nil {
			return err
		}
		fmt.Printf("  Cleared %s override on %s\n", kind, date)
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("amount required (or --clear to remove)")
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	if kind == "budget" && amount < 0 {
		return fmt.Errorf("budget must not be negative")
	}

	m[date] = amount
	if err := state.saveSettings(s); err != nil {
		return err
	}

	cur := state.cfg.General.Currency
	fmt.Printf("  Set %s on %s to %s\n", kind, date, cli.FormatMoney(cur, amount))
	return nil
}

func sortedOverrideDates(m map[dateutil.Date]float64) []dateutil.Date {
	dates := make([]dateutil.Date, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
