package cmd

import (
	"fmt"
	"strconv"

	"suds/internal/config"
	"suds/internal/dateutil"
	"suds/internal/store"
	"suds/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	settings, err := st.LoadSettings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	weekday := formatBudgetInput(settings.WeekdayBudget)
	weekend := formatBudgetInput(settings.WeekendBudget)
	threshold := strconv.Itoa(int(settings.AlarmThreshold * 100))
	start := settings.StartDate.String()
	if settings.StartDate.IsZero() {
		start = dateutil.Today().String()
	}
	themeName := cfg.Appearance.Theme

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Value(&cfg.General.Currency),
			huh.NewInput().
				Title("Weekday budget").
				Description("Daily budget Monday through Friday").
				Value(&weekday).
				Validate(validateMoney),
			huh.NewInput().
				Title("Weekend budget").
				Description("Daily budget Saturday and Sunday").
				Value(&weekend).
				Validate(validateMoney),
			huh.NewInput().
				Title("Warning threshold").
				Description("Warn when spending reaches this percent of the day's budget").
				Value(&threshold),
			huh.NewInput().
				Title("Tracking start date").
				Description("YYYY-MM-DD").
				Value(&start).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&themeName),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	settings.WeekdayBudget = mustMoney(weekday)
	settings.WeekendBudget = mustMoney(weekend)
	if n, err := strconv.Atoi(threshold); err == nil && n > 0 && n <= 100 {
		settings.AlarmThreshold = float64(n) / 100
	}
	if settings.AlarmThreshold <= 0 || settings.AlarmThreshold > 1 {
		settings.AlarmThreshold = 0.8
	}
	if settings.StartDate, err = dateutil.Parse(start); err != nil {
		return err
	}
	cfg.Appearance.Theme = themeName

	if err := st.SaveSettings(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved config to %s\n", config.ConfigPath())
	fmt.Printf("  Database at %s\n", cfg.DBPath())
	fmt.Println("  Log your first spend with `suds entry add <amount>`.")
	fmt.Println()
	return nil
}

func formatBudgetInput(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateMoney(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}

func mustMoney(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
