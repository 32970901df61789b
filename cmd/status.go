package cmd

import (
	"fmt"
	"strings"

	"suds/internal/challenge"
	"suds/internal/cli"
	"suds/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's budget, spending, and streak",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	if !config.Exists() {
		fmt.Println()
		fmt.Println("  No configuration found. Run `suds setup` to get started.")
		fmt.Println()
		return nil
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	cur := state.cfg.General.Currency
	today := state.stats.Lookup(state.today)

	fmt.Println()
	fmt.Println(cli.RenderTitle("TODAY"))
	fmt.Println()

	pairs := [][2]string{
		{"Date", fmt.Sprintf("%s (%s)", state.today, cli.FormatDayOfWeek(state.today.Weekday()))},
		{"Budget", cli.FormatMoney(cur, today.BaseBudget)},
	}
	if today.Rollover != 0 {
		pairs = append(pairs, [2]string{"Rollover", cli.FormatMoney(cur, today.Rollover)})
	}
	pairs = append(pairs,
		[2]string{"Available", cli.FormatMoney(cur, today.TotalAvailable)},
		[2]string{"Spent", cli.FormatMoney(cur, today.Spent)},
		[2]string{"Remaining", cli.FormatMoney(cur, today.Remaining)},
		[2]string{"Status", cli.StatusLabel(today.Status)},
	)
	if today.IsChallengeDay {
		pairs = append(pairs,
			[2]string{"Challenge", cli.ChallengeLabel(today.ChallengeName)},
			[2]string{"Saved so far", cli.FormatMoney(cur, today.ChallengeSavedSoFar)},
		)
	}
	fmt.Println(cli.RenderCard("", pairs))
	fmt.Println()

	// Spend bar
	pct := 0.0
	if today.TotalAvailable > 0 {
		pct = today.Spent / today.TotalAvailable
	} else if today.Spent > 0 {
		pct = 1
	}
	fmt.Printf("  %s\n", renderSpendBar(pct, 30))

	// Streak
	if state.streak > 0 {
		noun := "days"
		if state.streak == 1 {
			noun = "day"
		}
		fmt.Printf("\n  Streak: %d %s under budget\n", state.streak, noun)
	}

	// Active challenge summary
	if ch := state.settings.ActiveChallenge; ch != nil {
		rep := challenge.Report(*ch, state.settings, state.stats, state.today)
		fmt.Println()
		fmt.Printf("  %s — day %d/%d, %s\n",
			cli.ChallengeLabel(ch.Name), rep.DayNumber, rep.TotalDays, rep.Phase)
		fmt.Printf("  saved %s of %s target\n",
			cli.FormatMoney(cur, rep.SavedSoFar),
			cli.FormatMoney(cur, rep.TargetAmount))
	}

	fmt.Println()
	return nil
}

func renderSpendBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}
	filled := int(shown * float64(width))

	color := cli.ColorGreen
	if pct >= 1 {
		color = cli.ColorRed
	} else if pct >= 0.8 {
		color = cli.ColorOrange
	}

	barStyle := lipgloss.NewStyle().Foreground(color)
	dimStyle := lipgloss.NewStyle().Foreground(cli.ColorTextDim)

	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %.0f%%", pct*100)
}
