package cmd

import (
	"fmt"
	"strconv"

	"suds/internal/challenge"
	"suds/internal/cli"
	"suds/internal/dateutil"
	"suds/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagChName     string
	flagChPurpose  string
	flagChStart    string
	flagChEnd      string
	flagChTarget   int
	flagChRecur    string
	flagChRecurEnd string
	flagChYes      bool
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Run savings challenges",
}

var challengeStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new challenge",
	RunE:  runChallengeStart,
}

var challengeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active challenge",
	RunE:  runChallengeStatus,
}

var challengeEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active challenge",
	RunE:  runChallengeEdit,
}

var challengeEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active challenge now",
	RunE:  runChallengeEnd,
}

var challengeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past challenges",
	RunE:  runChallengeList,
}

func init() {
	for _, c := range []*cobra.Command{challengeStartCmd, challengeEditCmd} {
		c.Flags().StringVar(&flagChName, "name", "", "Challenge name")
		c.Flags().StringVar(&flagChPurpose, "purpose", "", "What the savings are for")
		c.Flags().StringVar(&flagChStart, "start", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagChEnd, "end", "", "End date (YYYY-MM-DD)")
		c.Flags().IntVar(&flagChTarget, "target", 100, "Percent of the budget to save (1-100)")
		c.Flags().StringVar(&flagChRecur, "recur", "none", "Recurrence: none, daily, weekly, bi-weekly, monthly")
		c.Flags().StringVar(&flagChRecurEnd, "recur-end", "", "Stop recurring after this date (YYYY-MM-DD)")
	}
	challengeEndCmd.Flags().BoolVarP(&flagChYes, "yes", "y", false, "Skip confirmation")

	challengeCmd.AddCommand(challengeStartCmd, challengeStatusCmd, challengeEditCmd, challengeEndCmd, challengeListCmd)
	rootCmd.AddCommand(challengeCmd)
}

func runChallengeStart(cmd *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	draft := challenge.Draft{
		Name:             flagChName,
		Purpose:          flagChPurpose,
		TargetPercentage: flagChTarget,
		Recurrence:       model.Recurrence(flagChRecur),
	}
	if draft.StartDate, err = parseOptionalDate(flagChStart); err != nil {
		return err
	}
	if draft.EndDate, err = parseOptionalDate(flagChEnd); err != nil {
		return err
	}
	if draft.RecurrenceEndDate, err = parseOptionalDate(flagChRecurEnd); err != nil {
		return err
	}
	if draft.StartDate.IsZero() {
		draft.StartDate = state.today
	}

	// Interactive form when the name wasn't given on the command line.
	if !cmd.Flags().Changed("name") {
		if err := challengeForm(&draft, state.today); err != nil {
			return err
		}
	}

	if prev := state.settings.ActiveChallenge; prev != nil && !flagChYes {
		fmt.Printf("  This will cancel the active challenge %q.\n", prev.Name)
		ok, err := confirm("Start anyway?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	updated, err := challenge.Start(state.settings, draft, state.stats, state.today)
	if err != nil {
		return err
	}
	if err := state.saveSettings(updated); err != nil {
		return err
	}

	ch := updated.ActiveChallenge
	cur := state.cfg.General.Currency
	fmt.Printf("  Started %s: %s → %s, saving %d%% of %s\n",
		cli.ChallengeLabel(ch.Name), ch.StartDate, ch.EndDate,
		ch.TargetPercentage,
		cli.FormatMoney(cur, challenge.TotalBudget(*ch, updated)))
	return nil
}

func runChallengeStatus(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	ch := state.settings.ActiveChallenge
	if ch == nil {
		fmt.Println("  No active challenge. Start one with `suds challenge start`.")
		return nil
	}

	cur := state.cfg.General.Currency
	rep := challenge.Report(*ch, state.settings, state.stats, state.today)

	fmt.Println()
	fmt.Println(cli.RenderTitle(ch.Name))
	fmt.Println()

	pairs := [][2]string{}
	if ch.Purpose != "" {
		pairs = append(pairs, [2]string{"Purpose", ch.Purpose})
	}
	pairs = append(pairs,
		[2]string{"Dates", fmt.Sprintf("%s → %s", ch.StartDate, ch.EndDate)},
		[2]string{"Day", fmt.Sprintf("%d of %d (%d left)", rep.DayNumber, rep.TotalDays, rep.DaysLeft)},
		[2]string{"Budget", cli.FormatMoney(cur, rep.TotalBudget)},
		[2]string{"Target", fmt.Sprintf("%s (%d%%)", cli.FormatMoney(cur, rep.TargetAmount), ch.TargetPercentage)},
		[2]string{"Saved", cli.FormatMoney(cur, rep.SavedSoFar)},
		[2]string{"Phase", string(rep.Phase)},
	)
	if ch.Recurrence != model.RecurrenceNone {
		recur := string(ch.Recurrence)
		if !ch.RecurrenceEndDate.IsZero() {
			recur += " until " + ch.RecurrenceEndDate.String()
		}
		pairs = append(pairs, [2]string{"Recurs", recur})
	}
	fmt.Println(cli.RenderCard("", pairs))

	pct := 0.0
	if rep.TargetAmount > 0 {
		pct = rep.SavedSoFar / rep.TargetAmount
	}
	fmt.Printf("\n  %s\n\n", renderSpendBar(pct, 30))
	return nil
}

func runChallengeEdit(cmd *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	ch := state.settings.ActiveChallenge
	if ch == nil {
		return challenge.ErrNoActiveChallenge
	}

	draft := challenge.Draft{
		Name:              ch.Name,
		Purpose:           ch.Purpose,
		StartDate:         ch.StartDate,
		EndDate:           ch.EndDate,
		TargetPercentage:  ch.TargetPercentage,
		Recurrence:        ch.Recurrence,
		RecurrenceEndDate: ch.RecurrenceEndDate,
	}

	anyFlag := false
	for _, name := range []string{"name", "purpose", "start", "end", "target", "recur", "recur-end"} {
		if cmd.Flags().Changed(name) {
			anyFlag = true
		}
	}

	if anyFlag {
		if cmd.Flags().Changed("name") {
			draft.Name = flagChName
		}
		if cmd.Flags().Changed("purpose") {
			draft.Purpose = flagChPurpose
		}
		if cmd.Flags().Changed("start") {
			if draft.StartDate, err = parseOptionalDate(flagChStart); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("end") {
			if draft.EndDate, err = parseOptionalDate(flagChEnd); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("target") {
			draft.TargetPercentage = flagChTarget
		}
		if cmd.Flags().Changed("recur") {
			draft.Recurrence = model.Recurrence(flagChRecur)
		}
		if cmd.Flags().Changed("recur-end") {
			if draft.RecurrenceEndDate, err = parseOptionalDate(flagChRecurEnd); err != nil {
				return err
			}
		}
	} else {
		if err := challengeForm(&draft, state.today); err != nil {
			return err
		}
	}

	updated, err := challenge.Edit(state.settings, draft, state.today)
	if err != nil {
		return err
	}
	if err := state.saveSettings(updated); err != nil {
		return err
	}
	fmt.Printf("  Updated %s\n", cli.ChallengeLabel(updated.ActiveChallenge.Name))
	return nil
}

func runChallengeEnd(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	ch := state.settings.ActiveChallenge
	if ch == nil {
		return challenge.ErrNoActiveChallenge
	}

	if !flagChYes {
		ok, err := confirm(fmt.Sprintf("End challenge %q now?", ch.Name))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	updated, err := challenge.End(state.settings, state.stats, state.today)
	if err != nil {
		return err
	}
	if err := state.saveSettings(updated); err != nil {
		return err
	}

	archived := updated.PastChallenges[0]
	cur := state.cfg.General.Currency
	fmt.Printf("  Ended %s as %s — saved %s of %s\n",
		cli.ChallengeLabel(archived.Name), archived.Status,
		cli.FormatMoney(cur, archived.FinalSaved),
		cli.FormatMoney(cur, archived.FinalTotalBudget))
	return nil
}

func runChallengeList(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	if len(state.settings.PastChallenges) == 0 {
		fmt.Println("  No past challenges.")
		return nil
	}

	cur := state.cfg.General.Currency
	var rows [][]string
	for _, ch := range state.settings.PastChallenges {
		rows = append(rows, []string{
			ch.Name,
			fmt.Sprintf("%s → %s", ch.StartDate, ch.EndDate),
			string(ch.Status),
			cli.FormatMoney(cur, ch.FinalSaved),
			cli.FormatMoney(cur, ch.FinalTotalBudget),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Past Challenges",
		Headers: []string{"Name", "Dates", "Result", "Saved", "Budget"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

// challengeForm fills a draft interactively. Pre-populated fields become the
// form defaults.
func challengeForm(d *challenge.Draft, today dateutil.Date) error {
	start := d.StartDate.String()
	end := ""
	if !d.EndDate.IsZero() {
		end = d.EndDate.String()
	}
	target := strconv.Itoa(d.TargetPercentage)
	if d.TargetPercentage == 0 {
		target = "100"
	}
	recurEnd := ""
	if !d.RecurrenceEndDate.IsZero() {
		recurEnd = d.RecurrenceEndDate.String()
	}
	recurrence := d.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&d.Name).
				Validate(func(s string) error {
					if s == "" {
						return challenge.ErrNameRequired
					}
					return nil
				}),
			huh.NewInput().
				Title("Purpose").
				Description("What are you saving for? (optional)").
				Value(&d.Purpose),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD").
				Value(&start).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Description("YYYY-MM-DD, inclusive").
				Value(&end).
				Validate(validateDate),
			huh.NewInput().
				Title("Target percent").
				Description("How much of the budget to save (1-100)").
				Value(&target),
		),
		huh.NewGroup(
			huh.NewSelect[model.Recurrence]().
				Title("Recurrence").
				Options(
					huh.NewOption("None", model.RecurrenceNone),
					huh.NewOption("Daily", model.RecurrenceDaily),
					huh.NewOption("Weekly", model.RecurrenceWeekly),
					huh.NewOption("Bi-weekly", model.RecurrenceBiWeekly),
					huh.NewOption("Monthly", model.RecurrenceMonthly),
				).
				Value(&recurrence),
			huh.NewInput().
				Title("Recur until").
				Description("YYYY-MM-DD, blank for no limit").
				Value(&recurEnd),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	var err error
	if d.StartDate, err = parseOptionalDate(start); err != nil {
		return err
	}
	if d.StartDate.IsZero() {
		d.StartDate = today
	}
	if d.EndDate, err = parseOptionalDate(end); err != nil {
		return err
	}
	if d.RecurrenceEndDate, err = parseOptionalDate(recurEnd); err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(target); convErr == nil {
		d.TargetPercentage = n
	}
	d.Recurrence = recurrence
	return nil
}

func confirm(title string) (bool, error) {
	ok := false
	err := huh.NewConfirm().Title(title).Value(&ok).Run()
	return ok, err
}

func parseOptionalDate(s string) (dateutil.Date, error) {
	if s == "" {
		return dateutil.Date{}, nil
	}
	return dateutil.Parse(s)
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	_, err := dateutil.Parse(s)
	return err
}
