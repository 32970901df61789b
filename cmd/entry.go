package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"suds/internal/cli"
	"suds/internal/dateutil"
	"suds/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagEntryDate   string
	flagEntryNote   string
	flagEntryAmount float64
	flagEntryListN  int
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage spending entries",
}

var entryAddCmd = &cobra.Command{
	Use:   "add <amount> [note]",
	Short: "Record a spend",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEntryAdd,
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent entries",
	RunE:  runEntryList,
}

var entryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an entry's amount or note",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntryEdit,
}

var entryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntryRm,
}

func init() {
	entryAddCmd.Flags().StringVar(&flagEntryDate, "date", "", "Entry date as YYYY-MM-DD (default: today)")
	entryListCmd.Flags().IntVarP(&flagEntryListN, "limit", "n", 20, "Entries to show")
	entryEditCmd.Flags().Float64Var(&flagEntryAmount, "amount", 0, "New amount")
	entryEditCmd.Flags().StringVar(&flagEntryNote, "note", "", "New note")

	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryEditCmd, entryRmCmd)
	rootCmd.AddCommand(entryCmd)
}

func runEntryAdd(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	note := ""
	if len(args) > 1 {
		note = args[1]
	}

	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	date := state.today
	if flagEntryDate != "" {
		date, err = dateutil.Parse(flagEntryDate)
		if err != nil {
			return err
		}
	}

	e := model.Entry{
		ID:        uuid.NewString(),
		Date:      date,
		Amount:    amount,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := state.store.SaveEntry(e); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	state.entries = append(state.entries, e)
	state.recompute(state.today)

	cur := state.cfg.General.Currency
	day := state.stats.Lookup(date)
	fmt.Printf("  Logged %s on %s — %s remaining (%s)\n",
		cli.FormatMoney(cur, amount), date,
		cli.FormatMoney(cur, day.Remaining),
		cli.StatusLabel(day.Status))
	return nil
}

func runEntryList(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	if len(state.entries) == 0 {
		fmt.Println("  No entries yet.")
		return nil
	}

	cur := state.cfg.General.Currency

	// Newest first
	var rows [][]string
	for i := len(state.entries) - 1; i >= 0 && len(rows) < flagEntryListN; i-- {
		e := state.entries[i]
		rows = append(rows, []string{
			shortID(e.ID),
			e.Date.String(),
			cli.FormatMoney(cur, e.Amount),
			e.Note,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Entries",
		Headers: []string{"ID", "Date", "Amount", "Note"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runEntryEdit(cmd *cobra.Command, args []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	e, err := findEntry(state.entries, args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("amount") {
		if flagEntryAmount < 0 {
			return fmt.Errorf("amount must not be negative")
		}
		e.Amount = flagEntryAmount
	}
	if cmd.Flags().Changed("note") {
		e.Note = flagEntryNote
	}

	if err := state.store.SaveEntry(e); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	fmt.Printf("  Updated entry %s\n", shortID(e.ID))
	return nil
}

func runEntryRm(_ *cobra.Command, args []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	e, err := findEntry(state.entries, args[0])
	if err != nil {
		return err
	}

	if err := state.store.DeleteEntry(e.ID); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	cur := state.cfg.General.Currency
	fmt.Printf("  Deleted %s from %s (%s)\n", shortID(e.ID), e.Date, cli.FormatMoney(cur, e.Amount))
	return nil
}

// findEntry resolves a full or prefix entry ID. Prefixes must be unambiguous.
func findEntry(entries []model.Entry, id string) (model.Entry, error) {
	var matches []model.Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return model.Entry{}, fmt.Errorf("no entry with id %q", id)
	case 1:
		return matches[0], nil
	default:
		return model.Entry{}, fmt.Errorf("id %q matches %d entries, use a longer prefix", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
