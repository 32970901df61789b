package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all entries, challenges, and settings",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	if !flagResetYes {
		ok, err := confirm("Delete all tracked data? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if err := state.store.Reset(); err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	fmt.Println("  All data deleted. Run `suds setup` to start over.")
	return nil
}
