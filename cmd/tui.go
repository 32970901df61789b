package cmd

import (
	"fmt"

	"suds/internal/tui"
	"suds/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}
	defer state.Close()

	theme.SetActive(state.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	snap := tui.Snapshot{
		Settings: state.settings,
		Entries:  state.entries,
		Stats:    state.stats,
		Streak:   state.streak,
		Today:    state.today,
	}

	// Loader re-reads from the already-open store so 'r' picks up edits made
	// in another terminal.
	load := func() (tui.Snapshot, error) {
		settings, err := state.store.LoadSettings()
		if err != nil {
			return tui.Snapshot{}, err
		}
		entries, err := state.store.LoadEntries()
		if err != nil {
			return tui.Snapshot{}, err
		}
		state.settings = settings
		state.entries = entries
		state.recompute(state.today)
		return tui.Snapshot{
			Settings: state.settings,
			Entries:  state.entries,
			Stats:    state.stats,
			Streak:   state.streak,
			Today:    state.today,
		}, nil
	}

	app := tui.NewApp(snap, state.cfg.General.Currency, load)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
