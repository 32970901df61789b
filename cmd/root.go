package cmd

import (
	"fmt"
	"os"

	"suds/internal/challenge"
	"suds/internal/config"
	"suds/internal/dateutil"
	"suds/internal/ledger"
	"suds/internal/model"
	"suds/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "suds",
	Short: "Daily beer budget tracker",
	Long:  "Track daily spending against a rolling budget, keep streaks, and run savings challenges.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// appState bundles everything a command needs: config, the open store, and
// the computed ledger as of today.
type appState struct {
	cfg      config.Config
	store    *store.Store
	settings model.Settings
	entries  []model.Entry
	stats    ledger.StatsMap
	streak   int
	today    dateutil.Date
}

func (s *appState) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// recompute rebuilds the stats map, extending the walk to target when it
// lies beyond today.
func (s *appState) recompute(target dateutil.Date) {
	s.stats = ledger.Compute(s.settings, s.entries, s.today, target)
	s.streak = ledger.Streak(s.stats, s.today)
}

// loadState is the shared loading path used by all commands. It opens the
// database, computes the ledger, and archives any expired challenge.
func loadState() (*appState, error) {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		}
		cfg = config.DefaultConfig()
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	settings, err := st.LoadSettings()
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	entries, err := st.LoadEntries()
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	state := &appState{
		cfg:      cfg,
		store:    st,
		settings: settings,
		entries:  entries,
		today:    dateutil.Today(),
	}
	state.recompute(state.today)

	// Archive an expired challenge before any command sees the data.
	if archived, changed := challenge.AutoArchive(state.settings, state.stats, state.today); changed {
		if err := st.SaveSettings(archived); err != nil {
			// Keep going with the unarchived view rather than failing the command.
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Could not archive finished challenge: %v\n", err)
			}
		} else {
			state.settings = archived
			state.recompute(state.today)
		}
	}

	return state, nil
}

// saveSettings persists and refreshes the in-memory ledger.
func (s *appState) saveSettings(settings model.Settings) error {
	if err := s.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	s.settings = settings
	s.recompute(s.today)
	return nil
}
