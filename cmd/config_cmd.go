// Package cmd implements the suds CLI commands.
package cmd

import (
	"fmt"
	"strconv"

	"suds/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Keys: currency, history-days, data-dir, theme",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Printf("    History days: %d\n", cfg.General.HistoryDays)
	fmt.Printf("    Data dir:     %s\n", cfg.DataDir())
	fmt.Printf("    Database:     %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `suds setup` to reconfigure interactively.")
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "currency":
		if value == "" {
			return fmt.Errorf("currency must not be empty")
		}
		cfg.General.Currency = value
	case "history-days":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("history-days must be a positive integer")
		}
		cfg.General.HistoryDays = n
	case "data-dir":
		cfg.General.DataDir = value
	case "theme":
		cfg.Appearance.Theme = value
	default:
		return fmt.Errorf("unknown key %q (currency, history-days, data-dir, theme)", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  Set %s = %s\n", key, value)
	return nil
}
