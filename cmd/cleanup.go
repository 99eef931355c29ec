package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old records from the store",
	Long:  `Deletes store records older than the retention window. The active draft is never removed, regardless of age.`,
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "retention window in days (default: config retention_days)")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, monitor, err := openStore(cfg)
	if err != nil {
		return err
	}

	days := cleanupDays
	if days <= 0 {
		days = cfg.Store.RetentionDays
	}

	result, err := monitor.CleanupOlderThan(days)
	if err != nil {
		return fmt.Errorf("cleaning up: %w", err)
	}

	if result.DeletedCount == 0 {
		fmt.Printf("Nothing older than %d days.\n", days)
		return nil
	}
	fmt.Printf("Removed %d record(s), freed %d bytes.\n", result.DeletedCount, result.BytesFreed)
	return nil
}
