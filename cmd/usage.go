package cmd

import (
	"fmt"
	"sort"

	"github.com/maemreyo/glean-teleprompter/internal/quota"
	"github.com/maemreyo/glean-teleprompter/internal/storage"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show store usage and quota level",
	Long:  `Display the byte usage of every record in the store against the configured capacity.`,
	RunE:  runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)
}

func runUsage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	drv, monitor, err := openStore(cfg)
	if err != nil {
		return err
	}

	u, err := monitor.GetUsage()
	if err != nil {
		return fmt.Errorf("measuring store: %w", err)
	}

	fmt.Printf("Store: %s\n", cfg.Store.Dir)
	fmt.Printf("Used:  %d / %d bytes (%.1f%%), level %s\n", u.Used, u.Total, u.Percentage, quota.LevelFor(u))
	if storage.ReadFlag(drv, storage.KeyWarningDismissed) {
		fmt.Println("Note:  the quota warning was dismissed in the editor.")
	}
	if storage.ReadFlag(drv, storage.KeyUnavailableDetected) {
		fmt.Println("Note:  the store was unavailable during a previous session.")
	}
	fmt.Println()

	if len(u.ByKey) == 0 {
		fmt.Println("  (empty)")
		return nil
	}

	// Stable listing: sorted keys in an aligned column.
	names := make([]string, 0, len(u.ByKey))
	maxLen := 0
	for name := range u.ByKey {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %-*s  %d bytes\n", maxLen, name, u.ByKey[name])
	}
	return nil
}
