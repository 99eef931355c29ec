package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/maemreyo/glean-teleprompter/internal/autosave"

	"github.com/spf13/cobra"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List saved drafts",
	Long:  `Display all drafts in the store's recent-drafts collection, newest first.`,
	RunE:  runDrafts,
}

func init() {
	rootCmd.AddCommand(draftsCmd)
}

func runDrafts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	drv, _, err := openStore(cfg)
	if err != nil {
		return err
	}

	col, err := autosave.LoadCollection(drv)
	if err != nil {
		return fmt.Errorf("loading drafts: %w", err)
	}

	if len(col.Drafts) == 0 {
		fmt.Println("No saved drafts.")
		return nil
	}

	drafts := col.Drafts
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].Timestamp > drafts[j].Timestamp
	})

	fmt.Printf("Drafts (%d):\n", len(drafts))
	fmt.Println()
	for _, d := range drafts {
		saved := time.UnixMilli(d.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("  %s  %s  %s\n", d.ID, saved, preview(d.Content))
	}
	return nil
}

// preview returns the first line of content, truncated for list display.
// Truncation counts runes so multibyte scripts are never cut mid-character.
func preview(content string) string {
	const max = 40
	for i, r := range content {
		if r == '\n' {
			content = content[:i]
			break
		}
	}
	if content == "" {
		return "(empty)"
	}
	runes := []rune(content)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return content
}
