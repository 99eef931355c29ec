package cmd

import (
	"fmt"
	"os"

	"github.com/maemreyo/glean-teleprompter/internal/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a glean config file in the current directory",
	Long:  `Creates a .glean/config.yaml file in the current directory with default settings. The draft store lives next to it under .glean/store.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := ".glean/config.yaml"

	// Refuse to clobber an existing project config.
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}
	if err := config.WriteDefaultConfig(configPath); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	return nil
}
