package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"px/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Create ~/.config/px/px.yaml with default scan directories. Edit
scan_dirs afterwards, then run 'px sync' to build the project index.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		printSkip("", fmt.Sprintf("config already exists: %s", path))
		return nil
	}

	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("wrote %s", path))
	printInfo("", "edit scan_dirs, then run 'px sync'")
	return nil
}
