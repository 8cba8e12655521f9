package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"px/internal/index"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rescan configured directories and rebuild the project index",
	Long: `Scan every directory in scan_dirs for git repositories and rebuild the
project index from scratch. Access history (open counts, last-opened
times) of projects that are rediscovered is preserved; entries for
repositories that no longer exist are dropped.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if err := checkGitAvailable(); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots := cfg.ExpandedScanDirs()
	if len(roots) == 0 {
		printWarn("", "no scan directories configured")
		printInfo("", "run 'px init' to create a config file, then edit scan_dirs")
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	fmt.Printf("Scanning %d directories...\n", len(roots))
	for _, root := range roots {
		printInfo("", root)
	}
	fmt.Println()

	start := time.Now()
	count, err := st.Sync(roots, index.SyncOptions{
		MaxDepth:      cfg.MaxDepth,
		RespectIgnore: cfg.RespectGitignore,
	})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printOK("", fmt.Sprintf("Indexed %d projects in %.2fs", count, time.Since(start).Seconds()))
	return nil
}
