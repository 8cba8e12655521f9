package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"px/internal/config"
	"px/internal/gitstatus"
	"px/internal/index"
)

var rootCmd = &cobra.Command{
	Use:          "px",
	Short:        "px — fast project switching with fuzzy search and frecency",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `px indexes the git repositories under your configured scan directories
and ranks them by how often and how recently you open them, so switching
to a project is one fuzzy query away.`,
}

// checkGitAvailable returns a clear error if git is not found on PATH.
func checkGitAvailable() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is not installed or not on PATH\n" +
			"  px requires git to read repository state.\n" +
			"  Install git from https://git-scm.com and try again.")
	}
	return nil
}

// openStore builds the index store at the default cache location and loads
// the persisted index. Every command goes through this; there is no shared
// global store.
func openStore() (*index.Store, error) {
	path, err := index.DefaultCachePath()
	if err != nil {
		return nil, err
	}
	st := index.NewStore(path, gitstatus.NewCLI())
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("cannot load project index: %w", err)
	}
	return st, nil
}

// loadConfig is a thin wrapper so commands share one error message shape.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
