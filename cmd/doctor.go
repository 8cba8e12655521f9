package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"px/internal/config"
	"px/internal/index"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that px's dependencies and files are in a usable state.
Run this command when something seems wrong, or before filing a bug report.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	printSection("px doctor")

	// git on PATH
	if err := checkGitAvailable(); err != nil {
		printErr("git", "not found on PATH")
	} else {
		printOK("git", "found on PATH")
	}

	// config file
	cfgPath, err := config.Path()
	if err != nil {
		printErr("config", err.Error())
	} else if _, statErr := os.Stat(cfgPath); statErr != nil {
		printSkip("config", fmt.Sprintf("%s not found (defaults in effect; run 'px init')", cfgPath))
	} else {
		printOK("config", cfgPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		printErr("config", err.Error())
		return nil
	}

	// scan roots
	for _, root := range cfg.ExpandedScanDirs() {
		if info, err := os.Stat(root); err != nil {
			printWarn("scan", fmt.Sprintf("%s does not exist", root))
		} else if !info.IsDir() {
			printWarn("scan", fmt.Sprintf("%s is not a directory", root))
		} else {
			printOK("scan", root)
		}
	}

	// index cache
	cachePath, err := index.DefaultCachePath()
	if err != nil {
		printErr("index", err.Error())
		return nil
	}
	if _, err := os.Stat(cachePath); err != nil {
		printSkip("index", fmt.Sprintf("%s not found (run 'px sync')", cachePath))
		return nil
	}

	st, err := openStore()
	if err != nil {
		var fe *index.FormatError
		if errors.As(err, &fe) {
			printErr("index", fmt.Sprintf("corrupt index file: %s", fe.Path))
		} else {
			printErr("index", err.Error())
		}
		return nil
	}
	printOK("index", fmt.Sprintf("%d projects, last sync %s",
		len(st.Projects()), st.LastSync().Local().Format("2006-01-02 15:04")))
	return nil
}
