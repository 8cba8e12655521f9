package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"px/internal/index"
)

var flagOpenEditor string

var openCmd = &cobra.Command{
	Use:   "open <query>",
	Short: "Open the best-matching project in your editor",
	Long: `Fuzzy-match the query against project names and paths, open the best
match in the configured editor, and record the access so the project
ranks higher next time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&flagOpenEditor, "editor", "",
		"Editor command to use (overrides config and $EDITOR)")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := index.NewSearcher().Search(st.Projects(), query)
	if len(results) == 0 {
		fmt.Printf("No projects found matching %q\n", query)
		return nil
	}

	project := results[0]
	editor := resolveEditor(flagOpenEditor, cfg.Editor)

	fmt.Printf("Opening %s in %s...\n", project.Name, editor)
	printInfo("", project.Path)

	editorCmd := exec.Command(editor, project.Path)
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		printWarn("", fmt.Sprintf("editor %q exited with error: %v", editor, err))
	}

	if err := st.RecordAccess(project.Path); err != nil {
		return fmt.Errorf("cannot record access: %w", err)
	}
	return nil
}

// resolveEditor picks the editor command: --editor flag, then config, then
// $EDITOR, then vi.
func resolveEditor(flag, configured string) string {
	for _, candidate := range []string{flag, configured, os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}
