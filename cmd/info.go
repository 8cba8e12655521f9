package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"px/internal/index"
)

var infoCmd = &cobra.Command{
	Use:   "info <query>",
	Short: "Show details of the best-matching project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
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

	p := results[0]
	printSection(p.Name)

	fmt.Printf("Path:     %s\n", p.Path)
	fmt.Printf("Branch:   %s\n", p.GitStatus.CurrentBranch)
	if p.GitStatus.HasUncommitted {
		fmt.Println("Status:   ⚠ uncommitted changes")
	} else {
		fmt.Println("Status:   ✓ clean")
	}
	if p.GitStatus.Ahead > 0 || p.GitStatus.Behind > 0 {
		fmt.Printf("Sync:     ↑ %d ahead, ↓ %d behind\n", p.GitStatus.Ahead, p.GitStatus.Behind)
	}

	if c := p.GitStatus.LastCommit; c != nil {
		fmt.Println()
		fmt.Println("Last commit:")
		fmt.Printf("  %s - %s\n", c.Hash, c.Message)
		fmt.Printf("  by %s at %s\n", c.Author, formatEpoch(c.Timestamp))
	}

	if p.ReadmeExcerpt != "" {
		fmt.Println()
		fmt.Println("README:")
		fmt.Printf("  %s\n", p.ReadmeExcerpt)
	}

	if p.AccessCount > 0 {
		fmt.Println()
		fmt.Println("Access stats:")
		fmt.Printf("  Count:  %d\n", p.AccessCount)
		if p.LastAccessed != 0 {
			fmt.Printf("  Last:   %s\n", formatEpoch(p.LastAccessed))
		}
		fmt.Printf("  Score:  %.1f\n", p.FrecencyScore)
	}

	fmt.Println()
	return nil
}

func formatEpoch(secs int64) string {
	return time.Unix(secs, 0).Local().Format("2006-01-02 15:04")
}
