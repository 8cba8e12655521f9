package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"px/internal/index"
)

var flagListFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed projects ordered by frecency",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListFilter, "filter", "",
		"Filter projects: has-changes, inactive-30d, inactive-90d")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	projects := applyListFilter(st.SortedProjects(), flagListFilter, time.Now())

	if len(projects) == 0 {
		if flagListFilter != "" {
			fmt.Println("No projects found matching filter")
		} else {
			fmt.Println("No projects indexed yet. Run 'px sync' to scan for projects.")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tBRANCH\tSTATUS")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(p.Name, 30),
			truncate(p.GitStatus.CurrentBranch, 20),
			statusGlyph(p))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d projects\n", len(projects))
	return nil
}

// applyListFilter narrows projects by the --filter value. Unknown filter
// names pass everything through.
func applyListFilter(projects []*index.Project, filter string, now time.Time) []*index.Project {
	if filter == "" {
		return projects
	}

	keep := func(p *index.Project) bool { return true }
	switch filter {
	case "has-changes":
		keep = func(p *index.Project) bool { return p.GitStatus.HasUncommitted }
	case "inactive-30d":
		cutoff := now.AddDate(0, 0, -30).Unix()
		keep = func(p *index.Project) bool {
			return p.LastAccessed == 0 || p.LastAccessed < cutoff
		}
	case "inactive-90d":
		cutoff := now.AddDate(0, 0, -90).Unix()
		keep = func(p *index.Project) bool {
			return p.LastAccessed == 0 || p.LastAccessed < cutoff
		}
	}

	var out []*index.Project
	for _, p := range projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// statusGlyph summarizes a project's git state for the list table.
func statusGlyph(p *index.Project) string {
	switch {
	case p.GitStatus.HasUncommitted:
		return "⚠ changes"
	case p.GitStatus.Ahead > 0:
		return "↑ ahead"
	case p.GitStatus.Behind > 0:
		return "↓ behind"
	default:
		return "✓ clean"
	}
}
