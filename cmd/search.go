package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"px/internal/index"
)

var (
	flagSearchExact bool
	flagSearchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search projects by fuzzy matching on name and path",
	Long: `Rank projects against the query by combining fuzzy text matching with
frecency. With --exact, use case-insensitive substring matching instead
and order purely by frecency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchExact, "exact", false,
		"Substring match instead of fuzzy match")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0,
		"Maximum number of results to show (0 = all)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	searcher := index.NewSearcher()

	var results []*index.Project
	if flagSearchExact {
		results = searcher.ExactSearch(st.Projects(), query)
	} else {
		results = searcher.Search(st.Projects(), query)
	}

	if len(results) == 0 {
		fmt.Printf("No projects found matching %q\n", query)
		return nil
	}
	if flagSearchLimit > 0 && len(results) > flagSearchLimit {
		results = results[:flagSearchLimit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tPATH\tSCORE")
	for _, p := range results {
		fmt.Fprintf(w, "%s\t%s\t%.1f\n",
			truncate(p.Name, 30),
			truncate(p.Path, 50),
			p.FrecencyScore)
	}
	return w.Flush()
}
