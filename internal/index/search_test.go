package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func searchProject(name string, frecency float64) *Project {
	return &Project{
		Path:          "/test/" + name,
		Name:          name,
		GitStatus:     GitStatus{CurrentBranch: "main"},
		FrecencyScore: frecency,
	}
}

func names(projects []*Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func TestSearchEmptyQuerySortsByFrecency(t *testing.T) {
	projects := []*Project{
		searchProject("alpha", 10),
		searchProject("beta", 100),
		searchProject("gamma", 50),
	}

	got := NewSearcher().Search(projects, "   ")
	require.Equal(t, []string{"beta", "gamma", "alpha"}, names(got))
}

func TestSearchExcludesNonMatches(t *testing.T) {
	projects := []*Project{
		searchProject("rust-analyzer", 5),
		searchProject("zzz", 1000), // high frecency, no textual match
	}

	got := NewSearcher().Search(projects, "rust")
	require.Equal(t, []string{"rust-analyzer"}, names(got))
}

func TestSearchFrecencyBreaksFuzzyTies(t *testing.T) {
	// Constant matcher isolates the frecency contribution.
	s := NewSearcherWith(func(query, candidate string) (int, bool) {
		return 100, true
	})

	projects := []*Project{
		searchProject("rust-project", 10),
		searchProject("rust-awesome", 100),
	}

	got := s.Search(projects, "rust")
	require.Equal(t, []string{"rust-awesome", "rust-project"}, names(got))

	// combined = 100*0.7 + frecency*0.3, truncated
	// 70 + 30 = 100 vs 70 + 3 = 73
}

func TestSearchWeightsFavorTextualRelevance(t *testing.T) {
	scores := map[string]int{"close-match": 90, "habit": 50}
	s := NewSearcherWith(func(query, candidate string) (int, bool) {
		sc, ok := scores[candidate]
		return sc, ok
	})

	projects := []*Project{
		{Path: "/p/a", Name: "close-match", FrecencyScore: 0},
		{Path: "/p/b", Name: "habit", FrecencyScore: 80},
	}

	// 90*0.7 = 63 beats 50*0.7 + 80*0.3 = 59.
	got := s.Search(projects, "x")
	require.Equal(t, []string{"close-match", "habit"}, names(got))
}

func TestSearchMatchesNameOrPath(t *testing.T) {
	// Matcher only hits full paths, never bare names.
	s := NewSearcherWith(func(query, candidate string) (int, bool) {
		if candidate == "/srv/tools/deploy" {
			return 42, true
		}
		return 0, false
	})

	projects := []*Project{
		{Path: "/srv/tools/deploy", Name: "deploy"},
		{Path: "/srv/other", Name: "other"},
	}

	got := s.Search(projects, "tools")
	require.Equal(t, []string{"deploy"}, names(got))
}

func TestSearchNonPositiveScoreDropped(t *testing.T) {
	s := NewSearcherWith(func(query, candidate string) (int, bool) {
		return -3, true // matched, but with a non-positive score
	})

	got := s.Search([]*Project{searchProject("alpha", 50)}, "a")
	require.Empty(t, got)
}

func TestExactSearch(t *testing.T) {
	projects := []*Project{
		searchProject("whatsgood-homepage", 50),
		searchProject("rust-filesearch", 80),
		searchProject("RUST-analyzer", 10),
	}

	s := NewSearcher()

	got := s.ExactSearch(projects, "whatsgood")
	require.Equal(t, []string{"whatsgood-homepage"}, names(got))

	// Case-insensitive, ordered by frecency alone.
	got = s.ExactSearch(projects, "Rust")
	require.Equal(t, []string{"rust-filesearch", "RUST-analyzer"}, names(got))
}

func TestFuzzyMatcherEndToEnd(t *testing.T) {
	projects := []*Project{
		searchProject("rust-filesearch", 50),
		searchProject("python-script", 50),
		searchProject("rust-analyzer", 50),
	}

	got := NewSearcher().Search(projects, "rust")
	require.Len(t, got, 2)
	for _, p := range got {
		require.Contains(t, p.Name, "rust")
	}
}
