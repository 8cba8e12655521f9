package index

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

// MatchFunc scores how well a query approximately matches a candidate
// string. ok is false when there is no match at all; a returned score is
// higher for better matches.
type MatchFunc func(query, candidate string) (score int, ok bool)

// fuzzyMatch is the default MatchFunc, backed by sahilm/fuzzy.
func fuzzyMatch(query, candidate string) (int, bool) {
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// Searcher ranks projects against a query by combining fuzzy text matching
// with frecency.
type Searcher struct {
	match MatchFunc
}

// NewSearcher returns a Searcher using the default fuzzy matcher.
func NewSearcher() *Searcher {
	return &Searcher{match: fuzzyMatch}
}

// NewSearcherWith returns a Searcher using a custom matcher.
func NewSearcherWith(match MatchFunc) *Searcher {
	return &Searcher{match: match}
}

// Search returns projects ranked against query, best match first. An empty
// or all-whitespace query returns every project ordered by frecency alone.
//
// Otherwise each project is matched against both its name and its full path
// and the better of the two scores counts, so an exact short-name hit is not
// penalized by a weaker path-level hit. Projects matching on neither field
// are dropped entirely, not ranked at zero. Survivors sort descending by
// int(fuzzy*0.7 + frecency*0.3): the weighting favors textual relevance over
// habit while letting frequently-opened projects win close fuzzy ties.
func (s *Searcher) Search(projects []*Project, query string) []*Project {
	if strings.TrimSpace(query) == "" {
		out := append([]*Project(nil), projects...)
		sortByFrecency(out)
		return out
	}

	type ranked struct {
		project *Project
		score   int64
	}
	var matches []ranked

	for _, p := range projects {
		nameScore, nameOK := s.match(query, p.Name)
		pathScore, pathOK := s.match(query, p.Path)

		best := 0
		if nameOK && nameScore > best {
			best = nameScore
		}
		if pathOK && pathScore > best {
			best = pathScore
		}
		if best <= 0 {
			continue
		}

		combined := int64(float64(best)*0.7 + p.FrecencyScore*0.3)
		matches = append(matches, ranked{project: p, score: combined})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].project.Path < matches[j].project.Path
	})

	out := make([]*Project, len(matches))
	for i, m := range matches {
		out[i] = m.project
	}
	return out
}

var foldCaser = cases.Fold()

// ExactSearch returns projects whose name or path contains query,
// case-insensitively, ordered by frecency alone. It is the deterministic,
// non-fuzzy narrowing mode.
func (s *Searcher) ExactSearch(projects []*Project, query string) []*Project {
	q := foldCaser.String(query)

	var out []*Project
	for _, p := range projects {
		if strings.Contains(foldCaser.String(p.Name), q) ||
			strings.Contains(foldCaser.String(p.Path), q) {
			out = append(out, p)
		}
	}
	sortByFrecency(out)
	return out
}
