package cmd

import (
	"testing"
	"time"

	"px/internal/index"
)

func listProject(name string, lastAccessed int64, uncommitted bool) *index.Project {
	return &index.Project{
		Path:         "/p/" + name,
		Name:         name,
		LastAccessed: lastAccessed,
		GitStatus:    index.GitStatus{CurrentBranch: "main", HasUncommitted: uncommitted},
	}
}

func TestApplyListFilter(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -5).Unix()
	stale := now.AddDate(0, 0, -60).Unix()
	ancient := now.AddDate(0, 0, -120).Unix()

	projects := []*index.Project{
		listProject("dirty", recent, true),
		listProject("fresh", recent, false),
		listProject("stale", stale, false),
		listProject("ancient", ancient, false),
		listProject("never", 0, false),
	}

	cases := []struct {
		filter string
		want   []string
	}{
		{"", []string{"dirty", "fresh", "stale", "ancient", "never"}},
		{"has-changes", []string{"dirty"}},
		{"inactive-30d", []string{"stale", "ancient", "never"}},
		{"inactive-90d", []string{"ancient", "never"}},
		{"bogus", []string{"dirty", "fresh", "stale", "ancient", "never"}},
	}

	for _, tc := range cases {
		got := applyListFilter(projects, tc.filter, now)
		if len(got) != len(tc.want) {
			t.Errorf("filter %q: got %d projects, want %d", tc.filter, len(got), len(tc.want))
			continue
		}
		for i, p := range got {
			if p.Name != tc.want[i] {
				t.Errorf("filter %q: got[%d] = %q, want %q", tc.filter, i, p.Name, tc.want[i])
			}
		}
	}
}

func TestStatusGlyph(t *testing.T) {
	cases := []struct {
		status index.GitStatus
		want   string
	}{
		{index.GitStatus{HasUncommitted: true}, "⚠ changes"},
		{index.GitStatus{Ahead: 2}, "↑ ahead"},
		{index.GitStatus{Behind: 1}, "↓ behind"},
		{index.GitStatus{}, "✓ clean"},
	}
	for _, tc := range cases {
		p := &index.Project{GitStatus: tc.status}
		if got := statusGlyph(p); got != tc.want {
			t.Errorf("statusGlyph(%+v) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 30); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a-very-long-project-name", 10); got != "a-very-..." {
		t.Errorf("got %q", got)
	}
}
