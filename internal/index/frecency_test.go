package index

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScoreNeverAccessed(t *testing.T) {
	require.Equal(t, 0.0, Score(0, time.Time{}))
}

func TestScoreFrequencyOnly(t *testing.T) {
	for _, count := range []int{0, 1, 5, 100} {
		want := math.Log(float64(count)+1) * 10.0
		require.InDelta(t, want, Score(count, time.Time{}), 0.001, "count=%d", count)
	}
}

func TestRecencyBucketBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	cases := []struct {
		ageDays int
		weight  float64
	}{
		{0, 100},
		{4, 100},
		{5, 70},
		{14, 70},
		{15, 50},
		{31, 50},
		{32, 30},
		{90, 30},
		{91, 10},
		{400, 10},
	}
	for _, tc := range cases {
		last := now.Add(-time.Duration(tc.ageDays) * day)
		// Frequency term is 0 at count 0, so the score is the recency weight.
		require.Equal(t, tc.weight, ScoreAt(0, last, now), "age=%dd", tc.ageDays)
	}
}

func TestScoreClockSkew(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	// A last access in the future counts as age 0.
	require.Equal(t, 100.0, ScoreAt(0, future, now))
}

func TestScoreMonotonicInRecency(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	for count := 0; count <= 20; count += 5 {
		prev := math.Inf(1)
		for _, ageDays := range []int{0, 5, 15, 32, 91} {
			got := ScoreAt(count, now.Add(-time.Duration(ageDays)*day), now)
			require.LessOrEqual(t, got, prev, "count=%d age=%dd", count, ageDays)
			prev = got
		}
	}
}

func TestScoreCombined(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-7 * 24 * time.Hour)

	want := math.Log(4)*10.0 + 70.0
	require.InDelta(t, want, ScoreAt(3, last, now), 0.001)
}
