package index

import (
	"math"
	"time"
)

// Score combines access frequency and recency into a single ranking value.
//
// The frequency term is ln(accessCount+1)*10, so a never-opened project
// contributes 0 and growth is sub-linear. The recency term is a coarse step
// function over the age of the last access rather than an exponential decay,
// which keeps ranking stable and easy to reason about. A zero lastAccessed
// means the project was never opened.
func Score(accessCount int, lastAccessed time.Time) float64 {
	return ScoreAt(accessCount, lastAccessed, time.Now())
}

// ScoreAt is Score evaluated at an explicit current time.
func ScoreAt(accessCount int, lastAccessed time.Time, now time.Time) float64 {
	frequency := math.Log(float64(accessCount)+1) * 10.0

	recency := 0.0
	if !lastAccessed.IsZero() {
		age := now.Sub(lastAccessed)
		recency = recencyWeight(age)
	}

	return frequency + recency
}

// recencyWeight maps an access age onto frecency buckets:
// 0-4 days 100, 5-14 days 70, 15-31 days 50, 32-90 days 30, 91+ days 10.
// Negative ages (clock skew) count as 0 days.
func recencyWeight(age time.Duration) float64 {
	days := int64(age.Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days <= 4:
		return 100.0
	case days <= 14:
		return 70.0
	case days <= 31:
		return 50.0
	case days <= 90:
		return 30.0
	default:
		return 10.0
	}
}
