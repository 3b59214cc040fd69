// Package cache recalculates and persists the bite/bait score cache (spec
// §4.9): every cached score is exponential-smoothed against its previous
// value, weighted down as more corroborating catches accumulate, so the UI
// and API never read a raw score off the live formula.
package cache

import "math"

// SmoothingWeight returns how much a freshly computed raw score should
// move the cached score, decreasing as totalCatches grows: under 10
// catches weighs the new score 0.4-0.5, under 50 weighs it 0.2-0.3,
// otherwise 0.1-0.15.
func SmoothingWeight(totalCatches int) float64 {
	switch {
	case totalCatches < 10:
		return 0.4 + float64(totalCatches)/100.0
	case totalCatches < 50:
		return 0.2 + float64(50-totalCatches)/400.0
	default:
		capped := totalCatches
		if capped > 100 {
			capped = 100
		}
		return 0.1 + float64(100-capped)/1000.0
	}
}

// Smooth applies exponential smoothing: newScore = oldScore*(1-w) +
// rawScore*w, clamped to [0, 100]. hasPrevious false (no cached score yet)
// skips smoothing entirely and returns rawScore as-is.
func Smooth(oldScore, rawScore float64, hasPrevious bool, totalCatches int) float64 {
	if !hasPrevious {
		return clamp(rawScore)
	}
	w := SmoothingWeight(totalCatches)
	return clamp(oldScore*(1-w) + rawScore*w)
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
