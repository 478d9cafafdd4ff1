package service

import (
	"math"

	"clipmaster/internal/types"
)

// targetStopBandSeconds stops extending a window once its duration lands
// within this distance of the target, keeping the candidate set small.
const targetStopBandSeconds = 5

// generateCandidates slides a growing window over the feature segments and
// keeps every contiguous run whose accumulated duration fits the bounds.
// A window stops growing early once it is close enough to the target, and
// always stops once it would exceed the maximum.
func generateCandidates(segments []types.FeatureSegment, targetDuration, minDuration, maxDuration float64) []types.ClipCandidate {
	var candidates []types.ClipCandidate

	for startIdx := range segments {
		currentDuration := 0.0
		endIdx := startIdx

		for endIdx < len(segments) && currentDuration < maxDuration {
			currentDuration += segments[endIdx].Duration

			if currentDuration >= minDuration && currentDuration <= maxDuration {
				window := segments[startIdx : endIdx+1]
				candidates = append(candidates, types.ClipCandidate{
					StartTime: window[0].Start,
					EndTime:   window[len(window)-1].End,
					Duration:  currentDuration,
					Segments:  window,
				})

				if math.Abs(currentDuration-targetDuration) < targetStopBandSeconds {
					break
				}
			}

			endIdx++
		}
	}

	return candidates
}
