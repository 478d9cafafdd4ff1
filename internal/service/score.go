package service

import (
	"math"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"clipmaster/internal/types"
)

// Composite score weights. They sum to 1 so the final score stays in a
// comparable range before the duration penalty.
const (
	weightSentiment   = 0.2
	weightEmotion     = 0.3
	weightQuestion    = 0.15
	weightExclamation = 0.15
	weightEntity      = 0.1
	weightKeyword     = 0.1
)

// Duration preference is anchored at the sweet spot for short-form feeds.
// The anchor is fixed and does not follow the requested target duration.
const (
	idealClipSeconds     = 60.0
	durationToleranceSec = 30.0
)

// emotionWeights boost high-arousal emotions over low-arousal ones.
var emotionWeights = map[string]float64{
	"joy":      1.5,
	"surprise": 1.3,
	"anger":    1.2,
	"fear":     1.0,
	"sadness":  1.0,
	"disgust":  1.0,
}

// scoreCandidate computes the composite virality score for one candidate.
// Every sub-score is a duration-weighted average over the candidate's
// segments, so long neutral stretches dilute short emotional spikes.
func scoreCandidate(candidate types.ClipCandidate) (float64, types.ScoreDetails) {
	if candidate.Duration <= 0 {
		return 0, types.ScoreDetails{}
	}

	var sentimentSum, emotionSum, questionSum, exclamationSum, entitySum, keywordSum float64
	for _, seg := range candidate.Segments {
		sentimentSum += math.Abs(seg.Sentiment.Compound) * seg.Duration

		var combo float64
		for label, value := range seg.Emotions {
			weight, ok := emotionWeights[label]
			if !ok {
				continue
			}
			combo += value * weight
		}
		emotionSum += combo * seg.Duration

		if seg.IsQuestion {
			questionSum += seg.Duration
		}
		if seg.IsExclamation {
			exclamationSum += seg.Duration
		}
		entitySum += float64(seg.NamedEntityCount) * seg.Duration
		keywordSum += float64(seg.ViralKeywordCount) * seg.Duration
	}

	details := types.ScoreDetails{
		SentimentScore:   sentimentSum / candidate.Duration,
		EmotionScore:     emotionSum / candidate.Duration,
		QuestionScore:    questionSum / candidate.Duration,
		ExclamationScore: exclamationSum / candidate.Duration,
		EntityScore:      entitySum / candidate.Duration,
		KeywordScore:     keywordSum / candidate.Duration,
	}

	score := weightSentiment*details.SentimentScore +
		weightEmotion*details.EmotionScore +
		weightQuestion*details.QuestionScore +
		weightExclamation*details.ExclamationScore +
		weightEntity*details.EntityScore +
		weightKeyword*details.KeywordScore

	score *= durationPenalty(candidate.Duration)

	return score, details
}

// durationPenalty scales the score down linearly as the clip drifts away
// from the ideal length, reaching zero at the tolerance edge.
func durationPenalty(duration float64) float64 {
	return math.Max(0, 1-math.Abs(duration-idealClipSeconds)/durationToleranceSec)
}

// rankClips scores all candidates, orders them best first, optionally drops
// near-duplicate transcripts and truncates to maxClips.
func rankClips(candidates []types.ClipCandidate, maxClips int, dedupe bool, dedupeSimilarity float64) []types.ScoredClip {
	scored := make([]types.ScoredClip, 0, len(candidates))
	for _, candidate := range candidates {
		score, details := scoreCandidate(candidate)
		scored = append(scored, types.ScoredClip{
			StartTime: candidate.StartTime,
			EndTime:   candidate.EndTime,
			Duration:  candidate.Duration,
			Score:     score,
			Text:      joinSegmentTexts(candidate.Segments),
			Captions:  buildCaptions(candidate),
			Details:   details,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if dedupe {
		scored = dropNearDuplicates(scored, dedupeSimilarity)
	}

	if maxClips > 0 && len(scored) > maxClips {
		scored = scored[:maxClips]
	}
	return scored
}

// dropNearDuplicates keeps the higher-scored clip of any pair whose
// transcripts are closer than the similarity threshold. Input must already
// be sorted best first.
func dropNearDuplicates(clips []types.ScoredClip, similarity float64) []types.ScoredClip {
	kept := make([]types.ScoredClip, 0, len(clips))
	for _, clip := range clips {
		duplicate := false
		for _, existing := range kept {
			if textSimilarity(clip.Text, existing.Text) >= similarity {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, clip)
		}
	}
	return kept
}

// textSimilarity is 1 minus the normalized Levenshtein distance.
func textSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := math.Max(float64(len([]rune(a))), float64(len([]rune(b))))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return 1 - float64(distance)/longest
}

func joinSegmentTexts(segments []types.FeatureSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, strings.TrimSpace(seg.Text))
	}
	return strings.Join(parts, " ")
}

// buildCaptions rebases each segment onto the clip's own timeline so the
// captions can be burned straight onto the exported clip.
func buildCaptions(candidate types.ClipCandidate) []types.Caption {
	captions := make([]types.Caption, 0, len(candidate.Segments))
	for _, seg := range candidate.Segments {
		captions = append(captions, types.Caption{
			Text:      seg.Text,
			StartTime: seg.Start - candidate.StartTime,
			EndTime:   seg.End - candidate.StartTime,
		})
	}
	return captions
}
