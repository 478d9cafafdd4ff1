package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"clipmaster/internal/types"
	"clipmaster/log"
)

// viralKeywords are matched against lowercase whitespace-split tokens.
var viralKeywords = []string{
	"amazing", "incredible", "unbelievable", "shocking", "surprising",
	"never", "ever", "best", "worst", "secret",
	"trick", "hack", "revealed", "exclusive", "breaking",
}

// extractFeatures enriches transcript segments with classifier output.
// Segments with empty text are dropped. Classifier failures degrade the
// affected segment to neutral feature values instead of failing the run;
// the segment records why in DegradedReason.
func (s *Service) extractFeatures(ctx context.Context, segments []types.TranscriptSegment, workers int) []types.FeatureSegment {
	kept := lo.Filter(segments, func(seg types.TranscriptSegment, _ int) bool {
		return strings.TrimSpace(seg.Text) != ""
	})
	if len(kept) == 0 {
		return nil
	}

	if workers <= 0 {
		workers = 1
	}

	features := make([]types.FeatureSegment, len(kept))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, seg := range kept {
		group.Go(func() error {
			features[i] = s.extractSegmentFeatures(groupCtx, seg)
			return nil
		})
	}
	// Workers never return errors, degraded results stand in for failures.
	_ = group.Wait()

	return features
}

func (s *Service) extractSegmentFeatures(ctx context.Context, seg types.TranscriptSegment) types.FeatureSegment {
	feature := types.FeatureSegment{
		Start:    seg.Start,
		End:      seg.End,
		Text:     seg.Text,
		Duration: seg.End - seg.Start,
		Emotions: map[string]float64{},
	}
	var degraded []string

	sentiment, err := s.Sentiment.PolarityScores(ctx, seg.Text)
	if err != nil {
		log.GetLogger().Warn("sentiment analysis failed, using neutral scores",
			zap.Float64("start", seg.Start), zap.Error(err))
		sentiment = types.Sentiment{Neutral: 1}
		degraded = append(degraded, "sentiment")
	}
	feature.Sentiment = sentiment

	emotions, err := s.Emotion.Classify(ctx, seg.Text)
	if err != nil {
		log.GetLogger().Warn("emotion classification failed, using empty emotions",
			zap.Float64("start", seg.Start), zap.Error(err))
		degraded = append(degraded, "emotion")
	} else if emotions != nil {
		feature.Emotions = emotions
	}

	info, err := s.Linguistic.Analyze(ctx, seg.Text)
	if err != nil {
		log.GetLogger().Warn("linguistic analysis failed, falling back to whole-text punctuation",
			zap.Float64("start", seg.Start), zap.Error(err))
		info = types.LinguisticInfo{Sentences: []string{seg.Text}}
		degraded = append(degraded, "linguistic")
	}
	feature.IsQuestion = anySentenceEndsWith(info.Sentences, "?")
	feature.IsExclamation = anySentenceEndsWith(info.Sentences, "!")
	feature.NamedEntityCount = info.NamedEntityCount

	feature.ViralKeywordCount = countViralKeywords(seg.Text)
	feature.DegradedReason = strings.Join(degraded, ",")

	return feature
}

func anySentenceEndsWith(sentences []string, suffix string) bool {
	for _, sentence := range sentences {
		if strings.HasSuffix(strings.TrimSpace(sentence), suffix) {
			return true
		}
	}
	return false
}

// countViralKeywords counts exact token matches, so "amazing!" does not
// count while "amazing" does. That mirrors simple whitespace tokenization.
func countViralKeywords(text string) int {
	count := 0
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if lo.Contains(viralKeywords, token) {
			count++
		}
	}
	return count
}
