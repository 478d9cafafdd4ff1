package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"clipmaster/config"
	"clipmaster/internal/dto"
	"clipmaster/internal/types"
	"clipmaster/log"
	"clipmaster/pkg/errors"
)

// DetectClips runs the full detection pipeline on the request's transcript:
// feature extraction, window generation, scoring and ranking. Zero-valued
// request knobs fall back to the [detect] config defaults. A transcript with
// no segments or no usable text yields an empty clip list, not an error.
func (s *Service) DetectClips(ctx context.Context, req dto.DetectClipsReq) (*dto.DetectClipsResData, error) {
	params := resolveDetectParams(req.TargetDuration, req.MinDuration, req.MaxDuration, req.MaxClips)
	if err := params.validate(); err != nil {
		return nil, err
	}

	if len(req.Segments) == 0 {
		log.GetLogger().Warn("clip detection skipped, transcript has no segments")
		return emptyDetectResult(), nil
	}

	log.GetLogger().Info("clip detection started",
		zap.Int("segments", len(req.Segments)),
		zap.Float64("target_duration", params.TargetDuration),
		zap.Float64("min_duration", params.MinDuration),
		zap.Float64("max_duration", params.MaxDuration),
		zap.Int("max_clips", params.MaxClips))

	features := s.extractFeatures(ctx, req.Segments, config.Conf.Detect.FeatureWorkers)
	if len(features) == 0 {
		log.GetLogger().Warn("clip detection skipped, transcript has no usable text",
			zap.Int("segments", len(req.Segments)))
		return emptyDetectResult(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeDetectionFailed, "Clip detection canceled", err)
	}

	candidates := generateCandidates(features, params.TargetDuration, params.MinDuration, params.MaxDuration)
	clips := rankClips(candidates, params.MaxClips, config.Conf.Detect.DedupeClips, config.Conf.Detect.DedupeSimilarity)

	if config.Conf.Detect.TitleClips && s.ChatCompleter != nil {
		s.titleClips(clips)
	}

	degraded := countDegraded(features)
	log.GetLogger().Info("clip detection finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("clips", len(clips)),
		zap.Int("degraded_segments", degraded))

	return &dto.DetectClipsResData{
		Clips:            clips,
		CandidateCount:   len(candidates),
		DegradedSegments: degraded,
	}, nil
}

// emptyDetectResult is the successful no-results outcome. An empty or
// unusable transcript is not an error; the caller gets zero clips.
func emptyDetectResult() *dto.DetectClipsResData {
	return &dto.DetectClipsResData{Clips: []types.ScoredClip{}}
}

type detectParams struct {
	TargetDuration float64
	MinDuration    float64
	MaxDuration    float64
	MaxClips       int
}

func resolveDetectParams(target, min, max float64, maxClips int) detectParams {
	defaults := config.Conf.Detect
	params := detectParams{
		TargetDuration: target,
		MinDuration:    min,
		MaxDuration:    max,
		MaxClips:       maxClips,
	}
	if params.TargetDuration <= 0 {
		params.TargetDuration = defaults.TargetDuration
	}
	if params.MinDuration <= 0 {
		params.MinDuration = defaults.MinDuration
	}
	if params.MaxDuration <= 0 {
		params.MaxDuration = defaults.MaxDuration
	}
	if params.MaxClips <= 0 {
		params.MaxClips = defaults.MaxClips
	}
	return params
}

func (p detectParams) validate() error {
	if p.MinDuration <= 0 {
		return errors.WrapWithDetail(errors.CodeInvalidDurationRange, "Invalid clip duration range",
			fmt.Sprintf("min_duration must be positive, got %v", p.MinDuration), nil)
	}
	if p.MinDuration > p.TargetDuration || p.TargetDuration > p.MaxDuration {
		return errors.WrapWithDetail(errors.CodeInvalidDurationRange, "Invalid clip duration range",
			fmt.Sprintf("need min <= target <= max, got min=%v target=%v max=%v",
				p.MinDuration, p.TargetDuration, p.MaxDuration), nil)
	}
	return nil
}

func countDegraded(features []types.FeatureSegment) int {
	count := 0
	for _, f := range features {
		if f.DegradedReason != "" {
			count++
		}
	}
	return count
}
