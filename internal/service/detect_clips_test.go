package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clipmaster/config"
	"clipmaster/internal/dto"
	"clipmaster/internal/mocks"
	"clipmaster/internal/types"
	apperrors "clipmaster/pkg/errors"
)

func setDetectDefaults() {
	config.Conf.Detect = config.Detect{
		TargetDuration: 60,
		MinDuration:    30,
		MaxDuration:    90,
		MaxClips:       5,
		FeatureWorkers: 2,
	}
}

func talkSegments(count int, segDuration float64, text string) []types.TranscriptSegment {
	segments := make([]types.TranscriptSegment, count)
	for i := range segments {
		segments[i] = types.TranscriptSegment{
			Start: float64(i) * segDuration,
			End:   float64(i+1) * segDuration,
			Text:  text,
		}
	}
	return segments
}

func TestDetectClips_InvalidDurationRange(t *testing.T) {
	setDetectDefaults()
	svc, _, _, _ := neutralMocksService()

	_, err := svc.DetectClips(context.Background(), dto.DetectClipsReq{
		Segments:       talkSegments(10, 10, "hello"),
		MinDuration:    80,
		TargetDuration: 60,
		MaxDuration:    90,
	})

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidDurationRange))
}

func TestDetectClips_EmptyTranscriptYieldsNoClips(t *testing.T) {
	setDetectDefaults()
	svc, _, _, _ := neutralMocksService()

	result, err := svc.DetectClips(context.Background(), dto.DetectClipsReq{})

	assert.NoError(t, err)
	assert.NotNil(t, result.Clips)
	assert.Empty(t, result.Clips)
	assert.Equal(t, 0, result.CandidateCount)
}

func TestDetectClips_WhitespaceOnlyTranscriptYieldsNoClips(t *testing.T) {
	setDetectDefaults()
	svc, _, _, _ := neutralMocksService()

	result, err := svc.DetectClips(context.Background(), dto.DetectClipsReq{
		Segments: []types.TranscriptSegment{
			{Start: 0, End: 5, Text: "  "},
			{Start: 5, End: 10, Text: "\t"},
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, result.Clips)
	assert.Empty(t, result.Clips)
	assert.Equal(t, 0, result.CandidateCount)
}

func TestDetectClips_RanksEmotionalWindowFirst(t *testing.T) {
	setDetectDefaults()
	svc, sentiment, emotion, linguistic := neutralMocksService()

	sentiment.On("PolarityScores", mock.Anything, "flat talk").Return(types.Sentiment{Neutral: 1}, nil)
	sentiment.On("PolarityScores", mock.Anything, "this is amazing!").Return(types.Sentiment{Positive: 0.9, Compound: 0.95}, nil)
	emotion.On("Classify", mock.Anything, "flat talk").Return(map[string]float64{}, nil)
	emotion.On("Classify", mock.Anything, "this is amazing!").Return(map[string]float64{"joy": 0.9}, nil)
	linguistic.On("Analyze", mock.Anything, "flat talk").Return(types.LinguisticInfo{Sentences: []string{"flat talk"}}, nil)
	linguistic.On("Analyze", mock.Anything, "this is amazing!").Return(types.LinguisticInfo{Sentences: []string{"this is amazing!"}}, nil)

	// Twelve 10s segments, the back half emotional.
	segments := talkSegments(12, 10, "flat talk")
	for i := 6; i < 12; i++ {
		segments[i].Text = "this is amazing!"
	}

	result, err := svc.DetectClips(context.Background(), dto.DetectClipsReq{Segments: segments})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Clips)
	assert.LessOrEqual(t, len(result.Clips), 5)
	// The winning clip must overlap the emotional back half.
	assert.Greater(t, result.Clips[0].EndTime, 60.0)
	assert.Greater(t, result.Clips[0].Score, 0.0)
	assert.Equal(t, 0, result.DegradedSegments)
}

func TestDetectClips_Deterministic(t *testing.T) {
	setDetectDefaults()
	svc, sentiment, emotion, linguistic := neutralMocksService()
	sentiment.On("PolarityScores", mock.Anything, mock.Anything).Return(types.Sentiment{Compound: 0.4}, nil)
	emotion.On("Classify", mock.Anything, mock.Anything).Return(map[string]float64{"joy": 0.3}, nil)
	linguistic.On("Analyze", mock.Anything, mock.Anything).Return(types.LinguisticInfo{Sentences: []string{"hey"}}, nil)

	req := dto.DetectClipsReq{Segments: talkSegments(15, 8, "hey")}

	first, err := svc.DetectClips(context.Background(), req)
	assert.NoError(t, err)
	second, err := svc.DetectClips(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDetectClips_CountsDegradedSegments(t *testing.T) {
	setDetectDefaults()
	svc, sentiment, emotion, linguistic := neutralMocksService()
	sentiment.On("PolarityScores", mock.Anything, mock.Anything).Return(types.Sentiment{Neutral: 1}, nil)
	emotion.On("Classify", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	linguistic.On("Analyze", mock.Anything, mock.Anything).Return(types.LinguisticInfo{Sentences: []string{"hey"}}, nil)

	result, err := svc.DetectClips(context.Background(), dto.DetectClipsReq{Segments: talkSegments(6, 10, "hey")})

	assert.NoError(t, err)
	assert.Equal(t, 6, result.DegradedSegments)
}

func TestDetectClips_TitlesClipsWhenConfigured(t *testing.T) {
	setDetectDefaults()
	config.Conf.Detect.TitleClips = true
	defer func() { config.Conf.Detect.TitleClips = false }()

	svc, sentiment, emotion, linguistic := neutralMocksService()
	completer := new(mocks.MockChatCompleter)
	svc.ChatCompleter = completer

	sentiment.On("PolarityScores", mock.Anything, mock.Anything).Return(types.Sentiment{Compound: 0.5}, nil)
	emotion.On("Classify", mock.Anything, mock.Anything).Return(map[string]float64{}, nil)
	linguistic.On("Analyze", mock.Anything, mock.Anything).Return(types.LinguisticInfo{Sentences: []string{"hey"}}, nil)
	completer.On("ChatCompletion", mock.Anything).Return(`{"title": "Big Reveal", "summary": "A strong moment."}`, nil)

	result, err := svc.DetectClips(context.Background(), dto.DetectClipsReq{Segments: talkSegments(8, 10, "hey")})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Clips)
	assert.Equal(t, "Big Reveal", result.Clips[0].Title)
	assert.Equal(t, "A strong moment.", result.Clips[0].Summary)
}

func TestResolveDetectParams_Defaults(t *testing.T) {
	setDetectDefaults()

	params := resolveDetectParams(0, 0, 0, 0)

	assert.Equal(t, 60.0, params.TargetDuration)
	assert.Equal(t, 30.0, params.MinDuration)
	assert.Equal(t, 90.0, params.MaxDuration)
	assert.Equal(t, 5, params.MaxClips)
}

func TestResolveDetectParams_Overrides(t *testing.T) {
	setDetectDefaults()

	params := resolveDetectParams(45, 20, 70, 3)

	assert.Equal(t, 45.0, params.TargetDuration)
	assert.Equal(t, 20.0, params.MinDuration)
	assert.Equal(t, 70.0, params.MaxDuration)
	assert.Equal(t, 3, params.MaxClips)
}
