// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clipmaster/internal/types"
)

// MockSentimentAnalyzer is a mock implementation of types.SentimentAnalyzer
type MockSentimentAnalyzer struct {
	mock.Mock
}

func (m *MockSentimentAnalyzer) PolarityScores(ctx context.Context, text string) (types.Sentiment, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(types.Sentiment), args.Error(1)
}

// MockEmotionClassifier is a mock implementation of types.EmotionClassifier
type MockEmotionClassifier struct {
	mock.Mock
}

func (m *MockEmotionClassifier) Classify(ctx context.Context, text string) (map[string]float64, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// MockLinguisticAnalyzer is a mock implementation of types.LinguisticAnalyzer
type MockLinguisticAnalyzer struct {
	mock.Mock
}

func (m *MockLinguisticAnalyzer) Analyze(ctx context.Context, text string) (types.LinguisticInfo, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(types.LinguisticInfo), args.Error(1)
}

// MockFaceDetector is a mock implementation of types.FaceDetector
type MockFaceDetector struct {
	mock.Mock
}

func (m *MockFaceDetector) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockFaceDetector) Detect(ctx context.Context, frame types.Frame) ([]types.FaceBox, error) {
	args := m.Called(ctx, frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.FaceBox), args.Error(1)
}

// MockFrameSource is a mock implementation of types.FrameSource
type MockFrameSource struct {
	mock.Mock
}

func (m *MockFrameSource) Size() (int, int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

func (m *MockFrameSource) FPS() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func (m *MockFrameSource) Duration() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func (m *MockFrameSource) FrameAt(ctx context.Context, timestampSec float64) (types.Frame, error) {
	args := m.Called(ctx, timestampSec)
	return args.Get(0).(types.Frame), args.Error(1)
}

// MockChatCompleter is a mock implementation of types.ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) ChatCompletion(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}
