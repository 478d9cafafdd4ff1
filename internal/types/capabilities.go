package types

import "context"

// SentimentAnalyzer scores text polarity.
type SentimentAnalyzer interface {
	PolarityScores(ctx context.Context, text string) (Sentiment, error)
}

// EmotionClassifier maps text to emotion-label probabilities.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// LinguisticInfo is the linguistic analyzer output for one text.
type LinguisticInfo struct {
	Sentences        []string `json:"sentences"`
	NamedEntityCount int      `json:"named_entity_count"`
}

// LinguisticAnalyzer splits text into sentences and counts named entities.
type LinguisticAnalyzer interface {
	Analyze(ctx context.Context, text string) (LinguisticInfo, error)
}

// FaceDetector locates faces in a frame. Available reports whether the
// detector capability is configured for this run; when false every sampling
// pass uses the center fallback.
type FaceDetector interface {
	Available() bool
	Detect(ctx context.Context, frame Frame) ([]FaceBox, error)
}

// FrameSource exposes a video's metadata and random access to frames.
type FrameSource interface {
	Size() (width, height int)
	FPS() float64
	Duration() float64
	FrameAt(ctx context.Context, timestampSec float64) (Frame, error)
}

// ChatCompleter is the LLM capability used for optional clip titling.
type ChatCompleter interface {
	ChatCompletion(prompt string) (string, error)
}
