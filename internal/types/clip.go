package types

// TranscriptSegment is one transcribed utterance span with timestamps in
// seconds. Produced by the external transcriber; never mutated here.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Sentiment is the four-valued polarity result of the sentiment classifier.
// Negative/Neutral/Positive are in [0,1], Compound in [-1,1].
type Sentiment struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// FeatureSegment is a TranscriptSegment enriched with classifier output.
// Emotions may be empty when the emotion classifier failed for the segment;
// DegradedReason records why features fell back to neutral values.
type FeatureSegment struct {
	Start             float64            `json:"start"`
	End               float64            `json:"end"`
	Text              string             `json:"text"`
	Duration          float64            `json:"duration"`
	Sentiment         Sentiment          `json:"sentiment"`
	Emotions          map[string]float64 `json:"emotions"`
	IsQuestion        bool               `json:"is_question"`
	IsExclamation     bool               `json:"is_exclamation"`
	NamedEntityCount  int                `json:"named_entities"`
	ViralKeywordCount int                `json:"viral_keyword_count"`
	DegradedReason    string             `json:"degraded_reason,omitempty"`
}

// ClipCandidate is a contiguous run of feature segments considered as a
// potential output clip. Duration is the accumulated segment duration.
type ClipCandidate struct {
	StartTime float64
	EndTime   float64
	Duration  float64
	Segments  []FeatureSegment
}

// ScoreDetails keeps the per-category sub-scores for explainability.
type ScoreDetails struct {
	SentimentScore   float64 `json:"sentiment_score"`
	EmotionScore     float64 `json:"emotion_score"`
	QuestionScore    float64 `json:"question_score"`
	ExclamationScore float64 `json:"exclamation_score"`
	EntityScore      float64 `json:"entity_score"`
	KeywordScore     float64 `json:"keyword_score"`
}

// Caption is a clip-relative caption window derived from the transcript.
type Caption struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// ScoredClip is a candidate with its final composite score. Scores are
// comparable only within one detection run.
type ScoredClip struct {
	StartTime float64      `json:"start_time"`
	EndTime   float64      `json:"end_time"`
	Duration  float64      `json:"duration"`
	Score     float64      `json:"score"`
	Text      string       `json:"text"`
	Title     string       `json:"title,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Captions  []Caption    `json:"captions,omitempty"`
	Details   ScoreDetails `json:"details"`
}
