package dto

import "clipmaster/internal/types"

// DetectClipsReq asks for ranked viral-worthy clips from transcript segments.
// Zero-valued knobs fall back to the [detect] config defaults.
type DetectClipsReq struct {
	Segments       []types.TranscriptSegment `json:"segments"`
	TargetDuration float64                   `json:"target_duration"`
	MinDuration    float64                   `json:"min_duration"`
	MaxDuration    float64                   `json:"max_duration"`
	MaxClips       int                       `json:"max_clips"`
}

type DetectClipsResData struct {
	Clips            []types.ScoredClip `json:"clips"`
	CandidateCount   int                `json:"candidate_count"`
	DegradedSegments int                `json:"degraded_segments"`
}

type DetectClipsRes struct {
	Error int32               `json:"error"`
	Msg   string              `json:"msg"`
	Data  *DetectClipsResData `json:"data"`
}

// ComputeCropReq asks for a face-aware crop window for a local clip file.
type ComputeCropReq struct {
	VideoPath    string `json:"video_path"`
	AspectRatio  string `json:"aspect_ratio"`
	FaceTracking *bool  `json:"face_tracking"` // nil uses the config default
	SampleRate   int    `json:"sample_rate"`   // 0 uses the config default
}

type ComputeCropResData struct {
	Crop         types.CropWindow `json:"crop"`
	FrameWidth   int              `json:"frame_width"`
	FrameHeight  int              `json:"frame_height"`
	FaceSamples  int              `json:"face_samples"`
	UsedFallback bool             `json:"used_fallback"`
}

type ComputeCropRes struct {
	Error int32               `json:"error"`
	Msg   string              `json:"msg"`
	Data  *ComputeCropResData `json:"data"`
}

// StartClipTaskReq enqueues an asynchronous detection run.
type StartClipTaskReq struct {
	Segments       []types.TranscriptSegment `json:"segments"`
	TargetDuration float64                   `json:"target_duration"`
	MinDuration    float64                   `json:"min_duration"`
	MaxDuration    float64                   `json:"max_duration"`
	MaxClips       int                       `json:"max_clips"`
}

type StartClipTaskResData struct {
	TaskId string `json:"task_id"`
}

type StartClipTaskRes struct {
	Error int32                 `json:"error"`
	Msg   string                `json:"msg"`
	Data  *StartClipTaskResData `json:"data"`
}

// GetClipTaskResData reports a run's status and its persisted clips.
type GetClipTaskResData struct {
	TaskId     string             `json:"task_id"`
	Status     uint8              `json:"status"`
	StatusMsg  string             `json:"status_msg"`
	FailReason string             `json:"fail_reason,omitempty"`
	Clips      []types.ScoredClip `json:"clips"`
}

type GetClipTaskRes struct {
	Error int32               `json:"error"`
	Msg   string              `json:"msg"`
	Data  *GetClipTaskResData `json:"data"`
}

type TaskHistoryResData struct {
	Tasks []types.ClipTask `json:"tasks"`
}

type TaskHistoryRes struct {
	Error int32               `json:"error"`
	Msg   string              `json:"msg"`
	Data  *TaskHistoryResData `json:"data"`
}

// TaskProgressEvent is pushed over the progress WebSocket.
type TaskProgressEvent struct {
	TaskId    string `json:"task_id"`
	Status    uint8  `json:"status"`
	StatusMsg string `json:"status_msg"`
}
