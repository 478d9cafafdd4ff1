package types

// Clip task status values
const (
	ClipTaskStatusPending uint8 = 0
	ClipTaskStatusRunning uint8 = 1
	ClipTaskStatusDone    uint8 = 2
	ClipTaskStatusFailed  uint8 = 3
)

// ClipTask is one persisted detection run.
type ClipTask struct {
	Id             int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskId         string       `json:"task_id" gorm:"uniqueIndex;size:64"`
	Status         uint8        `json:"status"`
	StatusMsg      string       `json:"status_msg"`
	FailReason     string       `json:"fail_reason"`
	SegmentCount   int          `json:"segment_count"`
	TargetDuration float64      `json:"target_duration"`
	MinDuration    float64      `json:"min_duration"`
	MaxDuration    float64      `json:"max_duration"`
	MaxClips       int          `json:"max_clips"`
	ClipRecords    []ClipRecord `json:"clip_records" gorm:"foreignKey:TaskRef;references:TaskId;constraint:OnDelete:CASCADE"`
	CreateTime     int64        `json:"create_time" gorm:"autoCreateTime"`
	UpdateTime     int64        `json:"update_time" gorm:"autoUpdateTime"`
}

// ClipRecord is one ranked clip belonging to a detection run.
type ClipRecord struct {
	Id          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskRef     string  `json:"task_ref" gorm:"index;size:64"`
	Rank        int     `json:"rank"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	Score       float64 `json:"score"`
	Text        string  `json:"text"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	DetailsJson string  `json:"details_json"` // serialized ScoreDetails
}
