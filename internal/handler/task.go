package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clipmaster/internal/dto"
	"clipmaster/internal/response"
	"clipmaster/internal/storage"
	"clipmaster/internal/taskrunner"
	"clipmaster/internal/types"
	"clipmaster/log"
	apperrors "clipmaster/pkg/errors"
)

// StartClipTask persists a pending detection run and enqueues it.
func (h *Handler) StartClipTask(c *gin.Context) {
	var req dto.StartClipTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartClipTask ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	if len(req.Segments) == 0 {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeEmptyTranscript, "Transcript has no segments"))
		return
	}

	taskId := uuid.NewString()
	task := &types.ClipTask{
		TaskId:         taskId,
		Status:         types.ClipTaskStatusPending,
		StatusMsg:      "Queued",
		SegmentCount:   len(req.Segments),
		TargetDuration: req.TargetDuration,
		MinDuration:    req.MinDuration,
		MaxDuration:    req.MaxDuration,
		MaxClips:       req.MaxClips,
	}
	if err := storage.SaveTask(task); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Database error", err))
		return
	}

	payload := taskrunner.DetectTaskPayload{
		TaskID:         taskId,
		Segments:       req.Segments,
		TargetDuration: req.TargetDuration,
		MinDuration:    req.MinDuration,
		MaxDuration:    req.MaxDuration,
		MaxClips:       req.MaxClips,
	}

	var err error
	if h.Queue != nil {
		err = h.Queue.EnqueueDetectTask(payload)
	} else {
		err = h.Runner.SubmitDetectTask(payload)
	}
	if err != nil {
		task.Status = types.ClipTaskStatusFailed
		task.StatusMsg = "Failed"
		task.FailReason = err.Error()
		_ = storage.SaveTask(task)
		if errors.Is(err, taskrunner.ErrQueueFull) {
			response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeTaskQueueFull, "Task queue is full", err))
			return
		}
		response.ErrorResponse(c, err)
		return
	}

	response.Success(c, dto.StartClipTaskResData{TaskId: taskId})
}

// GetClipTask reports a run's status and its persisted clips.
func (h *Handler) GetClipTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "taskId is required"))
		return
	}

	task, err := storage.GetTask(taskId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorResponse(c, apperrors.New(apperrors.CodeTaskNotFound, "Task not found"))
			return
		}
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Database error", err))
		return
	}

	response.Success(c, dto.GetClipTaskResData{
		TaskId:     task.TaskId,
		Status:     task.Status,
		StatusMsg:  task.StatusMsg,
		FailReason: task.FailReason,
		Clips:      recordsToClips(task.ClipRecords),
	})
}

// GetTaskHistory lists recent detection runs, newest first.
func (h *Handler) GetTaskHistory(c *gin.Context) {
	tasks, err := storage.GetTaskHistory(200)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Database error", err))
		return
	}
	response.Success(c, dto.TaskHistoryResData{Tasks: tasks})
}

// DeleteTask removes a run and its clips.
func (h *Handler) DeleteTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "taskId is required"))
		return
	}

	if err := storage.DeleteTask(taskId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Database error", err))
		return
	}
	response.Success(c, nil)
}

func recordsToClips(records []types.ClipRecord) []types.ScoredClip {
	clips := make([]types.ScoredClip, 0, len(records))
	for _, record := range records {
		clip := types.ScoredClip{
			StartTime: record.StartTime,
			EndTime:   record.EndTime,
			Duration:  record.Duration,
			Score:     record.Score,
			Text:      record.Text,
			Title:     record.Title,
			Summary:   record.Summary,
		}
		if record.DetailsJson != "" {
			_ = json.Unmarshal([]byte(record.DetailsJson), &clip.Details)
		}
		clips = append(clips, clip)
	}
	return clips
}
