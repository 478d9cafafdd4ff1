package handler

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clipmaster/internal/appdirs"
	"clipmaster/internal/response"
	"clipmaster/internal/storage"
	"clipmaster/log"
	apperrors "clipmaster/pkg/errors"
)

// exportResolver is swappable in tests.
var exportResolver = appdirs.ResolveExportRoot

// ExportTask writes a run's ranked clips as a JSON file under the export
// directory and returns the file path.
func (h *Handler) ExportTask(c *gin.Context) {
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

	exportRoot, err := exportResolver()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to resolve export directory", err))
		return
	}
	if err := os.MkdirAll(exportRoot, 0o755); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create export directory", err))
		return
	}

	payload, err := json.MarshalIndent(recordsToClips(task.ClipRecords), "", "  ")
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to encode clips", err))
		return
	}

	exportPath := filepath.Join(exportRoot, appdirs.ExportFileName(taskId))
	if err := os.WriteFile(exportPath, payload, 0o644); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write export file", err))
		return
	}

	log.GetLogger().Info("task exported", zap.String("task_id", taskId), zap.String("path", exportPath))
	response.Success(c, gin.H{"path": exportPath, "clips": len(task.ClipRecords)})
}
