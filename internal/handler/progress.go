package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"clipmaster/internal/dto"
	"clipmaster/internal/storage"
	"clipmaster/internal/types"
	"clipmaster/log"
)

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server binds to localhost; cross-origin checks are not useful there.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const progressPollInterval = time.Second

// TaskProgress streams status updates for one task over a WebSocket until
// the task reaches a terminal state or the client disconnects.
func (h *Handler) TaskProgress(c *gin.Context) {
	taskId := c.Query("taskId")
	if taskId == "" {
		c.JSON(400, gin.H{"error": "taskId is required"})
		return
	}

	conn, err := progressUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("TaskProgress upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	var lastStatus uint8 = 255
	var lastMsg string
	for {
		task, err := storage.GetTask(taskId)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": "task not found", "task_id": taskId})
			return
		}

		if task.Status != lastStatus || task.StatusMsg != lastMsg {
			event := dto.TaskProgressEvent{
				TaskId:    task.TaskId,
				Status:    task.Status,
				StatusMsg: task.StatusMsg,
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
			lastStatus = task.Status
			lastMsg = task.StatusMsg
		}

		if task.Status == types.ClipTaskStatusDone || task.Status == types.ClipTaskStatusFailed {
			return
		}

		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
