package router

import (
	"github.com/gin-gonic/gin"

	"clipmaster/internal/handler"
)

func SetupRouter(r *gin.Engine) *handler.Handler {
	hdl := handler.NewHandler()

	api := r.Group("/api")
	{
		api.POST("/clip/detect", hdl.DetectClips)
		api.POST("/clip/reframe", hdl.ComputeCrop)
		api.POST("/clip/task", hdl.StartClipTask)
		api.GET("/clip/task/:taskId", hdl.GetClipTask)
		api.GET("/clip/task/:taskId/export", hdl.ExportTask)
		api.DELETE("/clip/task/:taskId", hdl.DeleteTask)
		api.GET("/clip/history", hdl.GetTaskHistory)
		api.GET("/clip/progress", hdl.TaskProgress)
		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
	}

	return hdl
}
