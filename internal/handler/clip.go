package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clipmaster/internal/dto"
	"clipmaster/internal/response"
	"clipmaster/log"
	apperrors "clipmaster/pkg/errors"
)

// DetectClips runs clip detection synchronously and returns the ranked clips.
func (h *Handler) DetectClips(c *gin.Context) {
	var req dto.DetectClipsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("DetectClips ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("DetectClips received request", zap.Int("segments", len(req.Segments)))

	data, err := h.Service.DetectClips(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

// ComputeCrop returns the face-aware crop window for a local clip file.
func (h *Handler) ComputeCrop(c *gin.Context) {
	var req dto.ComputeCropReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("ComputeCrop ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("ComputeCrop received request",
		zap.String("video_path", req.VideoPath),
		zap.String("aspect_ratio", req.AspectRatio))

	data, err := h.Service.ComputeCrop(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}
