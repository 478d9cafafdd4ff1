package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clipmaster/config"
	"clipmaster/internal/response"
	"clipmaster/internal/service"
	"clipmaster/log"
	apperrors "clipmaster/pkg/errors"
)

// GetConfig returns the current configuration.
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, config.Conf)
}

// UpdateConfig replaces the configuration, persists it and rebuilds the
// service so new endpoint settings take effect immediately.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var newConf config.Config
	if err := c.ShouldBindJSON(&newConf); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	oldConf := config.Conf
	config.Conf = newConf
	if err := config.CheckConfig(); err != nil {
		config.Conf = oldConf
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid configuration", err))
		return
	}

	if err := config.SaveConfig(); err != nil {
		config.Conf = oldConf
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to save configuration", err))
		return
	}

	h.Service = service.NewService()
	log.GetLogger().Info("configuration updated", zap.String("host", config.Conf.Server.Host))
	response.Success(c, nil)
}
