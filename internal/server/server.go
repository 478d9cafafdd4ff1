package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clipmaster/config"
	"clipmaster/internal/router"
	"clipmaster/log"
)

// StartBackend boots the HTTP API and blocks until the listener stops.
func StartBackend() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	hdl := router.SetupRouter(engine)
	defer hdl.Close()

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("server listening", zap.String("addr", addr))
	return engine.Run(addr)
}
