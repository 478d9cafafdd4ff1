package main

import (
	"os"

	"go.uber.org/zap"

	"clipmaster/config"
	"clipmaster/internal/deps"
	"clipmaster/internal/server"
	"clipmaster/internal/storage"
	"clipmaster/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	var err error
	if !config.LoadConfig() {
		return
	}

	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid configuration", zap.Error(err))
		return
	}

	storage.InitDB()

	// Mark any stale "running" tasks as "failed" (zombie cleanup)
	if count, err := storage.MarkStaleTasks(); err != nil {
		log.GetLogger().Warn("failed to mark stale tasks", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("marked stale tasks as failed", zap.Int64("count", count))
	}

	if err = deps.CheckDependency(config.Conf.Reframe.FfmpegPath, config.Conf.Reframe.FfprobePath); err != nil {
		// Reframing needs ffmpeg; detection alone does not, so keep serving.
		log.GetLogger().Warn("media dependencies unavailable, reframing disabled", zap.Error(err))
	}

	if err = server.StartBackend(); err != nil {
		log.GetLogger().Error("backend server failed", zap.Error(err))
		os.Exit(1)
	}
}
