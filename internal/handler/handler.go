package handler

import (
	"clipmaster/config"
	"clipmaster/internal/queue"
	"clipmaster/internal/service"
	"clipmaster/internal/taskrunner"
	"clipmaster/log"

	"go.uber.org/zap"
)

type Handler struct {
	Service *service.Service
	Runner  *taskrunner.Runner
	Queue   *queue.Queue
}

// NewHandler wires the service with either the Redis-backed queue or the
// in-process runner, depending on configuration.
func NewHandler() *Handler {
	svc := service.NewService()

	h := &Handler{Service: svc}
	if config.Conf.Queue.Enabled {
		h.Queue = queue.NewQueue(queue.QueueConfig{
			RedisAddr:     config.Conf.Queue.RedisAddr,
			RedisPassword: config.Conf.Queue.RedisPassword,
			RedisDB:       config.Conf.Queue.RedisDB,
			Concurrency:   config.Conf.Queue.Concurrency,
		})
		go func() {
			if err := queue.StartWorker(h.Queue, svc); err != nil {
				log.GetLogger().Error("queue worker exited", zap.Error(err))
			}
		}()
		log.GetLogger().Info("task queue enabled", zap.String("redis_addr", config.Conf.Queue.RedisAddr))
	} else {
		h.Runner = taskrunner.New(svc, taskrunner.DefaultConfig())
	}

	return h
}

// Close releases the background workers.
func (h *Handler) Close() {
	if h.Runner != nil {
		h.Runner.Close()
	}
	if h.Queue != nil {
		_ = h.Queue.Close()
	}
}
