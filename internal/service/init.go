package service

import (
	"clipmaster/config"
	"clipmaster/internal/types"
	"clipmaster/log"
	"clipmaster/pkg/facedet"
	"clipmaster/pkg/inference"
	"clipmaster/pkg/openai"

	"go.uber.org/zap"
)

type Service struct {
	Sentiment     types.SentimentAnalyzer
	Emotion       types.EmotionClassifier
	Linguistic    types.LinguisticAnalyzer
	FaceDetector  types.FaceDetector
	ChatCompleter types.ChatCompleter
}

func NewService() *Service {
	proxy := config.Conf.App.Proxy

	svc := &Service{
		Sentiment:    inference.NewSentimentClient(config.Conf.Sentiment, proxy),
		Emotion:      inference.NewEmotionClient(config.Conf.Emotion, proxy),
		Linguistic:   inference.NewLinguisticClient(config.Conf.Linguistic, proxy),
		FaceDetector: facedet.NewClient(config.Conf.FaceDetect, proxy),
	}

	if config.Conf.Llm.ApiKey != "" {
		svc.ChatCompleter = openai.NewClient(config.Conf.Llm.BaseUrl, config.Conf.Llm.ApiKey, config.Conf.Llm.Model, proxy)
	}

	log.GetLogger().Info("service initialized",
		zap.Bool("face_detector", svc.FaceDetector.Available()),
		zap.Bool("llm_titling", svc.ChatCompleter != nil))

	return svc
}
