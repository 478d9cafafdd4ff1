package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clipmaster/config"
	"clipmaster/internal/mocks"
	"clipmaster/internal/response"
	"clipmaster/internal/service"
	"clipmaster/internal/types"
	"clipmaster/log"
	apperrors "clipmaster/pkg/errors"
)

func init() {
	log.InitLogger()
}

func buildClipRouter(svc *service.Service) *gin.Engine {
	router := gin.New()
	h := &Handler{Service: svc}
	router.POST("/api/clip/detect", h.DetectClips)
	router.POST("/api/clip/reframe", h.ComputeCrop)
	return router
}

func newDetectTestService() *service.Service {
	sentiment := new(mocks.MockSentimentAnalyzer)
	emotion := new(mocks.MockEmotionClassifier)
	linguistic := new(mocks.MockLinguisticAnalyzer)
	sentiment.On("PolarityScores", mock.Anything, mock.Anything).Return(types.Sentiment{Compound: 0.5}, nil)
	emotion.On("Classify", mock.Anything, mock.Anything).Return(map[string]float64{"joy": 0.4}, nil)
	linguistic.On("Analyze", mock.Anything, mock.Anything).Return(types.LinguisticInfo{Sentences: []string{"hey"}}, nil)

	return &service.Service{
		Sentiment:  sentiment,
		Emotion:    emotion,
		Linguistic: linguistic,
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestDetectClips_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf.Detect = config.Detect{
		TargetDuration: 60, MinDuration: 30, MaxDuration: 90, MaxClips: 5, FeatureWorkers: 2,
	}

	router := buildClipRouter(newDetectTestService())

	segments := make([]map[string]any, 0, 10)
	for i := 0; i < 10; i++ {
		segments = append(segments, map[string]any{
			"start": float64(i * 10),
			"end":   float64((i + 1) * 10),
			"text":  "some talk",
		})
	}

	w := postJSON(t, router, "/api/clip/detect", map[string]any{"segments": segments})

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeResponse(t, w)
	assert.Equal(t, int32(0), res.Error)
	assert.NotNil(t, res.Data)
}

func TestDetectClips_EmptySegments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf.Detect = config.Detect{
		TargetDuration: 60, MinDuration: 30, MaxDuration: 90, MaxClips: 5,
	}

	router := buildClipRouter(newDetectTestService())

	w := postJSON(t, router, "/api/clip/detect", map[string]any{"segments": []any{}})

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeResponse(t, w)
	assert.Equal(t, int32(0), res.Error)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	clips, ok := data["clips"].([]any)
	require.True(t, ok)
	assert.Empty(t, clips)
}

func TestDetectClips_InvalidRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf.Detect = config.Detect{
		TargetDuration: 60, MinDuration: 30, MaxDuration: 90, MaxClips: 5,
	}

	router := buildClipRouter(newDetectTestService())

	w := postJSON(t, router, "/api/clip/detect", map[string]any{
		"segments":     []map[string]any{{"start": 0, "end": 10, "text": "hi"}},
		"min_duration": 80,
		"max_duration": 70,
	})

	res := decodeResponse(t, w)
	assert.Equal(t, int32(apperrors.CodeInvalidDurationRange), res.Error)
}

func TestDetectClips_MalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildClipRouter(newDetectTestService())

	req, _ := http.NewRequest("POST", "/api/clip/detect", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	res := decodeResponse(t, w)
	assert.Equal(t, int32(apperrors.CodeInvalidParams), res.Error)
}

func TestComputeCrop_UnknownAspectRatio(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf.Reframe = config.Reframe{SampleRate: 10, FaceTrackingEnabled: true}

	detector := new(mocks.MockFaceDetector)
	router := buildClipRouter(&service.Service{FaceDetector: detector})

	w := postJSON(t, router, "/api/clip/reframe", map[string]any{
		"video_path":   "clip.mp4",
		"aspect_ratio": "21:9",
	})

	res := decodeResponse(t, w)
	assert.Equal(t, int32(apperrors.CodeUnknownAspectRatio), res.Error)
}
