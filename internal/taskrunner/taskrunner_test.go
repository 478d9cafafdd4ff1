package taskrunner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clipmaster/config"
	"clipmaster/internal/mocks"
	"clipmaster/internal/service"
	"clipmaster/internal/storage"
	"clipmaster/internal/types"
	"clipmaster/log"
)

func init() {
	log.InitLogger()
}

func setupTestDB(t *testing.T) {
	t.Helper()
	originalDB := storage.DB
	t.Cleanup(func() { storage.DB = originalDB })

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.ClipTask{}, &types.ClipRecord{}))
	storage.DB = db
}

func newDetectTestService() *service.Service {
	sentiment := new(mocks.MockSentimentAnalyzer)
	emotion := new(mocks.MockEmotionClassifier)
	linguistic := new(mocks.MockLinguisticAnalyzer)
	sentiment.On("PolarityScores", mock.Anything, mock.Anything).Return(types.Sentiment{Compound: 0.6}, nil)
	emotion.On("Classify", mock.Anything, mock.Anything).Return(map[string]float64{"joy": 0.5}, nil)
	linguistic.On("Analyze", mock.Anything, mock.Anything).Return(types.LinguisticInfo{Sentences: []string{"hi"}}, nil)

	return &service.Service{
		Sentiment:  sentiment,
		Emotion:    emotion,
		Linguistic: linguistic,
	}
}

func detectPayload(taskId string) DetectTaskPayload {
	segments := make([]types.TranscriptSegment, 10)
	for i := range segments {
		segments[i] = types.TranscriptSegment{
			Start: float64(i * 10),
			End:   float64((i + 1) * 10),
			Text:  "some talk",
		}
	}
	return DetectTaskPayload{TaskID: taskId, Segments: segments}
}

func TestProcessDetectTask_CompletesAndPersists(t *testing.T) {
	setupTestDB(t)
	config.Conf.Detect = config.Detect{
		TargetDuration: 60, MinDuration: 30, MaxDuration: 90, MaxClips: 3, FeatureWorkers: 2,
	}

	require.NoError(t, storage.SaveTask(&types.ClipTask{
		TaskId: "run-1",
		Status: types.ClipTaskStatusPending,
	}))

	err := ProcessDetectTask(context.Background(), newDetectTestService(), detectPayload("run-1"))
	require.NoError(t, err)

	task, err := storage.GetTask("run-1")
	require.NoError(t, err)
	assert.Equal(t, types.ClipTaskStatusDone, task.Status)
	assert.NotEmpty(t, task.ClipRecords)
	assert.LessOrEqual(t, len(task.ClipRecords), 3)
	assert.Equal(t, 1, task.ClipRecords[0].Rank)
	assert.NotEmpty(t, task.ClipRecords[0].DetailsJson)
}

func TestProcessDetectTask_FailureMarksTask(t *testing.T) {
	setupTestDB(t)
	config.Conf.Detect = config.Detect{
		TargetDuration: 60, MinDuration: 30, MaxDuration: 90, MaxClips: 3,
	}

	require.NoError(t, storage.SaveTask(&types.ClipTask{
		TaskId: "run-2",
		Status: types.ClipTaskStatusPending,
	}))

	// No segments makes detection fail with an empty-transcript error.
	err := ProcessDetectTask(context.Background(), newDetectTestService(), DetectTaskPayload{TaskID: "run-2"})
	assert.Error(t, err)

	task, dbErr := storage.GetTask("run-2")
	require.NoError(t, dbErr)
	assert.Equal(t, types.ClipTaskStatusFailed, task.Status)
	assert.NotEmpty(t, task.FailReason)
}

func TestProcessDetectTask_UnknownTask(t *testing.T) {
	setupTestDB(t)

	err := ProcessDetectTask(context.Background(), newDetectTestService(), detectPayload("missing"))
	assert.Error(t, err)
}

func TestRunner_SubmitAndProcess(t *testing.T) {
	setupTestDB(t)
	config.Conf.Detect = config.Detect{
		TargetDuration: 60, MinDuration: 30, MaxDuration: 90, MaxClips: 3, FeatureWorkers: 2,
	}

	require.NoError(t, storage.SaveTask(&types.ClipTask{
		TaskId: "run-3",
		Status: types.ClipTaskStatusPending,
	}))

	runner := New(newDetectTestService(), Config{QueueSize: 4, Concurrency: 1})
	defer runner.Close()

	require.NoError(t, runner.SubmitDetectTask(detectPayload("run-3")))

	assert.Eventually(t, func() bool {
		task, err := storage.GetTask("run-3")
		return err == nil && task.Status == types.ClipTaskStatusDone
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRunner_RejectsAfterClose(t *testing.T) {
	setupTestDB(t)

	runner := New(newDetectTestService(), Config{QueueSize: 1, Concurrency: 1})
	runner.Close()

	err := runner.SubmitDetectTask(detectPayload("run-4"))
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestRunner_RequiresTaskID(t *testing.T) {
	setupTestDB(t)

	runner := New(newDetectTestService(), Config{QueueSize: 1, Concurrency: 1})
	defer runner.Close()

	err := runner.SubmitDetectTask(DetectTaskPayload{})
	assert.Error(t, err)
}
