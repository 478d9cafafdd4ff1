package storage

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clipmaster/internal/appdirs"
	"clipmaster/internal/types"
)

func TestResolveDBPathUsesCacheDir(t *testing.T) {
	originalResolver := appDirsResolver
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})

	tempDir := t.TempDir()
	cacheDir := filepath.Join(tempDir, "cache-root")
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			OutputDir: filepath.Join(tempDir, "output-root"),
			CacheDir:  cacheDir,
		}, nil
	}

	got, err := resolveDBPath()
	if err != nil {
		t.Fatalf("resolveDBPath() returned error: %v", err)
	}

	want := filepath.Join(cacheDir, "clipmaster.db")
	if got != want {
		t.Fatalf("resolveDBPath() = %q, want %q", got, want)
	}
}

func setupTestDB(t *testing.T) {
	t.Helper()
	originalDB := DB
	t.Cleanup(func() { DB = originalDB })

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&types.ClipTask{}, &types.ClipRecord{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	DB = db
}

func TestSaveTaskUpserts(t *testing.T) {
	setupTestDB(t)

	task := &types.ClipTask{TaskId: "task-1", Status: types.ClipTaskStatusPending}
	if err := SaveTask(task); err != nil {
		t.Fatalf("SaveTask() create returned error: %v", err)
	}

	task.Status = types.ClipTaskStatusDone
	if err := SaveTask(&types.ClipTask{TaskId: "task-1", Status: types.ClipTaskStatusDone}); err != nil {
		t.Fatalf("SaveTask() update returned error: %v", err)
	}

	got, err := GetTask("task-1")
	if err != nil {
		t.Fatalf("GetTask() returned error: %v", err)
	}
	if got.Status != types.ClipTaskStatusDone {
		t.Fatalf("GetTask() status = %d, want %d", got.Status, types.ClipTaskStatusDone)
	}

	var count int64
	DB.Model(&types.ClipTask{}).Count(&count)
	if count != 1 {
		t.Fatalf("task count = %d, want 1", count)
	}
}

func TestReplaceTaskClipsAndOrdering(t *testing.T) {
	setupTestDB(t)

	if err := SaveTask(&types.ClipTask{TaskId: "task-2", Status: types.ClipTaskStatusDone}); err != nil {
		t.Fatalf("SaveTask() returned error: %v", err)
	}

	records := []types.ClipRecord{
		{TaskRef: "task-2", Rank: 2, Score: 0.3, Text: "second"},
		{TaskRef: "task-2", Rank: 1, Score: 0.9, Text: "first"},
	}
	if err := ReplaceTaskClips("task-2", records); err != nil {
		t.Fatalf("ReplaceTaskClips() returned error: %v", err)
	}

	got, err := GetTask("task-2")
	if err != nil {
		t.Fatalf("GetTask() returned error: %v", err)
	}
	if len(got.ClipRecords) != 2 {
		t.Fatalf("ClipRecords count = %d, want 2", len(got.ClipRecords))
	}
	if got.ClipRecords[0].Text != "first" {
		t.Fatalf("first record text = %q, want %q", got.ClipRecords[0].Text, "first")
	}

	if err := ReplaceTaskClips("task-2", nil); err != nil {
		t.Fatalf("ReplaceTaskClips() clear returned error: %v", err)
	}
	got, _ = GetTask("task-2")
	if len(got.ClipRecords) != 0 {
		t.Fatalf("ClipRecords count after clear = %d, want 0", len(got.ClipRecords))
	}
}

func TestDeleteTaskRemovesRecords(t *testing.T) {
	setupTestDB(t)

	if err := SaveTask(&types.ClipTask{TaskId: "task-3"}); err != nil {
		t.Fatalf("SaveTask() returned error: %v", err)
	}
	if err := ReplaceTaskClips("task-3", []types.ClipRecord{{TaskRef: "task-3", Rank: 1}}); err != nil {
		t.Fatalf("ReplaceTaskClips() returned error: %v", err)
	}

	if err := DeleteTask("task-3"); err != nil {
		t.Fatalf("DeleteTask() returned error: %v", err)
	}

	if _, err := GetTask("task-3"); err == nil {
		t.Fatal("GetTask() after delete returned no error, want not-found")
	}
	var count int64
	DB.Model(&types.ClipRecord{}).Where("task_ref = ?", "task-3").Count(&count)
	if count != 0 {
		t.Fatalf("orphan record count = %d, want 0", count)
	}
}

func TestMarkStaleTasks(t *testing.T) {
	setupTestDB(t)

	SaveTask(&types.ClipTask{TaskId: "running", Status: types.ClipTaskStatusRunning})
	SaveTask(&types.ClipTask{TaskId: "done", Status: types.ClipTaskStatusDone})

	affected, err := MarkStaleTasks()
	if err != nil {
		t.Fatalf("MarkStaleTasks() returned error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("MarkStaleTasks() affected = %d, want 1", affected)
	}

	got, _ := GetTask("running")
	if got.Status != types.ClipTaskStatusFailed {
		t.Fatalf("stale task status = %d, want %d", got.Status, types.ClipTaskStatusFailed)
	}
	done, _ := GetTask("done")
	if done.Status != types.ClipTaskStatusDone {
		t.Fatalf("done task status = %d, want %d", done.Status, types.ClipTaskStatusDone)
	}
}
