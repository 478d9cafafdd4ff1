package storage

import (
	"errors"

	"gorm.io/gorm"

	"clipmaster/internal/types"
)

// SaveTask upserts a detection run keyed by its TaskId.
func SaveTask(task *types.ClipTask) error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing types.ClipTask
	result := DB.Where("task_id = ?", task.TaskId).First(&existing)

	if result.Error == nil {
		task.Id = existing.Id
		return DB.Save(task).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(task).Error
	}
	return result.Error
}

// ReplaceTaskClips swaps the persisted ranked clips of a run.
func ReplaceTaskClips(taskId string, records []types.ClipRecord) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_ref = ?", taskId).Delete(&types.ClipRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func GetTask(taskId string) (*types.ClipTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var task types.ClipTask
	if err := DB.Preload("ClipRecords", func(db *gorm.DB) *gorm.DB {
		return db.Order("rank asc")
	}).Where("task_id = ?", taskId).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func GetTaskHistory(limit int) ([]types.ClipTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var tasks []types.ClipTask
	if err := DB.Preload("ClipRecords").Order("create_time desc").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func DeleteTask(taskId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_ref = ?", taskId).Delete(&types.ClipRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("task_id = ?", taskId).Delete(&types.ClipTask{}).Error
	})
}

// MarkStaleTasks fails every run still marked running. Called on startup to
// clean up tasks interrupted by a previous shutdown.
func MarkStaleTasks() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.ClipTask{}).
		Where("status = ?", types.ClipTaskStatusRunning).
		Updates(map[string]interface{}{
			"status":      types.ClipTaskStatusFailed,
			"fail_reason": "Task interrupted by server restart",
			"status_msg":  "Interrupted",
		})
	return result.RowsAffected, result.Error
}
