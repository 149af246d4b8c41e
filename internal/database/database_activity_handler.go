package database

import (
	"geonest/internal/domain"
)

const (
	activityDefaultLimit = 10
	activityMaxLimit     = 100
)

func InsertActivity(entry domain.ActivityLog) error {
	return DB.Create(&entry).Error
}

// GetUserActivity returns the newest entries first. Limit is clamped to
// [1, 100] with a default of 10 when zero or negative.
func GetUserActivity(userID uint, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = activityDefaultLimit
	}
	if limit > activityMaxLimit {
		limit = activityMaxLimit
	}

	var entries []domain.ActivityLog
	err := DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
