package domain

import "time"

// ActivityLog rows are written by a fire-and-forget recorder; a failed
// write is logged and dropped, never surfaced to the operation that
// produced it.
type ActivityLog struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	UserID      uint   `gorm:"not null;index"`
	Action      string `gorm:"size:64;not null"`
	Message     string `gorm:"not null"`
	GeofeedID   string `gorm:"size:36;default:''"`
	GeofeedName string `gorm:"size:255;default:''"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
