package activity

import (
	"sync"

	"github.com/charmbracelet/log"

	"geonest/internal/database"
	"geonest/internal/domain"
)

const queueSize = 256

var (
	startOnce sync.Once
	queue     chan domain.ActivityLog

	// sink is swappable for tests.
	sink = database.InsertActivity
)

// Record queues an activity entry without blocking the caller. Entries are
// dropped when the queue is full or the write fails; the log is a
// convenience trail, never a reason to fail the operation it describes.
func Record(userID uint, action, message, geofeedID, geofeedName string) {
	startOnce.Do(startWorker)

	entry := domain.ActivityLog{
		UserID:      userID,
		Action:      action,
		Message:     message,
		GeofeedID:   geofeedID,
		GeofeedName: geofeedName,
	}

	select {
	case queue <- entry:
	default:
		log.Warn("activity log queue full, dropping entry", "action", action)
	}
}

func startWorker() {
	queue = make(chan domain.ActivityLog, queueSize)
	go func() {
		for entry := range queue {
			if err := sink(entry); err != nil {
				log.Warn("activity log write failed", "action", entry.Action, "error", err)
			}
		}
	}()
}
