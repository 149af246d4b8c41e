package importer

import (
	"github.com/charmbracelet/log"

	"geonest/internal/activity"
	"geonest/internal/database"
	"geonest/internal/domain"
)

// RequestContext carries the authenticated caller through an import.
type RequestContext struct {
	UserID uint
}

// StartImport creates the draft geofeed a preview and commit will target.
// The draft stays invisible to publishing until a commit finalizes it.
func StartImport(rc RequestContext, name string) (*domain.Geofeed, error) {
	feed := domain.Geofeed{
		UserID:  rc.UserID,
		Name:    name,
		IsDraft: true,
	}

	if err := database.CreateGeofeed(&feed); err != nil {
		return nil, err
	}

	return &feed, nil
}

// AbandonImport deletes the draft created by StartImport together with any
// ranges it accumulated. It is idempotent: a missing geofeed or one that
// was already finalized is left alone and no error is reported.
func AbandonImport(rc RequestContext, geofeedID string) {
	feed, err := database.GetUserGeofeed(geofeedID, rc.UserID)
	if err != nil {
		log.Warn("cancel import: lookup failed", "geofeed", geofeedID, "error", err)
		return
	}
	if feed == nil || !feed.IsDraft {
		return
	}

	if err := database.DeleteGeofeed(geofeedID, rc.UserID); err != nil {
		log.Warn("cancel import: delete failed", "geofeed", geofeedID, "error", err)
		return
	}

	activity.Record(rc.UserID, "geofeed.import_cancel", "Cancelled import draft "+feed.Name, feed.ID, feed.Name)
}
