package importer

import (
	"errors"

	"geonest/internal/config"
	"geonest/internal/database"
	"geonest/internal/geofeed"
)

var ErrTooManyRows = errors.New("import exceeds the configured row limit")

// BuildPreview parses the CSV text and classifies every row against the
// geofeed's stored ranges. Nothing is written; the caller shows the result
// to the user who then commits a subset of it.
func BuildPreview(geofeedID string, userID uint, text string) ([]geofeed.CandidateRow, geofeed.Summary, error) {
	feed, err := database.GetUserGeofeed(geofeedID, userID)
	if err != nil {
		return nil, geofeed.Summary{}, err
	}
	if feed == nil {
		return nil, geofeed.Summary{}, geofeed.ErrGeofeedNotFound
	}

	candidates := geofeed.ParseCSV(text)
	if uint32(len(candidates)) > config.GetConfig().Import.MaxRows {
		return nil, geofeed.Summary{}, ErrTooManyRows
	}

	stored, err := database.GetRangesOfGeofeed(geofeedID, userID)
	if err != nil {
		return nil, geofeed.Summary{}, err
	}

	existing := make([]geofeed.RangeRecord, 0, len(stored))
	for _, r := range stored {
		existing = append(existing, r.Record())
	}

	rows, summary := geofeed.Reconcile(candidates, existing)
	return rows, summary, nil
}
