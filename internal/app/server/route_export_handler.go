package server

import (
	"fmt"
	"net/http"

	"geonest/internal/activity"
	"geonest/internal/auth"
	"geonest/internal/database"
	"geonest/internal/geofeed"
	"geonest/internal/publish"
)

func downloadGeofeed(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	feed, err := database.GetUserGeofeed(r.PathValue("id"), userID)
	if err != nil {
		writeError(w, "Failed to load geofeed", http.StatusInternalServerError)
		return
	}
	if feed == nil {
		writeError(w, "Geofeed not found", http.StatusNotFound)
		return
	}

	ranges, err := database.GetRangesOfGeofeed(feed.ID, userID)
	if err != nil {
		writeError(w, "Failed to load ranges", http.StatusInternalServerError)
		return
	}

	records := make([]geofeed.RangeRecord, 0, len(ranges))
	for _, rng := range ranges {
		records = append(records, rng.Record())
	}

	content := geofeed.FormatCSV(records)
	if content != "" {
		content += "\n"
	}

	activity.Record(userID, "geofeed.download", "Downloaded geofeed "+feed.Name, feed.ID, feed.Name)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "geofeed-"+feed.ID+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

func publishGeofeed(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	feed, err := database.GetUserGeofeed(r.PathValue("id"), userID)
	if err != nil {
		writeError(w, "Failed to load geofeed", http.StatusInternalServerError)
		return
	}
	if feed == nil {
		writeError(w, "Geofeed not found", http.StatusNotFound)
		return
	}
	if feed.IsDraft {
		writeError(w, "Draft geofeeds cannot be published", http.StatusBadRequest)
		return
	}

	url, count, err := publish.PublishGeofeed(feed)
	if err != nil {
		writeError(w, "Failed to publish geofeed", http.StatusInternalServerError)
		return
	}

	activity.Record(userID, "geofeed.publish", fmt.Sprintf("Published %q with %d ranges", feed.Name, count), feed.ID, feed.Name)

	writeJSON(w, http.StatusOK, map[string]any{
		"published_url": url,
		"range_count":   count,
	})
}

func unpublishGeofeed(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	feed, err := database.GetUserGeofeed(r.PathValue("id"), userID)
	if err != nil {
		writeError(w, "Failed to load geofeed", http.StatusInternalServerError)
		return
	}
	if feed == nil {
		writeError(w, "Geofeed not found", http.StatusNotFound)
		return
	}

	if err := publish.UnpublishGeofeed(feed); err != nil {
		writeError(w, "Failed to unpublish geofeed", http.StatusInternalServerError)
		return
	}

	activity.Record(userID, "geofeed.unpublish", "Unpublished geofeed "+feed.Name, feed.ID, feed.Name)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Geofeed unpublished"})
}
