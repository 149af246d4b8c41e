package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"geonest/internal/activity"
	"geonest/internal/api/dto"
	"geonest/internal/auth"
	"geonest/internal/database"
	"geonest/internal/domain"
	"geonest/internal/publish"
)

func listGeofeeds(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	infos, err := database.ListUserGeofeeds(userID)
	if err != nil {
		writeError(w, "Failed to load geofeeds", http.StatusInternalServerError)
		return
	}

	for i := range infos {
		if infos[i].Published {
			infos[i].PublishedUrl = publish.PublishedURL(infos[i].Id)
		}
	}

	writeJSON(w, http.StatusOK, infos)
}

func createGeofeed(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	feed := domain.Geofeed{
		UserID: userID,
		Name:   name,
	}
	if err := database.CreateGeofeed(&feed); err != nil {
		writeError(w, "Failed to create geofeed", http.StatusInternalServerError)
		return
	}

	activity.Record(userID, "geofeed.create", "Created geofeed "+feed.Name, feed.ID, feed.Name)

	writeJSON(w, http.StatusCreated, dto.GeofeedInfo{
		Id:        feed.ID,
		Name:      feed.Name,
		IsDraft:   feed.IsDraft,
		Published: feed.Published,
		CreatedAt: feed.CreatedAt,
	})
}

func getGeofeed(w http.ResponseWriter, r *http.Request) {
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

	count, err := database.CountRanges(feed.ID, userID)
	if err != nil {
		writeError(w, "Failed to load geofeed", http.StatusInternalServerError)
		return
	}

	info := dto.GeofeedInfo{
		Id:         feed.ID,
		Name:       feed.Name,
		IsDraft:    feed.IsDraft,
		Published:  feed.Published,
		CreatedAt:  feed.CreatedAt,
		RangeCount: count,
	}
	if feed.Published {
		info.PublishedUrl = publish.PublishedURL(feed.ID)
	}

	writeJSON(w, http.StatusOK, info)
}

func renameGeofeed(w http.ResponseWriter, r *http.Request) {
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

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	if err := database.RenameGeofeed(feed.ID, userID, name); err != nil {
		writeError(w, "Failed to rename geofeed", http.StatusInternalServerError)
		return
	}

	activity.Record(userID, "geofeed.rename", "Renamed geofeed "+feed.Name+" to "+name, feed.ID, name)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Geofeed renamed"})
}

func deleteGeofeed(w http.ResponseWriter, r *http.Request) {
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

	if err := database.DeleteGeofeed(feed.ID, userID); err != nil {
		writeError(w, "Failed to delete geofeed", http.StatusInternalServerError)
		return
	}

	// Best effort, the row is already gone.
	_ = publish.RemoveFile(feed.ID)

	activity.Record(userID, "geofeed.delete", "Deleted geofeed "+feed.Name, feed.ID, feed.Name)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Geofeed deleted"})
}
