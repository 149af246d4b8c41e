package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"geonest/internal/activity"
	"geonest/internal/api/dto"
	"geonest/internal/auth"
	"geonest/internal/database"
	"geonest/internal/domain"
	"geonest/internal/geofeed"
)

func listRanges(w http.ResponseWriter, r *http.Request) {
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

	infos := make([]dto.RangeInfo, 0, len(ranges))
	for _, rng := range ranges {
		infos = append(infos, dto.RangeInfo{
			Id:          rng.ID,
			Network:     rng.Network,
			CountryCode: rng.CountryCode,
			Subdivision: rng.Subdivision,
			City:        rng.City,
			PostalCode:  rng.PostalCode,
		})
	}

	writeJSON(w, http.StatusOK, infos)
}

// validateRangePayload normalizes and checks one manually edited range.
func validateRangePayload(payload dto.RangePayload) (geofeed.RangeRecord, string) {
	if !geofeed.IsValidCIDR(payload.Network) {
		return geofeed.RangeRecord{}, geofeed.ReasonInvalidCIDR
	}

	country := geofeed.NormalizeAlpha2Code(payload.CountryCode)
	if !geofeed.IsValidAlpha2Code(country) {
		return geofeed.RangeRecord{}, geofeed.ReasonInvalidAlpha2
	}

	return geofeed.RangeRecord{
		Network:     payload.Network,
		CountryCode: country,
		Subdivision: payload.Subdivision,
		City:        payload.City,
		PostalCode:  payload.PostalCode,
	}, ""
}

func createRange(w http.ResponseWriter, r *http.Request) {
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

	var payload dto.RangePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	record, reason := validateRangePayload(payload)
	if reason != "" {
		writeError(w, reason, http.StatusBadRequest)
		return
	}

	ranges := []domain.IPRange{{
		Network:     record.Network,
		CountryCode: record.CountryCode,
		Subdivision: record.Subdivision,
		City:        record.City,
		PostalCode:  record.PostalCode,
	}}

	// A hand-edited geofeed is no longer a pending import draft.
	inserted, err := database.CommitRanges(feed.ID, userID, ranges, feed.IsDraft)
	if err != nil {
		writeError(w, "Failed to create range", http.StatusInternalServerError)
		return
	}
	if inserted == 0 {
		writeError(w, geofeed.ReasonExistingDuplicate, http.StatusConflict)
		return
	}

	activity.Record(userID, "range.create", fmt.Sprintf("Added %s to %q", record.Network, feed.Name), feed.ID, feed.Name)

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Range created"})
}

func updateRange(w http.ResponseWriter, r *http.Request) {
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

	existing, err := database.GetUserRange(r.PathValue("rid"), userID)
	if err != nil {
		writeError(w, "Failed to load range", http.StatusInternalServerError)
		return
	}
	if existing == nil || existing.GeofeedID != feed.ID {
		writeError(w, "Range not found", http.StatusNotFound)
		return
	}

	var payload dto.RangePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	record, reason := validateRangePayload(payload)
	if reason != "" {
		writeError(w, reason, http.StatusBadRequest)
		return
	}

	err = database.UpdateRange(existing.ID, userID, domain.IPRange{
		Network:     record.Network,
		CountryCode: record.CountryCode,
		Subdivision: record.Subdivision,
		City:        record.City,
		PostalCode:  record.PostalCode,
	})
	if err != nil {
		writeError(w, "Failed to update range", http.StatusInternalServerError)
		return
	}

	// A hand-edited geofeed is no longer a pending import draft.
	if feed.IsDraft {
		if err := database.SetDraftFlag(feed.ID, false); err != nil {
			writeError(w, "Failed to update range", http.StatusInternalServerError)
			return
		}
	}

	activity.Record(userID, "range.update", fmt.Sprintf("Updated %s in %q", record.Network, feed.Name), feed.ID, feed.Name)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Range updated"})
}

func deleteRange(w http.ResponseWriter, r *http.Request) {
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

	existing, err := database.GetUserRange(r.PathValue("rid"), userID)
	if err != nil {
		writeError(w, "Failed to load range", http.StatusInternalServerError)
		return
	}
	if existing == nil || existing.GeofeedID != feed.ID {
		writeError(w, "Range not found", http.StatusNotFound)
		return
	}

	if err := database.DeleteRange(existing.ID, userID); err != nil {
		writeError(w, "Failed to delete range", http.StatusInternalServerError)
		return
	}

	if feed.IsDraft {
		if err := database.SetDraftFlag(feed.ID, false); err != nil {
			writeError(w, "Failed to delete range", http.StatusInternalServerError)
			return
		}
	}

	activity.Record(userID, "range.delete", fmt.Sprintf("Deleted %s from %q", existing.Network, feed.Name), feed.ID, feed.Name)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Range deleted"})
}

func bulkDeleteRanges(w http.ResponseWriter, r *http.Request) {
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

	var payload dto.BulkDeleteRanges
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if len(payload.RangeIds) == 0 {
		writeError(w, "No ranges selected", http.StatusBadRequest)
		return
	}

	removed, err := database.BulkDeleteRanges(feed.ID, userID, payload.RangeIds)
	if err != nil {
		writeError(w, "Failed to delete ranges", http.StatusInternalServerError)
		return
	}

	if feed.IsDraft {
		if err := database.SetDraftFlag(feed.ID, false); err != nil {
			writeError(w, "Failed to delete ranges", http.StatusInternalServerError)
			return
		}
	}

	activity.Record(userID, "range.delete", fmt.Sprintf("Deleted %d ranges from %q", removed, feed.Name), feed.ID, feed.Name)

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": removed})
}
