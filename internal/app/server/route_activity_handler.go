package server

import (
	"net/http"
	"strconv"

	"geonest/internal/api/dto"
	"geonest/internal/auth"
	"geonest/internal/database"
)

func getActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}

	entries, err := database.GetUserActivity(userID, limit)
	if err != nil {
		writeError(w, "Failed to load activity", http.StatusInternalServerError)
		return
	}

	infos := make([]dto.ActivityInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, dto.ActivityInfo{
			Action:      entry.Action,
			Message:     entry.Message,
			GeofeedId:   entry.GeofeedID,
			GeofeedName: entry.GeofeedName,
			CreatedAt:   entry.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, infos)
}
