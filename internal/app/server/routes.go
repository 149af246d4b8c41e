package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"geonest/internal/auth"
	"geonest/internal/config"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Allow any origin
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Pass the request to the next handler
		next.ServeHTTP(w, r)
	})
}

func OpenRoutes(port int) error {

	router := http.NewServeMux()
	router.HandleFunc("POST /register", registerUser)
	router.HandleFunc("POST /login", loginUser)
	router.Handle("GET /checkLogin", auth.RequireAuth(http.HandlerFunc(checkLogin)))
	router.Handle("POST /changePassword", auth.RequireAuth(http.HandlerFunc(changePassword)))

	router.Handle("GET /geofeeds", auth.RequireAuth(http.HandlerFunc(listGeofeeds)))
	router.Handle("POST /geofeeds", auth.RequireAuth(http.HandlerFunc(createGeofeed)))
	router.Handle("GET /geofeeds/{id}", auth.RequireAuth(http.HandlerFunc(getGeofeed)))
	router.Handle("PATCH /geofeeds/{id}", auth.RequireAuth(http.HandlerFunc(renameGeofeed)))
	router.Handle("DELETE /geofeeds/{id}", auth.RequireAuth(http.HandlerFunc(deleteGeofeed)))

	router.Handle("GET /geofeeds/{id}/ranges", auth.RequireAuth(http.HandlerFunc(listRanges)))
	router.Handle("POST /geofeeds/{id}/ranges", auth.RequireAuth(http.HandlerFunc(createRange)))
	router.Handle("PATCH /geofeeds/{id}/ranges/{rid}", auth.RequireAuth(http.HandlerFunc(updateRange)))
	router.Handle("DELETE /geofeeds/{id}/ranges/{rid}", auth.RequireAuth(http.HandlerFunc(deleteRange)))
	router.Handle("POST /geofeeds/{id}/ranges/bulkDelete", auth.RequireAuth(http.HandlerFunc(bulkDeleteRanges)))

	router.Handle("POST /startImport", auth.RequireAuth(http.HandlerFunc(startImport)))
	router.Handle("POST /geofeeds/{id}/importPreview", auth.RequireAuth(http.HandlerFunc(importPreview)))
	router.Handle("POST /geofeeds/{id}/import", auth.RequireAuth(http.HandlerFunc(importRanges)))
	router.Handle("POST /geofeeds/{id}/cancelImport", auth.RequireAuth(http.HandlerFunc(cancelImport)))

	router.Handle("POST /geofeeds/{id}/publish", auth.RequireAuth(http.HandlerFunc(publishGeofeed)))
	router.Handle("POST /geofeeds/{id}/unpublish", auth.RequireAuth(http.HandlerFunc(unpublishGeofeed)))
	router.Handle("GET /geofeeds/{id}/download", auth.RequireAuth(http.HandlerFunc(downloadGeofeed)))

	router.Handle("GET /activity", auth.RequireAuth(http.HandlerFunc(getActivity)))

	// Published files are world readable, that is the point of a geofeed.
	publishDir := config.GetConfig().Publish.Dir
	router.Handle("GET /geo/", http.StripPrefix("/geo/", http.FileServer(http.Dir(publishDir))))

	log.Debug("Routes opened")

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: enableCORS(router),
	}

	log.Infof("Starting geonest backend on port :%d", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
