package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"geonest/internal/api/dto"
	"geonest/internal/auth"
	"geonest/internal/database"
	"geonest/internal/geofeed"
	"geonest/internal/importer"
)

func startImport(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
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

	feed, err := importer.StartImport(importer.RequestContext{UserID: userID}, name)
	if err != nil {
		writeError(w, "Failed to start import", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GeofeedInfo{
		Id:        feed.ID,
		Name:      feed.Name,
		IsDraft:   feed.IsDraft,
		CreatedAt: feed.CreatedAt,
	})
}

// importPreview accepts CSV content three ways, merged in this order: an
// uploaded multipart file, a csvText form or JSON field, and a url field
// fetched server side.
func importPreview(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	geofeedID := r.PathValue("id")

	text, ok := collectImportText(w, r)
	if !ok {
		return
	}

	rows, summary, err := importer.BuildPreview(geofeedID, userID, text)
	if err != nil {
		switch {
		case errors.Is(err, geofeed.ErrGeofeedNotFound):
			writeError(w, "Geofeed not found", http.StatusNotFound)
		case errors.Is(err, importer.ErrTooManyRows):
			writeError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Error("import preview failed", "geofeed", geofeedID, "error", err)
			writeError(w, "Failed to build preview", http.StatusInternalServerError)
		}
		return
	}

	preview := dto.ImportPreview{
		GeofeedId: geofeedID,
		Rows:      make([]dto.PreviewRow, 0, len(rows)),
		Summary: dto.PreviewSummary{
			Valid:     summary.Valid,
			Invalid:   summary.Invalid,
			Duplicate: summary.Duplicate,
			Conflict:  summary.Conflict,
		},
	}

	for _, row := range rows {
		previewRow := dto.PreviewRow{
			Line:        row.Line,
			Network:     row.Network,
			CountryCode: row.CountryCode,
			Subdivision: row.Subdivision,
			City:        row.City,
			PostalCode:  row.PostalCode,
			Original:    row.Original,
			Valid:       row.Valid,
			Reason:      row.Reason,
			Duplicate:   row.Duplicate,
			Conflict:    row.Conflict,
			Selected:    row.Selected,
		}
		// Offer a country for a bad country field, or when the GeoLite
		// database disagrees with a declared one. Advisory either way.
		if row.Valid || row.Reason == geofeed.ReasonInvalidAlpha2 {
			if suggested := database.SuggestCountry(row.Network); suggested != "" && suggested != row.CountryCode {
				previewRow.SuggestedCountry = suggested
			}
		}
		preview.Rows = append(preview.Rows, previewRow)
	}

	writeJSON(w, http.StatusOK, preview)
}

func collectImportText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var parts []string

	textContent := r.FormValue("csvText")
	file, fileHeader, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		log.Debugf("Uploaded file: %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

		fileContent, readErr := io.ReadAll(file)
		if readErr != nil {
			writeError(w, "Failed to read file", http.StatusInternalServerError)
			return "", false
		}
		parts = append(parts, string(fileContent))
	}

	if textContent != "" {
		parts = append(parts, textContent)
	}

	var payload dto.ImportPreviewRequest
	if len(parts) == 0 && strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			if payload.CsvText != "" {
				parts = append(parts, payload.CsvText)
			}
			if payload.Url != "" {
				fetched, fetchErr := importer.FetchCSV(r.Context(), payload.Url)
				if fetchErr != nil {
					log.Warn("import url fetch failed", "url", payload.Url, "error", fetchErr)
					writeError(w, "Failed to fetch import URL", http.StatusBadGateway)
					return "", false
				}
				parts = append(parts, fetched)
			}
		}
	}

	if len(parts) == 0 {
		writeError(w, "No CSV content provided", http.StatusBadRequest)
		return "", false
	}

	return strings.Join(parts, "\n"), true
}

func importRanges(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	geofeedID := r.PathValue("id")

	var payload dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rows := make([]importer.CommitRow, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		rows = append(rows, importer.CommitRow{
			Network:     row.Network,
			CountryCode: row.CountryCode,
			Subdivision: row.Subdivision,
			City:        row.City,
			PostalCode:  row.PostalCode,
			Original:    row.Original,
		})
	}

	result, err := importer.CommitImport(importer.RequestContext{UserID: userID}, geofeedID, rows, payload.Finalize)
	if err != nil {
		switch {
		case errors.Is(err, geofeed.ErrGeofeedNotFound):
			writeError(w, "Geofeed not found", http.StatusNotFound)
		case errors.Is(err, geofeed.ErrNoRowsProvided), errors.Is(err, geofeed.ErrNoValidRows), errors.Is(err, importer.ErrTooManyRows):
			writeError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Error("import commit failed", "geofeed", geofeedID, "error", err)
			writeError(w, "Failed to import ranges", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// cancelImport always answers 200. Cancelling something that is already
// gone or already finalized is not a client mistake.
func cancelImport(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	importer.AbandonImport(importer.RequestContext{UserID: userID}, r.PathValue("id"))

	writeJSON(w, http.StatusOK, map[string]string{"message": "Import cancelled"})
}
