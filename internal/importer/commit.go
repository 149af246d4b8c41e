package importer

import (
	"fmt"
	"strings"

	"geonest/internal/activity"
	"geonest/internal/config"
	"geonest/internal/database"
	"geonest/internal/domain"
	"geonest/internal/geofeed"
)

// CommitRow is one row the user chose to import after the preview.
type CommitRow struct {
	Network     string
	CountryCode string
	Subdivision string
	City        string
	PostalCode  string
	Original    string
}

type RowError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Value  string `json:"value"`
}

type CommitResult struct {
	ImportedCount int        `json:"imported_count"`
	ErrorCount    int        `json:"error_count"`
	SkippedCount  int        `json:"skipped_count"`
	ConflictCount int        `json:"conflict_count"`
	Errors        []RowError `json:"errors,omitempty"`
}

// CommitImport validates the submitted rows a second time and writes the
// survivors. The preview is advisory; clients can tamper with its output, so
// every rule is enforced again here. When finalize is set the draft flag is
// cleared in the same transaction as the inserts.
//
// Resubmitting an already imported file is not an error: every row is
// skipped as a duplicate and the call reports zero inserts. The request is
// rejected outright only when every submitted row fails validation.
func CommitImport(rc RequestContext, geofeedID string, rows []CommitRow, finalize bool) (CommitResult, error) {
	feed, err := database.GetUserGeofeed(geofeedID, rc.UserID)
	if err != nil {
		return CommitResult{}, err
	}
	if feed == nil {
		return CommitResult{}, geofeed.ErrGeofeedNotFound
	}

	if len(rows) == 0 {
		return CommitResult{}, geofeed.ErrNoRowsProvided
	}
	if uint32(len(rows)) > config.GetConfig().Import.MaxRows {
		return CommitResult{}, ErrTooManyRows
	}

	stored, err := database.GetRangesOfGeofeed(geofeedID, rc.UserID)
	if err != nil {
		return CommitResult{}, err
	}

	valid, result := classifyRows(rows, stored)
	if result.ErrorCount == len(rows) {
		return result, geofeed.ErrNoValidRows
	}

	inserted, err := database.CommitRanges(geofeedID, rc.UserID, valid, finalize)
	if err != nil {
		return result, err
	}

	result.ImportedCount = int(inserted)
	// Rows a concurrent commit landed first count as skipped, not failed.
	result.SkippedCount += len(valid) - int(inserted)

	message := fmt.Sprintf("Imported %d ranges into %q", result.ImportedCount, feed.Name)
	if finalize && feed.IsDraft {
		message += " and finalized draft"
	}
	activity.Record(rc.UserID, "geofeed.import", message, feed.ID, feed.Name)

	return result, nil
}

// classifyRows replays validation and dedup over the submitted rows. Invalid
// rows become errors, duplicates become skips with a row entry naming the
// dropped line, and rows whose network is already stored under a different
// key are counted as conflicts but kept. Only validation failures count
// toward ErrorCount; duplicate entries exist so the caller can tell which
// rows were skipped.
func classifyRows(rows []CommitRow, stored []domain.IPRange) ([]domain.IPRange, CommitResult) {
	var result CommitResult

	existingKeys := make(map[string]struct{}, len(stored))
	existingNetworks := make(map[string]struct{}, len(stored))
	for _, r := range stored {
		record := r.Record()
		existingKeys[record.Key()] = struct{}{}
		existingNetworks[record.Network] = struct{}{}
	}

	seenInBatch := make(map[string]struct{}, len(rows))
	valid := make([]domain.IPRange, 0, len(rows))

	for i, row := range rows {
		value := row.Original
		if value == "" {
			value = row.Network
		}

		if !geofeed.IsValidCIDR(row.Network) {
			result.ErrorCount++
			result.Errors = append(result.Errors, RowError{Index: i, Reason: geofeed.ReasonInvalidCIDR, Value: value})
			continue
		}

		country := geofeed.NormalizeAlpha2Code(row.CountryCode)
		if !geofeed.IsValidAlpha2Code(country) {
			result.ErrorCount++
			result.Errors = append(result.Errors, RowError{Index: i, Reason: geofeed.ReasonInvalidAlpha2, Value: value})
			continue
		}

		record := geofeed.RangeRecord{
			Network:     strings.TrimSpace(row.Network),
			CountryCode: country,
			Subdivision: strings.TrimSpace(row.Subdivision),
			City:        strings.TrimSpace(row.City),
			PostalCode:  strings.TrimSpace(row.PostalCode),
		}
		key := record.Key()

		if _, dup := seenInBatch[key]; dup {
			result.SkippedCount++
			result.Errors = append(result.Errors, RowError{Index: i, Reason: geofeed.ReasonBatchDuplicate, Value: value})
			continue
		}
		seenInBatch[key] = struct{}{}

		if _, dup := existingKeys[key]; dup {
			result.SkippedCount++
			result.Errors = append(result.Errors, RowError{Index: i, Reason: geofeed.ReasonExistingDuplicate, Value: value})
			continue
		}

		if _, conflict := existingNetworks[record.Network]; conflict {
			result.ConflictCount++
		}

		valid = append(valid, domain.IPRange{
			Network:     record.Network,
			CountryCode: record.CountryCode,
			Subdivision: record.Subdivision,
			City:        record.City,
			PostalCode:  record.PostalCode,
		})
	}

	return valid, result
}
