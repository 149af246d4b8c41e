package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geonest/internal/domain"
)

const (
	batchThreshold    = 8191  // Use batches when exceeding this number of records
	maxParamsPerBatch = 65534 // Conservative default (PostgreSQL's limit) - 1
	minBatchSize      = 100   // Minimum batch size to maintain efficiency
)

func GetRangesOfGeofeed(geofeedID string, userID uint) ([]domain.IPRange, error) {
	var ranges []domain.IPRange
	err := DB.Where("geofeed_id = ? AND user_id = ?", geofeedID, userID).
		Order("created_at ASC, id ASC").
		Find(&ranges).Error
	if err != nil {
		return nil, err
	}
	return ranges, nil
}

// CommitRanges inserts the given ranges and, when finalize is set, clears
// the draft flag in the same transaction. The unique key-hash index absorbs
// rows a concurrent import already committed, so the returned count can be
// lower than len(ranges).
func CommitRanges(geofeedID string, userID uint, ranges []domain.IPRange, finalize bool) (int64, error) {
	if len(ranges) == 0 && !finalize {
		return 0, nil
	}

	for i := range ranges {
		ranges[i].GeofeedID = geofeedID
		ranges[i].UserID = userID
	}

	batchSize := calculateBatchSize(len(ranges))

	tx := DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer transactionRollbackHandler(tx)

	var inserted int64
	if len(ranges) > 0 {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "geofeed_id"},
				{Name: "user_id"},
				{Name: "key_hash"},
			},
			DoNothing: true,
		}).CreateInBatches(ranges, batchSize)
		if result.Error != nil {
			tx.Rollback()
			return 0, result.Error
		}
		inserted = result.RowsAffected
	}

	if finalize {
		if err := tx.Model(&domain.Geofeed{}).
			Where("id = ? AND user_id = ?", geofeedID, userID).
			Update("is_draft", false).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return inserted, nil
}

// UpdateRange rewrites the editable fields of one range. The BeforeSave hook
// recomputes the key hash, so a conflicting edit fails on the unique index.
func UpdateRange(rangeID string, userID uint, updated domain.IPRange) error {
	var existing domain.IPRange
	err := DB.Where("id = ? AND user_id = ?", rangeID, userID).First(&existing).Error
	if err != nil {
		return err
	}

	existing.Network = updated.Network
	existing.CountryCode = updated.CountryCode
	existing.Subdivision = updated.Subdivision
	existing.City = updated.City
	existing.PostalCode = updated.PostalCode

	return DB.Save(&existing).Error
}

func GetUserRange(rangeID string, userID uint) (*domain.IPRange, error) {
	var r domain.IPRange
	err := DB.Where("id = ? AND user_id = ?", rangeID, userID).First(&r).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func DeleteRange(rangeID string, userID uint) error {
	return DB.Where("id = ? AND user_id = ?", rangeID, userID).
		Delete(&domain.IPRange{}).Error
}

func BulkDeleteRanges(geofeedID string, userID uint, rangeIDs []string) (int64, error) {
	if len(rangeIDs) == 0 {
		return 0, nil
	}

	result := DB.Where("geofeed_id = ? AND user_id = ? AND id IN ?", geofeedID, userID, rangeIDs).
		Delete(&domain.IPRange{})
	return result.RowsAffected, result.Error
}

func CountRanges(geofeedID string, userID uint) (int64, error) {
	var count int64
	err := DB.Model(&domain.IPRange{}).
		Where("geofeed_id = ? AND user_id = ?", geofeedID, userID).
		Count(&count).Error
	return count, err
}

func calculateBatchSize(rangeCount int) int {
	if rangeCount <= batchThreshold {
		return rangeCount
	}

	numFields, err := getNumDatabaseFields(domain.IPRange{}, DB)
	if err != nil || numFields == 0 {
		return minBatchSize // Fallback to safe minimum
	}

	batchSize := maxParamsPerBatch / numFields
	return clamp(batchSize, minBatchSize, rangeCount)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
