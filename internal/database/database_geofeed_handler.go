package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"geonest/internal/api/dto"
	"geonest/internal/domain"
)

// CreateGeofeed stores the geofeed and returns it with the generated ID set.
func CreateGeofeed(geofeed *domain.Geofeed) error {
	return DB.Create(geofeed).Error
}

// GetUserGeofeed returns nil when the geofeed does not exist or belongs to
// another user. Ownership is part of the lookup so callers cannot leak
// other tenants' feeds by guessing IDs.
func GetUserGeofeed(geofeedID string, userID uint) (*domain.Geofeed, error) {
	var geofeed domain.Geofeed
	err := DB.Where("id = ? AND user_id = ?", geofeedID, userID).First(&geofeed).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &geofeed, nil
}

func ListUserGeofeeds(userID uint) ([]dto.GeofeedInfo, error) {
	var infos []dto.GeofeedInfo

	err := DB.Model(&domain.Geofeed{}).
		Select("geofeeds.id, geofeeds.name, geofeeds.is_draft, geofeeds.published, geofeeds.created_at, COUNT(ip_ranges.id) AS range_count").
		Joins("LEFT JOIN ip_ranges ON ip_ranges.geofeed_id = geofeeds.id").
		Where("geofeeds.user_id = ?", userID).
		Group("geofeeds.id").
		Order("geofeeds.created_at DESC").
		Scan(&infos).Error
	if err != nil {
		return nil, err
	}

	return infos, nil
}

func RenameGeofeed(geofeedID string, userID uint, name string) error {
	return DB.Model(&domain.Geofeed{}).
		Where("id = ? AND user_id = ?", geofeedID, userID).
		Update("name", name).Error
}

func SetDraftFlag(geofeedID string, isDraft bool) error {
	return DB.Model(&domain.Geofeed{}).
		Where("id = ?", geofeedID).
		Update("is_draft", isDraft).Error
}

func SetPublishedFlag(geofeedID string, published bool) error {
	return DB.Model(&domain.Geofeed{}).
		Where("id = ?", geofeedID).
		Update("published", published).Error
}

// DeleteGeofeed removes the geofeed and all its ranges in one transaction.
func DeleteGeofeed(geofeedID string, userID uint) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer transactionRollbackHandler(tx)

	if err := tx.Where("geofeed_id = ? AND user_id = ?", geofeedID, userID).
		Delete(&domain.IPRange{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("id = ? AND user_id = ?", geofeedID, userID).
		Delete(&domain.Geofeed{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// DeleteStaleDrafts removes draft geofeeds older than cutoff together with
// any ranges they accumulated. Returns how many drafts were removed.
func DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	var staleIDs []string
	err := DB.WithContext(ctx).Model(&domain.Geofeed{}).
		Where("is_draft = TRUE AND created_at < ?", cutoff).
		Pluck("id", &staleIDs).Error
	if err != nil {
		return 0, err
	}
	if len(staleIDs) == 0 {
		return 0, nil
	}

	tx := DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer transactionRollbackHandler(tx)

	if err := tx.Where("geofeed_id IN ?", staleIDs).Delete(&domain.IPRange{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	result := tx.Where("id IN ?", staleIDs).Delete(&domain.Geofeed{})
	if result.Error != nil {
		tx.Rollback()
		return 0, result.Error
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return result.RowsAffected, nil
}

func ListPublishedGeofeeds() ([]domain.Geofeed, error) {
	var geofeeds []domain.Geofeed
	if err := DB.Where("published = TRUE").Find(&geofeeds).Error; err != nil {
		return nil, err
	}
	return geofeeds, nil
}
