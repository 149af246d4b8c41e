package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"geonest/internal/domain"
)

func setupRangeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Geofeed{},
		&domain.IPRange{},
		&domain.ActivityLog{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	DB = db

	t.Cleanup(func() {
		DB = nil
	})

	return db
}

func createRangeTestFeed(t *testing.T, db *gorm.DB, email string, isDraft bool) (domain.User, domain.Geofeed) {
	t.Helper()

	user := domain.User{Email: email, Password: "password123"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	feed := domain.Geofeed{UserID: user.ID, Name: "range-test-feed", IsDraft: isDraft}
	if err := db.Create(&feed).Error; err != nil {
		t.Fatalf("create geofeed: %v", err)
	}

	return user, feed
}

func TestCommitRangesSkipsAlreadyStoredRows(t *testing.T) {
	db := setupRangeTestDB(t)
	user, feed := createRangeTestFeed(t, db, "commit@example.com", false)

	ranges := []domain.IPRange{
		{Network: "10.0.0.0/24", CountryCode: "US", Subdivision: "CA"},
		{Network: "192.0.2.0/24", CountryCode: "DE"},
	}

	inserted, err := CommitRanges(feed.ID, user.ID, ranges, false)
	if err != nil {
		t.Fatalf("first CommitRanges: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("first insert count = %d, want 2", inserted)
	}

	again := []domain.IPRange{
		{Network: "10.0.0.0/24", CountryCode: "US", Subdivision: "CA"},
		{Network: "192.0.2.0/24", CountryCode: "DE"},
	}

	inserted, err = CommitRanges(feed.ID, user.ID, again, false)
	if err != nil {
		t.Fatalf("second CommitRanges: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("second insert count = %d, want 0", inserted)
	}

	count, err := CountRanges(feed.ID, user.ID)
	if err != nil {
		t.Fatalf("CountRanges: %v", err)
	}
	if count != 2 {
		t.Fatalf("stored ranges = %d, want 2", count)
	}
}

func TestCommitRangesFinalizeClearsDraft(t *testing.T) {
	db := setupRangeTestDB(t)
	user, feed := createRangeTestFeed(t, db, "finalize@example.com", true)

	ranges := []domain.IPRange{
		{Network: "10.0.0.0/24", CountryCode: "US"},
	}

	if _, err := CommitRanges(feed.ID, user.ID, ranges, true); err != nil {
		t.Fatalf("CommitRanges: %v", err)
	}

	var reloaded domain.Geofeed
	if err := db.First(&reloaded, "id = ?", feed.ID).Error; err != nil {
		t.Fatalf("reload geofeed: %v", err)
	}
	if reloaded.IsDraft {
		t.Fatal("draft flag should be cleared after a finalizing commit")
	}
}

func TestCommitRangesFinalizeWithoutInserts(t *testing.T) {
	db := setupRangeTestDB(t)
	user, feed := createRangeTestFeed(t, db, "finalize-empty@example.com", true)

	inserted, err := CommitRanges(feed.ID, user.ID, nil, true)
	if err != nil {
		t.Fatalf("CommitRanges: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("insert count = %d, want 0", inserted)
	}

	var reloaded domain.Geofeed
	if err := db.First(&reloaded, "id = ?", feed.ID).Error; err != nil {
		t.Fatalf("reload geofeed: %v", err)
	}
	if reloaded.IsDraft {
		t.Fatal("finalize must clear the draft flag even with nothing to insert")
	}
}

func TestGetRangesOfGeofeedScopedToOwner(t *testing.T) {
	db := setupRangeTestDB(t)
	owner, feed := createRangeTestFeed(t, db, "owner@example.com", false)

	other := domain.User{Email: "other@example.com", Password: "password123"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create second user: %v", err)
	}

	ranges := []domain.IPRange{
		{Network: "10.0.0.0/24", CountryCode: "US"},
	}
	if _, err := CommitRanges(feed.ID, owner.ID, ranges, false); err != nil {
		t.Fatalf("CommitRanges: %v", err)
	}

	mine, err := GetRangesOfGeofeed(feed.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetRangesOfGeofeed owner: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("owner sees %d ranges, want 1", len(mine))
	}

	theirs, err := GetRangesOfGeofeed(feed.ID, other.ID)
	if err != nil {
		t.Fatalf("GetRangesOfGeofeed other user: %v", err)
	}
	if len(theirs) != 0 {
		t.Fatalf("other user sees %d ranges, want 0", len(theirs))
	}

	count, err := CountRanges(feed.ID, other.ID)
	if err != nil {
		t.Fatalf("CountRanges other user: %v", err)
	}
	if count != 0 {
		t.Fatalf("other user count = %d, want 0", count)
	}
}

func TestDeleteStaleDrafts(t *testing.T) {
	db := setupRangeTestDB(t)
	user, staleDraft := createRangeTestFeed(t, db, "stale@example.com", true)

	ranges := []domain.IPRange{
		{Network: "10.0.0.0/24", CountryCode: "US"},
	}
	if _, err := CommitRanges(staleDraft.ID, user.ID, ranges, false); err != nil {
		t.Fatalf("CommitRanges: %v", err)
	}

	freshDraft := domain.Geofeed{UserID: user.ID, Name: "fresh-draft", IsDraft: true}
	if err := db.Create(&freshDraft).Error; err != nil {
		t.Fatalf("create fresh draft: %v", err)
	}

	finalized := domain.Geofeed{UserID: user.ID, Name: "finalized-feed"}
	if err := db.Create(&finalized).Error; err != nil {
		t.Fatalf("create finalized geofeed: %v", err)
	}

	aged := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&domain.Geofeed{}).
		Where("id IN ?", []string{staleDraft.ID, finalized.ID}).
		Update("created_at", aged).Error; err != nil {
		t.Fatalf("age geofeeds: %v", err)
	}

	removed, err := DeleteStaleDrafts(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteStaleDrafts: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	var remaining []domain.Geofeed
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("list geofeeds: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining geofeeds = %d, want 2", len(remaining))
	}
	for _, feed := range remaining {
		if feed.ID == staleDraft.ID {
			t.Fatal("stale draft should have been removed")
		}
	}

	var orphanRanges int64
	if err := db.Model(&domain.IPRange{}).
		Where("geofeed_id = ?", staleDraft.ID).
		Count(&orphanRanges).Error; err != nil {
		t.Fatalf("count orphan ranges: %v", err)
	}
	if orphanRanges != 0 {
		t.Fatalf("orphan ranges = %d, want 0", orphanRanges)
	}
}
