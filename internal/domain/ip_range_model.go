package domain

import (
	"crypto/sha256"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geonest/internal/geofeed"
)

// IPRange is one stored geofeed row. KeyHash is the SHA-256 of the
// normalized reconciliation key; its unique index scoped to
// (geofeed_id, user_id) is the authoritative duplicate guard — two racing
// imports cannot both insert the same row, whatever their preview said.
type IPRange struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	GeofeedID   string `gorm:"type:uuid;not null;uniqueIndex:idx_range_identity"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_range_identity;index"`
	Network     string `gorm:"size:64;not null"`
	CountryCode string `gorm:"size:2;not null"`
	Subdivision string `gorm:"default:''"`
	City        string `gorm:"default:''"`
	PostalCode  string `gorm:"default:''"`
	KeyHash     []byte `gorm:"type:bytea;size:32;not null;uniqueIndex:idx_range_identity"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (r *IPRange) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.GenerateKeyHash()
	return nil
}

func (r *IPRange) BeforeSave(_ *gorm.DB) error {
	r.GenerateKeyHash()
	return nil
}

// NormalizedKey returns the five-field reconciliation key of the row.
func (r *IPRange) NormalizedKey() string {
	return geofeed.NormalizeKey(r.Network, r.CountryCode, r.Subdivision, r.City, r.PostalCode)
}

// GenerateKeyHash recomputes KeyHash from the current field values.
func (r *IPRange) GenerateKeyHash() {
	hash := sha256.Sum256([]byte(r.NormalizedKey()))
	r.KeyHash = hash[:]
}

// Record converts the row to the engine's value shape.
func (r *IPRange) Record() geofeed.RangeRecord {
	return geofeed.RangeRecord{
		Network:     r.Network,
		CountryCode: r.CountryCode,
		Subdivision: r.Subdivision,
		City:        r.City,
		PostalCode:  r.PostalCode,
	}
}
