package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Geofeed is a named, user-owned collection of IP ranges, exportable as one
// RFC 8805 CSV file. A geofeed created by the import workflow starts as a
// draft and only the commit path (finalize) clears the flag; a draft whose
// import is cancelled is deleted together with its ranges.
type Geofeed struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:255"`
	IsDraft   bool   `gorm:"not null;default:false"`
	Published bool   `gorm:"not null;default:false"`

	Ranges    []IPRange `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (g *Geofeed) BeforeCreate(_ *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
