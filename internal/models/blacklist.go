package models

import "time"

// BlacklistEntry records that two users must never be matched with
// each other. The pair is stored in canonical (low, high) order so the
// block is symmetric and a single unique index covers both directions.
type BlacklistEntry struct {
	ID         uint      `gorm:"primaryKey"`
	LowUserID  uint      `gorm:"not null;index:idx_blacklist_pair,unique"`
	HighUserID uint      `gorm:"not null;index:idx_blacklist_pair,unique"`
	Reason     string    `gorm:"type:varchar(500)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (BlacklistEntry) TableName() string {
	return "blacklist_entries"
}
