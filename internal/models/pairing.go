package models

import "time"

// Pairing is a persisted match between two users, with the score that
// produced it. Downstream concerns (chat channel binding etc.) belong
// to other services.
type Pairing struct {
	ID        uint      `gorm:"primaryKey"`
	UserAID   uint      `gorm:"not null;index"`
	UserBID   uint      `gorm:"not null;index"`
	Score     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Pairing) TableName() string {
	return "pairings"
}
