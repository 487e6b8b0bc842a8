package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender constants
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderNonBinary      = "non_binary"
	GenderPreferNotToSay = "prefer_not_to_say"
)

// AdultAge is the first age treated as adult. Minors and adults are
// never matched with each other.
const AdultAge = 18

// Rank is an ordered skill tier. The numeric value is the ordinal used
// when scoring tier distance.
type Rank int

const (
	RankBronze Rank = iota
	RankSilver
	RankGold
	RankPlatinum
	RankDiamond
	RankMaster
	RankChallenger
)

var rankNames = map[Rank]string{
	RankBronze:     "bronze",
	RankSilver:     "silver",
	RankGold:       "gold",
	RankPlatinum:   "platinum",
	RankDiamond:    "diamond",
	RankMaster:     "master",
	RankChallenger: "challenger",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "unknown"
}

// Distance returns the absolute ordinal distance between two tiers.
func (r Rank) Distance(other Rank) int {
	d := int(r) - int(other)
	if d < 0 {
		d = -d
	}
	return d
}

// QueueEntry is one user waiting for a partner.
//
// At most one active entry exists per user. The active flag flips to
// false when the user leaves or gets matched; inactive rows stay
// around until retention cleanup deletes them.
type QueueEntry struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index"`
	TelegramID int64     `gorm:"not null"`
	Age        int       `gorm:"not null"`
	Gender     string    `gorm:"type:varchar(20);not null"`
	Region     string    `gorm:"type:varchar(50);not null;index"`
	Rank       Rank      `gorm:"not null;default:0"`
	Active     bool      `gorm:"not null;default:true;index"`
	EnqueuedAt time.Time `gorm:"autoCreateTime;index"`
}

func (QueueEntry) TableName() string {
	return "matchmaking_queue"
}

// IsMinor reports whether the entry belongs to a user under AdultAge.
func (e *QueueEntry) IsMinor() bool {
	return e.Age < AdultAge
}

// BeforeCreate hook for validation
func (e *QueueEntry) BeforeCreate(tx *gorm.DB) error {
	validGenders := map[string]bool{
		GenderMale:           true,
		GenderFemale:         true,
		GenderNonBinary:      true,
		GenderPreferNotToSay: true,
	}
	if !validGenders[e.Gender] {
		return gorm.ErrInvalidData
	}

	if e.Age < 13 || e.Age > 100 {
		return gorm.ErrInvalidData
	}

	if e.UserID == 0 {
		return gorm.ErrInvalidData
	}

	return nil
}
