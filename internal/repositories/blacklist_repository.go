package repositories

import (
	"github.com/lumora-app/matchmaker/internal/matching"
	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/internal/security"
	"github.com/lumora-app/matchmaker/pkg/errors"
	"gorm.io/gorm"
)

// BlacklistRepository maintains the symmetric set of user pairs that
// must never be matched. Pairs are stored canonically as (low, high),
// so lookups work regardless of argument order.
type BlacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Add records a block between two users. Self-pairs are rejected and
// duplicates fail with ALREADY_EXISTS.
func (r *BlacklistRepository) Add(userA, userB uint, reason string) error {
	if userA == userB {
		return errors.New(errors.ErrCodeValidationFailed, "cannot blacklist a user against themselves")
	}

	low, high := canonicalPair(userA, userB)

	var existing models.BlacklistEntry
	result := r.db.Where("low_user_id = ? AND high_user_id = ?", low, high).First(&existing)
	if result.Error == nil {
		return errors.New(errors.ErrCodeAlreadyExists, "pair already blacklisted")
	}
	if result.Error != gorm.ErrRecordNotFound {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check blacklist")
	}

	entry := &models.BlacklistEntry{
		LowUserID:  low,
		HighUserID: high,
		Reason:     security.SanitizeText(reason),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add blacklist entry")
	}

	return nil
}

// Remove deletes the block between two users, if any.
func (r *BlacklistRepository) Remove(userA, userB uint) error {
	low, high := canonicalPair(userA, userB)
	result := r.db.Where("low_user_id = ? AND high_user_id = ?", low, high).
		Delete(&models.BlacklistEntry{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove blacklist entry")
	}
	return nil
}

// IsBlocked reports whether the two users are blacklisted against
// each other, in either direction.
func (r *BlacklistRepository) IsBlocked(userA, userB uint) (bool, error) {
	low, high := canonicalPair(userA, userB)
	var count int64
	result := r.db.Model(&models.BlacklistEntry{}).
		Where("low_user_id = ? AND high_user_id = ?", low, high).
		Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check blacklist")
	}
	return count > 0, nil
}

// SnapshotIndex loads every blacklisted pair into an in-memory set so
// a matching pass can filter pairs without further queries.
func (r *BlacklistRepository) SnapshotIndex() (matching.PairSet, error) {
	var entries []models.BlacklistEntry
	if err := r.db.Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load blacklist")
	}

	index := matching.NewPairSet()
	for _, entry := range entries {
		index.Add(entry.LowUserID, entry.HighUserID)
	}
	return index, nil
}

func canonicalPair(userA, userB uint) (uint, uint) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}
