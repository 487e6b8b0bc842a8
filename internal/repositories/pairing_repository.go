package repositories

import (
	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/pkg/errors"
	"gorm.io/gorm"
)

type PairingRepository struct {
	db *gorm.DB
}

func NewPairingRepository(db *gorm.DB) *PairingRepository {
	return &PairingRepository{db: db}
}

// CreatePairing persists one accepted pair with the score that
// produced it.
func (r *PairingRepository) CreatePairing(userAID, userBID uint, score int) (*models.Pairing, error) {
	pairing := &models.Pairing{
		UserAID: userAID,
		UserBID: userBID,
		Score:   score,
	}

	if err := r.db.Create(pairing).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create pairing")
	}

	return pairing, nil
}

// GetPairingByID retrieves a persisted pairing.
func (r *PairingRepository) GetPairingByID(id uint) (*models.Pairing, error) {
	var pairing models.Pairing
	result := r.db.First(&pairing, id)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "pairing not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get pairing")
	}
	return &pairing, nil
}

// ListRecentPairings returns the newest pairings, most recent first.
func (r *PairingRepository) ListRecentPairings(limit int) ([]models.Pairing, error) {
	var pairings []models.Pairing
	result := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&pairings)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list pairings")
	}
	return pairings, nil
}
