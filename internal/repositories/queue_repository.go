package repositories

import (
	"sync"
	"time"

	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/pkg/errors"
	"gorm.io/gorm"
)

// QueueRepository owns the QueueEntry lifecycle. A single mutex
// serializes every operation, so a matching pass that snapshots and
// later removes entries never interleaves with a half-applied
// enqueue or dequeue on the same rows.
type QueueRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Enqueue inserts an active entry for the user. Fails with
// ALREADY_EXISTS when the user already has an active entry.
func (r *QueueRepository) Enqueue(entry *models.QueueEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	result := r.db.Model(&models.QueueEntry{}).
		Where("user_id = ? AND active = ?", entry.UserID, true).
		Count(&count)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check queue")
	}
	if count > 0 {
		return errors.New(errors.ErrCodeAlreadyExists, "user already in matchmaking queue")
	}

	entry.Active = true
	if err := r.db.Create(entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add to queue")
	}

	return nil
}

// Dequeue deactivates the user's active entry. Calling it for a user
// who is not in the queue is a no-op.
func (r *QueueRepository) Dequeue(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.db.Model(&models.QueueEntry{}).
		Where("user_id = ? AND active = ?", userID, true).
		Update("active", false)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove from queue")
	}
	return nil
}

// SnapshotActive returns all active entries in enqueue order. The
// returned slice is a private copy; callers may score and sort it
// without holding any lock.
func (r *QueueRepository) SnapshotActive() ([]models.QueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []models.QueueEntry
	result := r.db.Where("active = ?", true).
		Order("enqueued_at ASC, id ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to snapshot queue")
	}
	return entries, nil
}

// RemoveMatched flips exactly the given users' active entries to
// inactive in one statement. Users who left between snapshot and
// removal are already inactive, so the flip degrades to a no-op for
// them.
func (r *QueueRepository) RemoveMatched(userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.db.Model(&models.QueueEntry{}).
		Where("user_id IN ? AND active = ?", userIDs, true).
		Update("active", false)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove matched users")
	}
	return nil
}

// PurgeInactive deletes inactive rows older than the cutoff and
// returns how many were removed. Active rows are never touched.
func (r *QueueRepository) PurgeInactive(olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := r.db.Where("active = ? AND enqueued_at < ?", false, olderThan).
		Delete(&models.QueueEntry{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to purge inactive entries")
	}
	return result.RowsAffected, nil
}

// IsUserQueued checks whether the user has an active entry.
func (r *QueueRepository) IsUserQueued(userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	result := r.db.Model(&models.QueueEntry{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check queue")
	}
	return count > 0, nil
}
