package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumora-app/matchmaker/internal/matching"
	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/internal/notify"
	"github.com/lumora-app/matchmaker/internal/repositories"
	"github.com/lumora-app/matchmaker/pkg/errors"
	"github.com/lumora-app/matchmaker/pkg/logger"
)

// PairingStore persists accepted pairs. Satisfied by
// repositories.PairingRepository.
type PairingStore interface {
	CreatePairing(userAID, userBID uint, score int) (*models.Pairing, error)
}

// MatchService runs the matching pipeline. It is the only component
// allowed to flip queue entries to matched, and it only does so
// inside a pass.
type MatchService struct {
	queueRepo     *repositories.QueueRepository
	blacklistRepo *repositories.BlacklistRepository
	pairingStore  PairingStore
	scorer        *matching.Scorer
	notifier      notify.Notifier

	queueEnabled atomic.Bool

	// passMu serializes passes; overlapping triggers wait their turn.
	passMu sync.Mutex
}

func NewMatchService(
	queueRepo *repositories.QueueRepository,
	blacklistRepo *repositories.BlacklistRepository,
	pairingStore PairingStore,
	scorer *matching.Scorer,
	notifier notify.Notifier,
	queueEnabled bool,
) *MatchService {
	s := &MatchService{
		queueRepo:     queueRepo,
		blacklistRepo: blacklistRepo,
		pairingStore:  pairingStore,
		scorer:        scorer,
		notifier:      notifier,
	}
	s.queueEnabled.Store(queueEnabled)
	return s
}

// Enqueue puts a user in the waiting queue. Rejected while the queue
// is disabled; a disabled queue does not abort passes already running.
func (s *MatchService) Enqueue(entry *models.QueueEntry) error {
	if !s.queueEnabled.Load() {
		return errors.New(errors.ErrCodeQueueDisabled, "matchmaking queue is disabled")
	}
	return s.queueRepo.Enqueue(entry)
}

// Leave removes a user from the queue. Idempotent.
func (s *MatchService) Leave(userID uint) error {
	return s.queueRepo.Dequeue(userID)
}

// SetQueueEnabled toggles acceptance of new enqueues.
func (s *MatchService) SetQueueEnabled(enabled bool) {
	s.queueEnabled.Store(enabled)
	logger.Info("Queue toggle changed", "enabled", enabled)
}

// RunMatchingPass executes one full pass: snapshot the queue, generate
// pairs, persist them, remove matched users, notify everyone from the
// snapshot. Returns the pairings that were actually created.
//
// A persistence failure on one pair is logged and that pair skipped;
// the rest of the pass continues. Notification failures never
// propagate — the notifier logs them itself.
func (s *MatchService) RunMatchingPass() ([]models.Pairing, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	snapshot, err := s.queueRepo.SnapshotActive()
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, nil
	}

	index, err := s.blacklistRepo.SnapshotIndex()
	if err != nil {
		return nil, err
	}

	// Scoring and sorting run against the private snapshot copy, so
	// the queue lock is only held inside the store calls above/below.
	proposed := matching.Generate(snapshot, index, s.scorer)

	var created []models.Pairing
	var matchedIDs []uint
	matchedBy := make(map[uint]models.Pairing)
	skipped := 0

	for _, p := range proposed {
		pairing, err := s.pairingStore.CreatePairing(p.A.UserID, p.B.UserID, p.Score)
		if err != nil {
			// One bad pair must not sink the rest of the pass.
			logger.Error("Failed to persist pairing",
				"user_a", p.A.UserID, "user_b", p.B.UserID, "error", err)
			skipped++
			continue
		}
		created = append(created, *pairing)
		matchedIDs = append(matchedIDs, p.A.UserID, p.B.UserID)
		matchedBy[p.A.UserID] = *pairing
		matchedBy[p.B.UserID] = *pairing
	}

	if err := s.queueRepo.RemoveMatched(matchedIDs); err != nil {
		logger.Error("Failed to remove matched users from queue", "error", err)
		return created, err
	}

	for _, entry := range snapshot {
		if pairing, ok := matchedBy[entry.UserID]; ok {
			s.notifier.NotifyMatched(entry, pairing)
		} else {
			s.notifier.NotifyUnmatched(entry)
		}
	}

	logger.Info("Matching pass complete",
		"candidates", len(snapshot),
		"pairings", len(created),
		"skipped", skipped)

	return created, nil
}

// PurgeInactive deletes inactive queue rows older than the cutoff.
// Failures are logged; retention cleanup is best-effort.
func (s *MatchService) PurgeInactive(olderThan time.Time) {
	removed, err := s.queueRepo.PurgeInactive(olderThan)
	if err != nil {
		logger.Error("Failed to purge inactive queue entries", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("Purged inactive queue entries", "count", removed)
	}
}
