package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/lumora-app/matchmaker/internal/matching"
	"github.com/lumora-app/matchmaker/internal/models"
	"github.com/lumora-app/matchmaker/internal/repositories"
	"github.com/lumora-app/matchmaker/internal/services"

	"github.com/stretchr/testify/assert"
)

// panicOncePairingStore panics on the first persistence attempt and
// behaves normally afterwards.
type panicOncePairingStore struct {
	real services.PairingStore

	mu       sync.Mutex
	panicked bool
}

func (s *panicOncePairingStore) CreatePairing(userAID, userBID uint, score int) (*models.Pairing, error) {
	s.mu.Lock()
	if !s.panicked {
		s.panicked = true
		s.mu.Unlock()
		panic("simulated pairing store panic")
	}
	s.mu.Unlock()
	return s.real.CreatePairing(userAID, userBID, score)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestScheduler_TriggerNowRunsPass(t *testing.T) {
	h := newHarness(t, nil)

	enqueue(t, h, 1, 20, models.GenderFemale, "region-x", models.RankGold)
	enqueue(t, h, 2, 21, models.GenderMale, "region-x", models.RankGold)

	// Long interval so only the explicit trigger fires.
	scheduler := services.NewScheduler(h.svc, time.Hour, time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	scheduler.TriggerNow()

	drained := waitFor(t, 2*time.Second, func() bool {
		snapshot, err := h.queueRepo.SnapshotActive()
		return err == nil && len(snapshot) == 0
	})
	assert.True(t, drained, "expected the triggered pass to drain the queue")
}

func TestScheduler_PeriodicPasses(t *testing.T) {
	h := newHarness(t, nil)

	enqueue(t, h, 1, 20, models.GenderFemale, "region-x", models.RankGold)
	enqueue(t, h, 2, 21, models.GenderMale, "region-x", models.RankGold)

	scheduler := services.NewScheduler(h.svc, 10*time.Millisecond, time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	drained := waitFor(t, 2*time.Second, func() bool {
		snapshot, err := h.queueRepo.SnapshotActive()
		return err == nil && len(snapshot) == 0
	})
	assert.True(t, drained, "expected a periodic pass to drain the queue")
}

func TestScheduler_SurvivesPanickingPass(t *testing.T) {
	db := setupTestDB(t)
	store := &panicOncePairingStore{real: repositories.NewPairingRepository(db)}

	h := &testHarness{db: db, queueRepo: repositories.NewQueueRepository(db), notifier: newRecordingNotifier()}
	h.svc = services.NewMatchService(
		h.queueRepo,
		repositories.NewBlacklistRepository(db),
		store,
		matching.NewScorer(matching.DefaultWeights()),
		h.notifier,
		true,
	)

	enqueue(t, h, 1, 20, models.GenderFemale, "region-x", models.RankGold)
	enqueue(t, h, 2, 21, models.GenderMale, "region-x", models.RankGold)

	scheduler := services.NewScheduler(h.svc, 10*time.Millisecond, time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	// First pass panics inside persistence; the scheduler must keep
	// going and a later pass completes the match.
	drained := waitFor(t, 2*time.Second, func() bool {
		snapshot, err := h.queueRepo.SnapshotActive()
		return err == nil && len(snapshot) == 0
	})
	assert.True(t, drained, "expected scheduling to continue after a panicking pass")

	var pairings int64
	assert.NoError(t, db.Model(&models.Pairing{}).Count(&pairings).Error)
	assert.Equal(t, int64(1), pairings)
}

func TestScheduler_StopWaitsForLoop(t *testing.T) {
	h := newHarness(t, nil)

	scheduler := services.NewScheduler(h.svc, 10*time.Millisecond, time.Hour)
	scheduler.Start()

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return")
	}
}
