package matching

import (
	"sort"

	"github.com/lumora-app/matchmaker/internal/models"
)

// PotentialPairing is a scored candidate pair. It exists only for the
// duration of one matching pass and is never persisted.
type PotentialPairing struct {
	A     *models.QueueEntry
	B     *models.QueueEntry
	Score int
}

// BlockSet answers whether two users are forbidden from matching.
type BlockSet interface {
	Blocked(userA, userB uint) bool
}

// PairSet is a canonical-pair set implementing BlockSet with O(1)
// lookups. Keys are stored as (low, high) user ID pairs.
type PairSet map[[2]uint]struct{}

func NewPairSet() PairSet {
	return make(PairSet)
}

func (ps PairSet) Add(userA, userB uint) {
	ps[pairKey(userA, userB)] = struct{}{}
}

func (ps PairSet) Blocked(userA, userB uint) bool {
	_, ok := ps[pairKey(userA, userB)]
	return ok
}

func pairKey(userA, userB uint) [2]uint {
	if userA > userB {
		userA, userB = userB, userA
	}
	return [2]uint{userA, userB}
}

// Generate turns a queue snapshot into a disjoint set of accepted
// pairs, greedily picking the highest-scoring pairs first. It never
// mutates the snapshot; applying the result to the queue is the
// caller's job.
//
// All unordered pairs are enumerated, so a pass costs O(n²) in the
// snapshot size. Fine for the small bounded queues this runs on; a
// bigger deployment would need bucketing before scoring.
//
// Output is deterministic: pairs are sorted by score descending, with
// ties broken on canonical (low, high) user ID order, then accepted
// greedily while skipping any pair touching an already-consumed user.
func Generate(candidates []models.QueueEntry, blocked BlockSet, scorer *Scorer) []PotentialPairing {
	var scored []PotentialPairing
	for i := range candidates {
		for j := i + 1; j < len(candidates); j++ {
			a, b := &candidates[i], &candidates[j]
			if blocked != nil && blocked.Blocked(a.UserID, b.UserID) {
				continue
			}
			score := scorer.Score(a, b)
			if score == 0 {
				continue
			}
			scored = append(scored, PotentialPairing{A: a, B: b, Score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ki, kj := pairKey(scored[i].A.UserID, scored[i].B.UserID), pairKey(scored[j].A.UserID, scored[j].B.UserID)
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})

	consumed := make(map[uint]bool, len(candidates))
	var accepted []PotentialPairing
	for _, p := range scored {
		if consumed[p.A.UserID] || consumed[p.B.UserID] {
			continue
		}
		consumed[p.A.UserID] = true
		consumed[p.B.UserID] = true
		accepted = append(accepted, p)
	}

	return accepted
}
