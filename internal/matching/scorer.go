package matching

import (
	"github.com/lumora-app/matchmaker/internal/models"
)

// Weights holds every tunable of the compatibility score. Values come
// from configuration; use DefaultWeights as a baseline.
type Weights struct {
	// MaxAgeGap is the largest absolute age difference two candidates
	// may have, regardless of other attributes.
	MaxAgeGap int

	RegionExact int
	RegionSuper int
	RegionBase  int

	RankClose int // tier distance 0 or 1
	RankNear  int // tier distance 2
	RankFar   int // tier distance 3

	AgeSame int
	AgeOne  int
	AgeTwo  int

	// MinorSameAgeBonus is added when both candidates are minors of
	// the same age. Zero disables the bonus.
	MinorSameAgeBonus int

	// SuperRegions maps a region to its super-region bucket. Two
	// different regions sharing a bucket earn RegionSuper instead of
	// RegionBase.
	SuperRegions map[string]string
}

func DefaultWeights() Weights {
	return Weights{
		MaxAgeGap:   2,
		RegionExact: 40,
		RegionSuper: 25,
		RegionBase:  10,
		RankClose:   30,
		RankNear:    20,
		RankFar:     10,
		AgeSame:     30,
		AgeOne:      25,
		AgeTwo:      15,
	}
}

// genderTable is the hard compatibility policy between declared
// genders. Any combination absent from the table is incompatible,
// which also covers unknown or empty values.
var genderTable = map[string]map[string]bool{
	models.GenderMale: {
		models.GenderFemale: true,
	},
	models.GenderFemale: {
		models.GenderMale: true,
	},
	models.GenderNonBinary: {
		models.GenderNonBinary:      true,
		models.GenderPreferNotToSay: true,
	},
	models.GenderPreferNotToSay: {
		models.GenderNonBinary:      true,
		models.GenderPreferNotToSay: true,
	},
}

// GenderCompatible reports whether two declared genders may match.
func GenderCompatible(a, b string) bool {
	return genderTable[a][b]
}

// Scorer rates the compatibility of two queue entries. It is pure:
// it reads nothing but its two arguments and its immutable weights.
type Scorer struct {
	w Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Score returns a compatibility score in [0,100]. The function is
// symmetric and deterministic. Hard constraints short-circuit to 0:
// incompatible genders, a minor paired with an adult, or an age gap
// beyond MaxAgeGap. Soft terms (region, rank, age proximity) are
// additive and capped at 100.
func (s *Scorer) Score(a, b *models.QueueEntry) int {
	if !GenderCompatible(a.Gender, b.Gender) {
		return 0
	}

	ageGap := a.Age - b.Age
	if ageGap < 0 {
		ageGap = -ageGap
	}

	if a.IsMinor() != b.IsMinor() {
		return 0
	}
	if ageGap > s.w.MaxAgeGap {
		return 0
	}

	score := s.regionScore(a.Region, b.Region) +
		s.rankScore(a.Rank, b.Rank) +
		s.ageScore(a, b, ageGap)

	if score > 100 {
		score = 100
	}
	return score
}

func (s *Scorer) regionScore(a, b string) int {
	if a == b {
		return s.w.RegionExact
	}
	superA, okA := s.w.SuperRegions[a]
	superB, okB := s.w.SuperRegions[b]
	if okA && okB && superA == superB {
		return s.w.RegionSuper
	}
	return s.w.RegionBase
}

func (s *Scorer) rankScore(a, b models.Rank) int {
	switch a.Distance(b) {
	case 0, 1:
		return s.w.RankClose
	case 2:
		return s.w.RankNear
	case 3:
		return s.w.RankFar
	default:
		return 0
	}
}

func (s *Scorer) ageScore(a, b *models.QueueEntry, gap int) int {
	var score int
	switch gap {
	case 0:
		score = s.w.AgeSame
	case 1:
		score = s.w.AgeOne
	case 2:
		score = s.w.AgeTwo
	}
	if gap == 0 && a.IsMinor() && b.IsMinor() {
		score += s.w.MinorSameAgeBonus
	}
	return score
}
