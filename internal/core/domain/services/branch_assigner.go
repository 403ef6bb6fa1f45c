package services

import (
	"strings"

	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
)

// Service-area match weights. A zone reference is the strongest signal,
// then district, then city; weights within one area are additive.
const (
	zoneMatchScore     = 4
	districtMatchScore = 2
	cityMatchScore     = 1
)

// DeliveryContext carries the parts of an order's delivery address that
// branch assignment scores against: the optional delivery-zone reference
// and the textual city/district descriptors.
type DeliveryContext struct {
	ZoneID   *kernel.UUID
	City     string
	District string
}

// BranchAssigner is the pure assignment policy: given a delivery context and
// the candidate branches, it computes the single best-matching branch.
// It is deterministic and side-effect free, so suggestions can be unit tested
// and tie-breaks audited.
//
// Tie-break rule: when multiple branches score equally, the branch with the
// lexicographically lowest code wins. This is a documented, stable policy
// rather than an incidental iteration order.
type BranchAssigner struct{}

// NewBranchAssigner creates a new BranchAssigner instance.
func NewBranchAssigner() BranchAssigner {
	return BranchAssigner{}
}

// FindBestBranch scores all active branches by service-area fit against the
// delivery context and returns the best match.
//
// Returns nil when no active branch matches at all; this is an expected,
// common outcome (the caller falls back to a default branch), not a failure.
func (a BranchAssigner) FindBestBranch(dc DeliveryContext, branches []*branch.Branch) *branch.Branch {
	var (
		best      *branch.Branch
		bestScore int
	)

	for _, b := range branches {
		if b == nil || !b.IsActive() {
			continue
		}

		score := a.scoreBranch(dc, b)
		if score == 0 {
			continue
		}

		switch {
		case score > bestScore:
			best, bestScore = b, score
		case score == bestScore && b.Code() < best.Code():
			best = b
		}
	}

	return best
}

// scoreBranch returns the best additive match score across the branch's
// service areas, or 0 when nothing matches.
func (a BranchAssigner) scoreBranch(dc DeliveryContext, b *branch.Branch) int {
	best := 0
	for _, area := range b.ServiceAreas() {
		score := 0
		if dc.ZoneID != nil && area.ZoneID != nil && dc.ZoneID.IsEqual(*area.ZoneID) {
			score += zoneMatchScore
		}
		if dc.District != "" && strings.EqualFold(dc.District, area.District) {
			score += districtMatchScore
		}
		if dc.City != "" && strings.EqualFold(dc.City, area.City) {
			score += cityMatchScore
		}
		if score > best {
			best = score
		}
	}
	return best
}
