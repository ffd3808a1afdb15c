package groupbuy

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGroupClosed       = errors.New("group buy is not active")
	ErrGroupFull         = errors.New("group buy already reached its target")
	ErrInvalidTarget     = errors.New("target count must be at least 1")
	ErrInvalidMemberLoad = errors.New("member count cannot exceed target")
)

// GroupBuy is a cohort of buyers jointly purchasing one product. At most one
// active group exists per product; joining the product means joining that
// group.
type GroupBuy struct {
	id           uuid.UUID
	productID    uuid.UUID
	currentCount int
	targetCount  int
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewGroupBuy opens an empty active group with the product's minimum group
// size as its target.
func NewGroupBuy(productID uuid.UUID, targetCount int) (*GroupBuy, error) {
	if targetCount < 1 {
		return nil, ErrInvalidTarget
	}
	return &GroupBuy{
		id:          uuid.New(),
		productID:   productID,
		targetCount: targetCount,
		isActive:    true,
	}, nil
}

// NewPrefilledGroup builds a group already holding memberCount reassigned
// orders, as produced by rearrangement. A group filled up to its target is
// born completed (inactive).
func NewPrefilledGroup(productID uuid.UUID, targetCount, memberCount int) (*GroupBuy, error) {
	if targetCount < 1 {
		return nil, ErrInvalidTarget
	}
	if memberCount < 0 || memberCount > targetCount {
		return nil, ErrInvalidMemberLoad
	}
	return &GroupBuy{
		id:           uuid.New(),
		productID:    productID,
		currentCount: memberCount,
		targetCount:  targetCount,
		isActive:     memberCount < targetCount,
	}, nil
}

func ReconstructGroupBuy(
	id, productID uuid.UUID,
	currentCount, targetCount int,
	isActive bool,
	createdAt, updatedAt time.Time,
) *GroupBuy {
	return &GroupBuy{
		id:           id,
		productID:    productID,
		currentCount: currentCount,
		targetCount:  targetCount,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Join admits one more buyer and reports whether the group just reached its
// target. The count can never pass the target: the group is closed the moment
// it fills.
func (g *GroupBuy) Join() (completed bool, err error) {
	if !g.isActive {
		return false, ErrGroupClosed
	}
	if g.currentCount >= g.targetCount {
		return false, ErrGroupFull
	}
	g.currentCount++
	if g.currentCount >= g.targetCount {
		g.isActive = false
		return true, nil
	}
	return false, nil
}

// Close deactivates the group without completing it (expiry or supersession
// by rearrangement). Members no longer count against it.
func (g *GroupBuy) Close() {
	g.isActive = false
	g.currentCount = 0
}

func (g *GroupBuy) IsComplete() bool {
	return g.currentCount >= g.targetCount
}

func (g *GroupBuy) IsStale(now time.Time, ttl time.Duration) bool {
	return g.isActive && !g.IsComplete() && g.updatedAt.Before(now.Add(-ttl))
}

func (g *GroupBuy) ID() uuid.UUID        { return g.id }
func (g *GroupBuy) ProductID() uuid.UUID { return g.productID }
func (g *GroupBuy) CurrentCount() int    { return g.currentCount }
func (g *GroupBuy) TargetCount() int     { return g.targetCount }
func (g *GroupBuy) IsActive() bool       { return g.isActive }
func (g *GroupBuy) CreatedAt() time.Time { return g.createdAt }
func (g *GroupBuy) UpdatedAt() time.Time { return g.updatedAt }
