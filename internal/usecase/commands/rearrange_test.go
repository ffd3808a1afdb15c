//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"kyren/internal/domain/order"
	"kyren/internal/domain/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRearrange_RepacksIncompleteGroups(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 10000, 4, 20, nil)

	now := time.Now()
	// Ten buyers scattered over four incomplete groups.
	var orderIDs []uuid.UUID
	for _, count := range []int{3, 3, 3, 1} {
		grp := seedGroup(state, prod.ID(), count, 4, true, now)
		for i := 0; i < count; i++ {
			buyer := seedUser(state, uuid.New().String())
			o := seedOrder(state, buyer.ID, grp.ID(), prod.PriceCents())
			orderIDs = append(orderIDs, o.ID())
		}
	}

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	outcomes, err := uc.Rearrange(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	var complete, remainder int
	for _, o := range outcomes {
		if o.Completed {
			complete++
			assert.Equal(t, 4, o.OrderCount)
			assert.Equal(t, 20.0, o.DiscountPercent)
		} else {
			remainder++
			assert.Equal(t, 2, o.OrderCount)
		}
	}
	assert.Equal(t, 2, complete)
	assert.Equal(t, 1, remainder)

	// Earliest eight joiners are confirmed, the last two still pending.
	for i, id := range orderIDs {
		o := state.orders[id]
		if i < 8 {
			assert.Equal(t, order.StatusConfirmed, o.Status(), "order %d", i)
			require.NotNil(t, o.DiscountPriceCents())
			assert.Equal(t, int64(8000), *o.DiscountPriceCents())
		} else {
			assert.Equal(t, order.StatusPending, o.Status(), "order %d", i)
			assert.Nil(t, o.DiscountPriceCents())
		}
	}

	// One active group remains for the product, holding the remainder.
	var activeCount int
	for _, g := range state.groups {
		if g.ProductID() == prod.ID() && g.IsActive() {
			activeCount++
			assert.Equal(t, 2, g.CurrentCount())
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestRearrange_TierDiscountAppliesToNewGroups(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 10000, 4, 0, []product.DiscountTier{
		{GroupSize: 2, DiscountPercent: 5},
		{GroupSize: 4, DiscountPercent: 15},
	})

	now := time.Now()
	for _, count := range []int{2, 2} {
		grp := seedGroup(state, prod.ID(), count, 4, true, now)
		for i := 0; i < count; i++ {
			buyer := seedUser(state, uuid.New().String())
			seedOrder(state, buyer.ID, grp.ID(), prod.PriceCents())
		}
	}

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	outcomes, err := uc.Rearrange(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Completed)
	assert.Equal(t, 15.0, outcomes[0].DiscountPercent)
}

func TestRearrange_SingleIncompleteGroupUntouched(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 10000, 4, 20, nil)

	grp := seedGroup(state, prod.ID(), 2, 4, true, time.Now())
	for i := 0; i < 2; i++ {
		buyer := seedUser(state, uuid.New().String())
		seedOrder(state, buyer.ID, grp.ID(), prod.PriceCents())
	}

	uc, _ := newGroupCommands(t, state)

	outcomes, err := uc.Rearrange(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	assert.True(t, state.groups[grp.ID()].IsActive())
	assert.Equal(t, 2, state.groups[grp.ID()].CurrentCount())
}

func TestRearrange_RescuesBuyersFromClosedGroups(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 2000, 2, 10, nil)

	now := time.Now()
	// A group closed without cancelling its buyer, plus the product's
	// current active group. Only one group may be active at a time, so
	// this is how two incomplete groups coexist.
	closed := seedGroup(state, prod.ID(), 0, 2, false, now)
	stranded := seedUser(state, uuid.New().String())
	strandedOrder := seedOrder(state, stranded.ID, closed.ID(), prod.PriceCents())

	active := seedGroup(state, prod.ID(), 1, 2, true, now)
	buyer := seedUser(state, uuid.New().String())
	seedOrder(state, buyer.ID, active.ID(), prod.PriceCents())

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	outcomes, err := uc.Rearrange(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Completed)
	assert.Equal(t, 2, outcomes[0].OrderCount)
	assert.Equal(t, 10.0, outcomes[0].DiscountPercent)

	rescued := state.orders[strandedOrder.ID()]
	assert.Equal(t, order.StatusConfirmed, rescued.Status())
	assert.Equal(t, outcomes[0].NewGroupID, rescued.GroupBuyID())
}

func TestRearrange_ClosesContributingGroups(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 10000, 2, 10, nil)

	now := time.Now()
	oldGroups := make([]uuid.UUID, 0, 2)
	for _, count := range []int{1, 1} {
		grp := seedGroup(state, prod.ID(), count, 2, true, now)
		oldGroups = append(oldGroups, grp.ID())
		buyer := seedUser(state, uuid.New().String())
		seedOrder(state, buyer.ID, grp.ID(), prod.PriceCents())
	}

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := uc.Rearrange(context.Background())
	require.NoError(t, err)

	for _, id := range oldGroups {
		g := state.groups[id]
		assert.False(t, g.IsActive())
		assert.Equal(t, 0, g.CurrentCount())
	}
}
