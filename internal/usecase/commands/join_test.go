//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kyren/internal/domain/groupbuy"
	"kyren/internal/domain/order"
	"kyren/internal/domain/product"
	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/commands"
	sharedmock "kyren/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testGroupTTL = 7 * 24 * time.Hour

func newGroupCommands(t *testing.T, state *fakeState) (commands.GroupCommands, *sharedmock.MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := sharedmock.NewMockNotifier(ctrl)
	uc := commands.NewGroupCommands(&fakeUoW{state: state}, notifier, testGroupTTL)
	return uc, notifier
}

func TestJoinGroup_FirstJoinerOpensGroup(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 4999, 3, 0, nil)
	buyer := seedUser(state, "1001")

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), buyer.BaleID, gomock.Any()).Return(nil)

	result, err := uc.JoinGroup(context.Background(), prod.ID(), buyer.ID)
	require.NoError(t, err)

	assert.Equal(t, commands.GroupStatusPending, result.Status)
	assert.Equal(t, 1, result.CurrentCount)
	assert.Equal(t, 3, result.TargetCount)
	assert.Nil(t, result.DiscountPercent)

	ord := state.orders[result.OrderID]
	require.NotNil(t, ord)
	assert.Equal(t, order.StatusPending, ord.Status())
	assert.Equal(t, int64(4999), ord.UnitPriceCents())

	require.Len(t, state.payments, 1)
	assert.Equal(t, ord.ID(), state.payments[0].OrderID)
	assert.Equal(t, int64(499), state.payments[0].AmountCents)
	assert.True(t, state.payments[0].IsDeposit)
}

func TestJoinGroup_FinalJoinerCompletesGroup(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 10000, 2, 0, []product.DiscountTier{
		{GroupSize: 2, DiscountPercent: 10},
	})
	buyer1 := seedUser(state, "1001")
	buyer2 := seedUser(state, "1002")

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := uc.JoinGroup(context.Background(), prod.ID(), buyer1.ID)
	require.NoError(t, err)

	result, err := uc.JoinGroup(context.Background(), prod.ID(), buyer2.ID)
	require.NoError(t, err)

	assert.Equal(t, commands.GroupStatusCompleted, result.Status)
	require.NotNil(t, result.DiscountPercent)
	assert.Equal(t, 10.0, *result.DiscountPercent)
	require.NotNil(t, result.DiscountPriceCents)
	assert.Equal(t, int64(9000), *result.DiscountPriceCents)

	grp := state.groups[result.GroupID]
	require.NotNil(t, grp)
	assert.False(t, grp.IsActive())
	assert.Equal(t, 2, grp.CurrentCount())

	// Every member order is confirmed with the same discounted price.
	for _, o := range state.orders {
		assert.Equal(t, order.StatusConfirmed, o.Status())
		require.NotNil(t, o.DiscountPriceCents())
		assert.Equal(t, int64(9000), *o.DiscountPriceCents())
	}
}

func TestJoinGroup_ProductNotFound(t *testing.T) {
	state := newFakeState()
	buyer := seedUser(state, "1001")

	uc, _ := newGroupCommands(t, state)

	_, err := uc.JoinGroup(context.Background(), uuid.New(), buyer.ID)
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}

func TestJoinGroup_UserNotFound(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 4999, 3, 0, nil)

	uc, _ := newGroupCommands(t, state)

	_, err := uc.JoinGroup(context.Background(), prod.ID(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestJoinGroup_NotifierFailureDoesNotFailJoin(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 4999, 3, 0, nil)
	buyer := seedUser(state, "1001")

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().
		Notify(gomock.Any(), buyer.BaleID, gomock.Any()).
		Return(errors.New("messenger unavailable"))

	result, err := uc.JoinGroup(context.Background(), prod.ID(), buyer.ID)
	require.NoError(t, err)
	assert.NotNil(t, state.orders[result.OrderID])
}

func TestJoinGroup_RetriesLostCreateRace(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 4999, 3, 0, nil)
	buyer := seedUser(state, "1001")
	state.dupCreateFails = 1

	uc, notifier := newGroupCommands(t, state)
	notifier.EXPECT().Notify(gomock.Any(), buyer.BaleID, gomock.Any()).Return(nil)

	result, err := uc.JoinGroup(context.Background(), prod.ID(), buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentCount)
	// Only the winning attempt left any trace.
	assert.Len(t, state.orders, 1)
	assert.Len(t, state.payments, 1)
}

func TestJoinGroup_ExhaustedRetriesSurfaceConflict(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 4999, 3, 0, nil)
	buyer := seedUser(state, "1001")
	state.dupCreateFails = 10

	uc, _ := newGroupCommands(t, state)

	_, err := uc.JoinGroup(context.Background(), prod.ID(), buyer.ID)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.Empty(t, state.orders)
}

func TestJoinGroup_FullGroupIsConflict(t *testing.T) {
	state := newFakeState()
	prod := seedProduct(state, 4999, 3, 0, nil)
	buyer := seedUser(state, "1001")
	// An active group already at target should be impossible, but a racing
	// reader can still observe it before the closer commits.
	seedGroup(state, prod.ID(), 3, 3, true, time.Now())

	uc, _ := newGroupCommands(t, state)

	_, err := uc.JoinGroup(context.Background(), prod.ID(), buyer.ID)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.ErrorIs(t, err, groupbuy.ErrGroupFull)
}
