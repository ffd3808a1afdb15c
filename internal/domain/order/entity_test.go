//go:build unit

package order_test

import (
	"testing"

	"kyren/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	buyerID, groupID := uuid.New(), uuid.New()

	t.Run("snapshots price and collects deposit", func(t *testing.T) {
		o, err := order.NewOrder(buyerID, groupID, 1, 4999)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, int64(4999), o.UnitPriceCents())
		assert.Equal(t, int64(499), o.DepositCents())
		assert.Nil(t, o.DiscountPriceCents())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := order.NewOrder(buyerID, groupID, 0, 4999)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := order.NewOrder(buyerID, groupID, 1, 0)
		assert.ErrorIs(t, err, order.ErrInvalidUnitPrice)
	})
}

func TestDiscountedCents(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice int64
		percent   float64
		wantCents int64
	}{
		{"15 percent off", 10000, 15, 8500},
		{"zero percent", 10000, 0, 10000},
		{"full discount", 10000, 100, 0},
		{"rounds down", 999, 10, 899},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCents, order.DiscountedCents(tt.unitPrice, tt.percent))
		})
	}
}

func TestFinalize(t *testing.T) {
	t.Run("sets discount price exactly once", func(t *testing.T) {
		o, err := order.NewOrder(uuid.New(), uuid.New(), 1, 10000)
		require.NoError(t, err)

		require.NoError(t, o.Finalize(15))
		require.NotNil(t, o.DiscountPriceCents())
		assert.Equal(t, int64(8500), *o.DiscountPriceCents())
		assert.Equal(t, order.StatusConfirmed, o.Status())

		err = o.Finalize(20)
		assert.ErrorIs(t, err, order.ErrAlreadyFinalized)
		assert.Equal(t, int64(8500), *o.DiscountPriceCents())
	})

	t.Run("cancelled orders cannot be finalized", func(t *testing.T) {
		o, err := order.NewOrder(uuid.New(), uuid.New(), 1, 10000)
		require.NoError(t, err)

		o.Cancel()
		assert.ErrorIs(t, o.Finalize(15), order.ErrOrderCancelled)
	})
}

func TestCancel_Idempotent(t *testing.T) {
	o, err := order.NewOrder(uuid.New(), uuid.New(), 1, 10000)
	require.NoError(t, err)

	o.Cancel()
	o.Cancel()
	assert.True(t, o.IsCancelled())
}

func TestReassignGroup(t *testing.T) {
	o, err := order.NewOrder(uuid.New(), uuid.New(), 1, 10000)
	require.NoError(t, err)

	newGroup := uuid.New()
	o.ReassignGroup(newGroup)
	assert.Equal(t, newGroup, o.GroupBuyID())
}
