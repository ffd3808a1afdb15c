//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, baleID, name string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, bale_id, username, name) VALUES ($1, $2, $3, $4) ON CONFLICT (bale_id) DO NOTHING",
		userID, baleID, name, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE bale_id = $1", baleID).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

type TestTier struct {
	GroupSize       int
	DiscountPercent float64
}

func CreateTestProduct(t *testing.T, db DBLike, sellerID uuid.UUID, name string, priceCents int64, minGroupSize int, discountPercent float64, tiers []TestTier) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO products (id, seller_id, name, description, price_cents, available_qty, min_group_size, discount_percent)
		VALUES ($1, $2, $3, '', $4, 100, $5, $6)`,
		productID, sellerID, name, priceCents, minGroupSize, discountPercent)
	require.NoError(t, err)

	for _, tier := range tiers {
		_, err = db.Exec(ctx,
			"INSERT INTO discount_tiers (product_id, group_size, discount_percent) VALUES ($1, $2, $3)",
			productID, tier.GroupSize, tier.DiscountPercent)
		require.NoError(t, err)
	}

	return productID
}

// ResetDB truncates every domain table so each subtest starts clean.
func ResetDB(pool *pgxpool.Pool) error {
	ctx := context.Background()

	tables := []string{
		"payment_transactions",
		"orders",
		"group_buys",
		"discount_tiers",
		"products",
		"users",
	}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return err
		}
	}
	return nil
}
