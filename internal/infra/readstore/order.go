package readstore

import (
	"context"

	"kyren/internal/infra"
	"kyren/internal/infra/db"
	"kyren/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByBuyerID(ctx context.Context, buyerID uuid.UUID, limit int) ([]*queries.OrderView, error) {
	const query = `
		SELECT o.id, o.group_buy_id, p.name, o.quantity, o.unit_price_cents,
		       o.discount_price_cents, o.deposit_cents, o.status, o.created_at
		FROM orders o
		JOIN group_buys g ON g.id = o.group_buy_id
		JOIN products p ON p.id = g.product_id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, buyerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by buyer", err)
	}
	defer rows.Close()

	var result []*queries.OrderView
	for rows.Next() {
		var view queries.OrderView
		if err := rows.Scan(
			&view.ID, &view.GroupBuyID, &view.ProductName, &view.Quantity,
			&view.UnitPriceCents, &view.DiscountPriceCents, &view.DepositCents,
			&view.Status, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order view", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return result, nil
}
