package repository

import (
	"context"
	"time"

	"kyren/internal/domain/order"
	"kyren/internal/infra"
	"kyren/internal/infra/db"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const insertOrder = `
		INSERT INTO orders (id, buyer_id, group_buy_id, quantity, unit_price_cents, discount_price_cents, deposit_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, insertOrder,
		o.ID(), o.BuyerID(), o.GroupBuyID(), o.Quantity(),
		o.UnitPriceCents(), o.DiscountPriceCents(), o.DepositCents(), string(o.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	const update = `
		UPDATE orders
		SET group_buy_id = $2, discount_price_cents = $3, status = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, update, o.ID(), o.GroupBuyID(), o.DiscountPriceCents(), string(o.Status()))
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("order not found for update")
	}
	return nil
}

// ListActiveByGroups returns non-cancelled orders of the given groups with
// their buyers' messenger addresses, earliest joiners first.
func (r *OrderRepository) ListActiveByGroups(ctx context.Context, groupIDs []uuid.UUID) ([]shared.OrderWithBuyer, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT o.id, o.buyer_id, o.group_buy_id, o.quantity, o.unit_price_cents,
		       o.discount_price_cents, o.deposit_cents, o.status, o.created_at, o.updated_at,
		       u.bale_id, u.name
		FROM orders o
		JOIN users u ON u.id = o.buyer_id
		WHERE o.group_buy_id = ANY($1::uuid[]) AND o.status <> 'cancelled'
		ORDER BY o.created_at ASC`

	ids := make([]string, len(groupIDs))
	for i, id := range groupIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by groups", err)
	}
	defer rows.Close()

	var result []shared.OrderWithBuyer
	for rows.Next() {
		var (
			id, buyerID, groupID uuid.UUID
			quantity             int
			unitPriceCents       int64
			discountPriceCents   *int64
			depositCents         int64
			status               string
			createdAt, updatedAt time.Time
			baleID, buyerName    string
		)
		if err := rows.Scan(
			&id, &buyerID, &groupID, &quantity, &unitPriceCents,
			&discountPriceCents, &depositCents, &status, &createdAt, &updatedAt,
			&baleID, &buyerName,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		result = append(result, shared.OrderWithBuyer{
			Order: order.ReconstructOrder(
				id, buyerID, groupID, quantity, unitPriceCents,
				discountPriceCents, depositCents, order.Status(status), createdAt, updatedAt,
			),
			BuyerChatID: baleID,
			BuyerName:   buyerName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return result, nil
}
