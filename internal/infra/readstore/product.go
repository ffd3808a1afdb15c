package readstore

import (
	"context"
	"fmt"

	"kyren/internal/infra"
	"kyren/internal/infra/db"
	"kyren/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	const query = `
		SELECT id, seller_id, name, description, price_cents, image_url,
		       available_qty, min_group_size, discount_percent, created_at, updated_at
		FROM products
		WHERE id = $1`

	var view queries.ProductView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.SellerID, &view.Name, &view.Description, &view.PriceCents,
		&view.ImageURL, &view.AvailableQty, &view.MinGroupSize, &view.DiscountPercent,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find product view", err)
	}

	const tierQuery = `
		SELECT group_size, discount_percent
		FROM discount_tiers
		WHERE product_id = $1
		ORDER BY group_size ASC`

	rows, err := r.db.Query(ctx, tierQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load discount tiers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t queries.TierView
		if err := rows.Scan(&t.GroupSize, &t.DiscountPercent); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount tier", err)
		}
		view.Tiers = append(view.Tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate discount tiers", err)
	}
	return &view, nil
}

func (r *ProductReadStore) FindAll(ctx context.Context, filter queries.ProductFilter) ([]*queries.ProductListItem, error) {
	query := `
		SELECT id, name, price_cents, min_group_size, created_at
		FROM products
		WHERE 1=1`
	args := make([]any, 0, 5)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.MinPriceCents > 0 {
		args = append(args, filter.MinPriceCents)
		query += fmt.Sprintf(" AND price_cents >= $%d", len(args))
	}
	if filter.MaxPriceCents > 0 {
		args = append(args, filter.MaxPriceCents)
		query += fmt.Sprintf(" AND price_cents <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var result []*queries.ProductListItem
	for rows.Next() {
		var item queries.ProductListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.PriceCents, &item.MinGroupSize, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product list item", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return result, nil
}
