package repository

import (
	"context"

	"kyren/internal/domain/product"
	"kyren/internal/infra"
	"kyren/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	const insertProduct = `
		INSERT INTO products (id, seller_id, name, description, price_cents, image_url, available_qty, min_group_size, discount_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, insertProduct,
		p.ID(), p.SellerID(), p.Name(), p.Description(), p.PriceCents(),
		p.ImageURL(), p.AvailableQty(), p.MinGroupSize(), p.DiscountPercent(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}

	const insertTier = `
		INSERT INTO discount_tiers (id, product_id, group_size, discount_percent)
		VALUES ($1, $2, $3, $4)`

	for _, t := range p.Tiers() {
		if _, err := r.db.Exec(ctx, insertTier, uuid.New(), p.ID(), t.GroupSize, t.DiscountPercent); err != nil {
			return infra.WrapRepoErr("failed to create discount tier", err)
		}
	}
	return nil
}

func (r *ProductRepository) FindWithTiers(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	const selectProduct = `
		SELECT id, seller_id, name, description, price_cents, image_url, available_qty, min_group_size, discount_percent
		FROM products
		WHERE id = $1`

	var (
		pid, sellerID   uuid.UUID
		name, desc      string
		priceCents      int64
		imageURL        *string
		availableQty    int
		minGroupSize    int
		discountPercent float64
	)
	err := r.db.QueryRow(ctx, selectProduct, id).Scan(
		&pid, &sellerID, &name, &desc, &priceCents, &imageURL, &availableQty, &minGroupSize, &discountPercent,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find product", err)
	}

	const selectTiers = `
		SELECT group_size, discount_percent
		FROM discount_tiers
		WHERE product_id = $1`

	rows, err := r.db.Query(ctx, selectTiers, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load discount tiers", err)
	}
	defer rows.Close()

	var tiers []product.DiscountTier
	for rows.Next() {
		var t product.DiscountTier
		if err := rows.Scan(&t.GroupSize, &t.DiscountPercent); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount tier", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate discount tiers", err)
	}

	return product.ReconstructProduct(
		pid, sellerID, name, desc, priceCents, imageURL, availableQty, minGroupSize, discountPercent, tiers,
	), nil
}
