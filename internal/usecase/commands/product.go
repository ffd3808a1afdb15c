package commands

import (
	"context"

	"kyren/internal/domain/product"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateProductInput struct {
	SellerID        uuid.UUID
	Name            string
	Description     string
	PriceCents      int64
	ImageURL        *string
	AvailableQty    int
	MinGroupSize    int
	DiscountPercent float64
	Tiers           []product.DiscountTier
}

type ProductCommands interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (uuid.UUID, error)
}

type productUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewProductCommands(uow shared.UnitOfWork) ProductCommands {
	return &productUseCaseImpl{uow: uow}
}

func (uc *productUseCaseImpl) CreateProduct(ctx context.Context, in CreateProductInput) (uuid.UUID, error) {
	prod, err := product.NewProduct(
		in.SellerID,
		in.Name,
		in.Description,
		in.PriceCents,
		in.ImageURL,
		in.AvailableQty,
		in.MinGroupSize,
		in.DiscountPercent,
		in.Tiers,
	)
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, prod)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return prod.ID(), nil
}
