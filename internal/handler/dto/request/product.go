package request

import (
	"strings"

	"kyren/internal/domain/product"
	"kyren/internal/usecase/commands"

	"github.com/google/uuid"
)

type TierRequest struct {
	GroupSize       int     `json:"group_size" binding:"required,min=1"`
	DiscountPercent float64 `json:"discount_percent" binding:"required,gte=0,lte=100"`
}

type CreateProductRequest struct {
	SellerID        uuid.UUID     `json:"seller_id" binding:"required"`
	Name            string        `json:"name" binding:"required"`
	Description     string        `json:"description"`
	PriceCents      int64         `json:"price_cents" binding:"required,gt=0"`
	ImageURL        *string       `json:"image_url,omitempty"`
	AvailableQty    int           `json:"available_qty" binding:"gte=0"`
	MinGroupSize    int           `json:"min_group_size" binding:"required,min=1"`
	DiscountPercent float64       `json:"discount_percent" binding:"gte=0,lte=100"`
	Tiers           []TierRequest `json:"tiers,omitempty"`
}

func (r CreateProductRequest) ToInput() commands.CreateProductInput {
	tiers := make([]product.DiscountTier, len(r.Tiers))
	for i, t := range r.Tiers {
		tiers[i] = product.DiscountTier{
			GroupSize:       t.GroupSize,
			DiscountPercent: t.DiscountPercent,
		}
	}
	return commands.CreateProductInput{
		SellerID:        r.SellerID,
		Name:            strings.TrimSpace(r.Name),
		Description:     strings.TrimSpace(r.Description),
		PriceCents:      r.PriceCents,
		ImageURL:        r.ImageURL,
		AvailableQty:    r.AvailableQty,
		MinGroupSize:    r.MinGroupSize,
		DiscountPercent: r.DiscountPercent,
		Tiers:           tiers,
	}
}
