package response

import (
	"time"

	"kyren/internal/usecase/queries"

	"github.com/google/uuid"
)

type TierResponse struct {
	GroupSize       int     `json:"groupSize"`
	DiscountPercent float64 `json:"discountPercent"`
}

type ProductResponse struct {
	ID              uuid.UUID      `json:"id"`
	SellerID        uuid.UUID      `json:"sellerId"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	PriceCents      int64          `json:"priceCents"`
	ImageURL        *string        `json:"imageUrl,omitempty"`
	AvailableQty    int            `json:"availableQty"`
	MinGroupSize    int            `json:"minGroupSize"`
	DiscountPercent float64        `json:"discountPercent"`
	Tiers           []TierResponse `json:"tiers"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type ProductListResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"priceCents"`
	MinGroupSize int       `json:"minGroupSize"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateProductResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromProductView(rm *queries.ProductView) *ProductResponse {
	tiers := make([]TierResponse, len(rm.Tiers))
	for i, t := range rm.Tiers {
		tiers[i] = TierResponse{GroupSize: t.GroupSize, DiscountPercent: t.DiscountPercent}
	}
	return &ProductResponse{
		ID:              rm.ID,
		SellerID:        rm.SellerID,
		Name:            rm.Name,
		Description:     rm.Description,
		PriceCents:      rm.PriceCents,
		ImageURL:        rm.ImageURL,
		AvailableQty:    rm.AvailableQty,
		MinGroupSize:    rm.MinGroupSize,
		DiscountPercent: rm.DiscountPercent,
		Tiers:           tiers,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromProductListItem(rm *queries.ProductListItem) *ProductListResponse {
	return &ProductListResponse{
		ID:           rm.ID,
		Name:         rm.Name,
		PriceCents:   rm.PriceCents,
		MinGroupSize: rm.MinGroupSize,
		CreatedAt:    rm.CreatedAt,
	}
}
