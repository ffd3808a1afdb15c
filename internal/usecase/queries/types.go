package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type TierView struct {
	GroupSize       int     `json:"group_size"`
	DiscountPercent float64 `json:"discount_percent"`
}

type ProductView struct {
	ID              uuid.UUID  `json:"id"`
	SellerID        uuid.UUID  `json:"seller_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	PriceCents      int64      `json:"price_cents"`
	ImageURL        *string    `json:"image_url,omitempty"`
	AvailableQty    int        `json:"available_qty"`
	MinGroupSize    int        `json:"min_group_size"`
	DiscountPercent float64    `json:"discount_percent"`
	Tiers           []TierView `json:"tiers"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ProductListItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	MinGroupSize int       `json:"min_group_size"`
	CreatedAt    time.Time `json:"created_at"`
}

type GroupView struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentCount int       `json:"current_count"`
	TargetCount  int       `json:"target_count"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type OrderView struct {
	ID                 uuid.UUID `json:"id"`
	GroupBuyID         uuid.UUID `json:"group_buy_id"`
	ProductName        string    `json:"product_name"`
	Quantity           int       `json:"quantity"`
	UnitPriceCents     int64     `json:"unit_price_cents"`
	DiscountPriceCents *int64    `json:"discount_price_cents,omitempty"`
	DepositCents       int64     `json:"deposit_cents"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// ProductFilter narrows the catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Search        string
	MinPriceCents int64
	MaxPriceCents int64
	Limit         int
	Offset        int
}
