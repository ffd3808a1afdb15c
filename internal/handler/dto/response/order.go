package response

import (
	"time"

	"kyren/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID                 uuid.UUID `json:"id"`
	GroupBuyID         uuid.UUID `json:"groupBuyId"`
	ProductName        string    `json:"productName"`
	Quantity           int       `json:"quantity"`
	UnitPriceCents     int64     `json:"unitPriceCents"`
	DiscountPriceCents *int64    `json:"discountPriceCents,omitempty"`
	DepositCents       int64     `json:"depositCents"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

func FromOrderView(rm *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:                 rm.ID,
		GroupBuyID:         rm.GroupBuyID,
		ProductName:        rm.ProductName,
		Quantity:           rm.Quantity,
		UnitPriceCents:     rm.UnitPriceCents,
		DiscountPriceCents: rm.DiscountPriceCents,
		DepositCents:       rm.DepositCents,
		Status:             rm.Status,
		CreatedAt:          rm.CreatedAt,
	}
}
