package request

import "github.com/google/uuid"

type JoinGroupRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	BuyerID   uuid.UUID `json:"buyer_id" binding:"required"`
}
