package response

import (
	"time"

	"kyren/internal/usecase/commands"
	"kyren/internal/usecase/queries"

	"github.com/google/uuid"
)

type JoinGroupResponse struct {
	OrderID            uuid.UUID `json:"orderId"`
	GroupID            uuid.UUID `json:"groupId"`
	Status             string    `json:"status"`
	CurrentCount       int       `json:"currentCount"`
	TargetCount        int       `json:"targetCount"`
	DiscountPercent    *float64  `json:"discountPercent,omitempty"`
	DiscountPriceCents *int64    `json:"discountPriceCents,omitempty"`
}

type GroupResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"productId"`
	ProductName  string    `json:"productName"`
	CurrentCount int       `json:"currentCount"`
	TargetCount  int       `json:"targetCount"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RearrangeOutcomeResponse struct {
	ProductID       uuid.UUID `json:"productId"`
	NewGroupID      uuid.UUID `json:"newGroupId"`
	OrderCount      int       `json:"orderCount"`
	DiscountPercent float64   `json:"discountPercent"`
	Completed       bool      `json:"completed"`
}

type SweepResponse struct {
	ExpiredGroups   int                        `json:"expiredGroups"`
	CancelledOrders int                        `json:"cancelledOrders"`
	Rearranged      []RearrangeOutcomeResponse `json:"rearranged"`
}

func FromJoinResult(r *commands.JoinResult) *JoinGroupResponse {
	return &JoinGroupResponse{
		OrderID:            r.OrderID,
		GroupID:            r.GroupID,
		Status:             r.Status,
		CurrentCount:       r.CurrentCount,
		TargetCount:        r.TargetCount,
		DiscountPercent:    r.DiscountPercent,
		DiscountPriceCents: r.DiscountPriceCents,
	}
}

func FromGroupView(rm *queries.GroupView) *GroupResponse {
	return &GroupResponse{
		ID:           rm.ID,
		ProductID:    rm.ProductID,
		ProductName:  rm.ProductName,
		CurrentCount: rm.CurrentCount,
		TargetCount:  rm.TargetCount,
		IsActive:     rm.IsActive,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromRearrangeOutcomes(outcomes []commands.RearrangeOutcome) []RearrangeOutcomeResponse {
	result := make([]RearrangeOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		result[i] = RearrangeOutcomeResponse{
			ProductID:       o.ProductID,
			NewGroupID:      o.NewGroupID,
			OrderCount:      o.OrderCount,
			DiscountPercent: o.DiscountPercent,
			Completed:       o.Completed,
		}
	}
	return result
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	return &SweepResponse{
		ExpiredGroups:   r.ExpiredGroups,
		CancelledOrders: r.CancelledOrders,
		Rearranged:      FromRearrangeOutcomes(r.Rearranged),
	}
}
