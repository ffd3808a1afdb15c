package api

import (
	"net/http"

	resdto "kyren/internal/handler/dto/response"
	"kyren/internal/handler/httperr"
	"kyren/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{orderQueries: orderQueries}
}

// @Summary List buyer orders
// @Description List a buyer's orders, newest first
// @Tags orders
// @Produce json
// @Param buyer_id query string true "Buyer ID"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	buyerID, err := uuid.Parse(c.Query("buyer_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid buyer ID format", nil)
		return
	}

	views, err := h.orderQueries.ListByBuyer(c.Request.Context(), buyerID, int(queryInt64(c, "limit")))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	result := make([]*resdto.OrderResponse, len(views))
	for i, v := range views {
		result[i] = resdto.FromOrderView(v)
	}
	c.JSON(http.StatusOK, result)
}
