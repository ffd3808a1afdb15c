package api

import (
	"errors"
	"net/http"

	reqdto "kyren/internal/handler/dto/request"
	resdto "kyren/internal/handler/dto/response"
	"kyren/internal/handler/httperr"
	"kyren/internal/infra"
	"kyren/internal/pkg/clock"
	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/commands"
	"kyren/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groupCommands commands.GroupCommands
	groupQueries  queries.GroupQueries
	clock         clock.Clock
}

func NewGroupHandler(groupCommands commands.GroupCommands, groupQueries queries.GroupQueries, clk clock.Clock) *GroupHandler {
	return &GroupHandler{
		groupCommands: groupCommands,
		groupQueries:  groupQueries,
		clock:         clk,
	}
}

// @Summary Join group buy
// @Description Join the product's active group, creating one if none exists
// @Tags groups
// @Accept json
// @Produce json
// @Param request body reqdto.JoinGroupRequest true "Join request"
// @Success 201 {object} resdto.JoinGroupResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /groups/join [post]
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	var req reqdto.JoinGroupRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.groupCommands.JoinGroup(c.Request.Context(), req.ProductID, req.BuyerID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrConcurrencyConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Group is being updated, please retry", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromJoinResult(result))
}

// @Summary Get group
// @Description Get group buy state by ID
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} resdto.GroupResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid group ID format", nil)
		return
	}

	view, err := h.groupQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Group not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGroupView(view))
}

// @Summary Rearrange incomplete groups
// @Description Repack incomplete groups per product into complete ones
// @Tags groups
// @Produce json
// @Success 200 {array} resdto.RearrangeOutcomeResponse
// @Router /groups/rearrange [post]
func (h *GroupHandler) Rearrange(c *gin.Context) {
	outcomes, err := h.groupCommands.Rearrange(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRearrangeOutcomes(outcomes))
}

// @Summary Sweep expired groups
// @Description Expire stale groups, cancel their orders and rearrange survivors
// @Tags groups
// @Produce json
// @Success 200 {object} resdto.SweepResponse
// @Failure 409 {object} map[string]string
// @Router /groups/sweep [post]
func (h *GroupHandler) Sweep(c *gin.Context) {
	result, err := h.groupCommands.SweepExpired(c.Request.Context(), h.clock.Now())
	if err != nil {
		if errors.Is(err, errs.ErrSweepInProgress) {
			httperr.AbortWithError(c, http.StatusConflict, err, "A sweep is already running", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
