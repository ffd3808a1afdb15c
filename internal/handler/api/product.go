package api

import (
	"errors"
	"net/http"
	"strconv"

	"kyren/internal/domain/product"
	reqdto "kyren/internal/handler/dto/request"
	resdto "kyren/internal/handler/dto/response"
	"kyren/internal/handler/httperr"
	"kyren/internal/infra"
	"kyren/internal/usecase/commands"
	"kyren/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productCommands commands.ProductCommands
	productQueries  queries.ProductQueries
}

func NewProductHandler(productCommands commands.ProductCommands, productQueries queries.ProductQueries) *ProductHandler {
	return &ProductHandler{
		productCommands: productCommands,
		productQueries:  productQueries,
	}
}

// @Summary Create product
// @Description Register a product available for group buying
// @Tags products
// @Accept json
// @Produce json
// @Param request body reqdto.CreateProductRequest true "Product request"
// @Success 201 {object} resdto.CreateProductResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.productCommands.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyName),
			errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrInvalidGroupSize),
			errors.Is(err, product.ErrInvalidDiscount):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateProductResponse{ID: id})
}

// @Summary Get product
// @Description Get product detail with discount tiers
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID format", nil)
		return
	}

	view, err := h.productQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary List products
// @Description List products with optional name search and price range
// @Tags products
// @Produce json
// @Param search query string false "Name substring"
// @Param min_price_cents query int false "Minimum price in cents"
// @Param max_price_cents query int false "Maximum price in cents"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.ProductListResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := queries.ProductFilter{
		Search:        c.Query("search"),
		MinPriceCents: queryInt64(c, "min_price_cents"),
		MaxPriceCents: queryInt64(c, "max_price_cents"),
		Limit:         int(queryInt64(c, "limit")),
		Offset:        int(queryInt64(c, "offset")),
	}

	items, err := h.productQueries.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	result := make([]*resdto.ProductListResponse, len(items))
	for i, item := range items {
		result[i] = resdto.FromProductListItem(item)
	}
	c.JSON(http.StatusOK, result)
}

func queryInt64(c *gin.Context, key string) int64 {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
