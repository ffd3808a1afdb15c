package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"kyren/internal/handler/httperr"
	"kyren/internal/pkg/config"
	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/commands"
	"kyren/internal/usecase/queries"
	"kyren/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cmdStart    = "/start"
	cmdProducts = "/products"
	cmdMyOrders = "/myorders"

	callbackJoinGroup   = "join_group:"
	callbackViewProduct = "view_product:"
)

// Incoming update shape of the Bale bot API (Telegram-compatible).
type baleUpdate struct {
	UpdateID      int64              `json:"update_id"`
	Message       *baleMessage       `json:"message,omitempty"`
	CallbackQuery *baleCallbackQuery `json:"callback_query,omitempty"`
}

type baleMessage struct {
	Chat baleChat `json:"chat"`
	From baleUser `json:"from"`
	Text string   `json:"text"`
}

type baleCallbackQuery struct {
	From    baleUser     `json:"from"`
	Message *baleMessage `json:"message,omitempty"`
	Data    string       `json:"data"`
}

type baleChat struct {
	ID int64 `json:"id"`
}

type baleUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type WebhookHandler struct {
	cfg            config.BaleConfig
	userCommands   commands.UserCommands
	groupCommands  commands.GroupCommands
	productQueries queries.ProductQueries
	orderQueries   queries.OrderQueries
	notifier       shared.Notifier
}

func NewWebhookHandler(
	cfg config.Config,
	userCommands commands.UserCommands,
	groupCommands commands.GroupCommands,
	productQueries queries.ProductQueries,
	orderQueries queries.OrderQueries,
	notifier shared.Notifier,
) *WebhookHandler {
	return &WebhookHandler{
		cfg:            cfg.Bale,
		userCommands:   userCommands,
		groupCommands:  groupCommands,
		productQueries: productQueries,
		orderQueries:   orderQueries,
		notifier:       notifier,
	}
}

// HandleUpdate processes one messenger update. It always answers 200 so the
// bot platform does not redeliver updates whose handling failed on our side.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	if h.cfg.WebhookKey != "" {
		key := c.GetHeader("X-Webhook-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.WebhookKey)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("webhook key mismatch"), "Invalid webhook key", nil)
			return
		}
	}

	var update baleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid update format", nil)
		return
	}

	ctx := c.Request.Context()
	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) handleMessage(ctx context.Context, msg *baleMessage) {
	chatID := fmt.Sprintf("%d", msg.Chat.ID)

	user, err := h.ensureSender(ctx, msg.From)
	if err != nil {
		slog.Error("failed to register messenger user", "chat_id", chatID, "error", err.Error())
		return
	}

	switch {
	case strings.HasPrefix(msg.Text, cmdStart):
		h.reply(ctx, chatID, welcomeText(user.Name))
	case strings.HasPrefix(msg.Text, cmdProducts):
		h.replyProductList(ctx, chatID)
	case strings.HasPrefix(msg.Text, cmdMyOrders):
		h.replyOrderList(ctx, chatID, user.ID)
	default:
		h.reply(ctx, chatID, "Unknown command. Try /products to browse group buys or /myorders to see your orders.")
	}
}

func (h *WebhookHandler) handleCallback(ctx context.Context, cb *baleCallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := fmt.Sprintf("%d", cb.Message.Chat.ID)

	user, err := h.ensureSender(ctx, cb.From)
	if err != nil {
		slog.Error("failed to register messenger user", "chat_id", chatID, "error", err.Error())
		return
	}

	switch {
	case strings.HasPrefix(cb.Data, callbackJoinGroup):
		h.handleJoin(ctx, chatID, user.ID, strings.TrimPrefix(cb.Data, callbackJoinGroup))
	case strings.HasPrefix(cb.Data, callbackViewProduct):
		h.replyProductDetail(ctx, chatID, strings.TrimPrefix(cb.Data, callbackViewProduct))
	}
}

func (h *WebhookHandler) handleJoin(ctx context.Context, chatID string, buyerID uuid.UUID, rawProductID string) {
	productID, err := uuid.Parse(rawProductID)
	if err != nil {
		h.reply(ctx, chatID, "That group buy link is no longer valid.")
		return
	}

	_, err = h.groupCommands.JoinGroup(ctx, productID, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrProductNotFound):
			h.reply(ctx, chatID, "That product is no longer available.")
		case errors.Is(err, errs.ErrConcurrencyConflict):
			h.reply(ctx, chatID, "The group is busy right now, please try again in a moment.")
		default:
			slog.Error("join via webhook failed", "chat_id", chatID, "product_id", productID, "error", err.Error())
			h.reply(ctx, chatID, "Something went wrong, please try again later.")
		}
	}
	// On success the join workflow already notified the buyer.
}

func (h *WebhookHandler) replyProductList(ctx context.Context, chatID string) {
	items, err := h.productQueries.List(ctx, queries.ProductFilter{})
	if err != nil {
		slog.Error("failed to list products for webhook", "error", err.Error())
		h.reply(ctx, chatID, "Something went wrong, please try again later.")
		return
	}
	if len(items) == 0 {
		h.reply(ctx, chatID, "No products are available right now. Check back soon!")
		return
	}

	var b strings.Builder
	b.WriteString("*Available group buys:*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "\n*%s*\nPrice: $%.2f\nMinimum buyers: %d\nJoin: join_group:%s\n",
			item.Name, float64(item.PriceCents)/100.0, item.MinGroupSize, item.ID)
	}
	h.reply(ctx, chatID, b.String())
}

func (h *WebhookHandler) replyProductDetail(ctx context.Context, chatID, rawProductID string) {
	productID, err := uuid.Parse(rawProductID)
	if err != nil {
		h.reply(ctx, chatID, "That product link is no longer valid.")
		return
	}

	view, err := h.productQueries.GetByID(ctx, productID)
	if err != nil {
		h.reply(ctx, chatID, "That product is no longer available.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n%s\n\nPrice: $%.2f\nMinimum buyers: %d\n",
		view.Name, view.Description, float64(view.PriceCents)/100.0, view.MinGroupSize)
	for _, t := range view.Tiers {
		fmt.Fprintf(&b, "%d+ buyers: %.0f%% off\n", t.GroupSize, t.DiscountPercent)
	}
	h.reply(ctx, chatID, b.String())
}

func (h *WebhookHandler) replyOrderList(ctx context.Context, chatID string, buyerID uuid.UUID) {
	views, err := h.orderQueries.ListByBuyer(ctx, buyerID, 0)
	if err != nil {
		slog.Error("failed to list orders for webhook", "error", err.Error())
		h.reply(ctx, chatID, "Something went wrong, please try again later.")
		return
	}
	if len(views) == 0 {
		h.reply(ctx, chatID, "You have no orders yet. Try /products to join a group buy!")
		return
	}

	var b strings.Builder
	b.WriteString("*Your orders:*\n")
	for _, v := range views {
		price := v.UnitPriceCents
		if v.DiscountPriceCents != nil {
			price = *v.DiscountPriceCents
		}
		fmt.Fprintf(&b, "\n*%s*\nStatus: %s\nPrice: $%.2f\n", v.ProductName, v.Status, float64(price)/100.0)
	}
	h.reply(ctx, chatID, b.String())
}

func (h *WebhookHandler) ensureSender(ctx context.Context, from baleUser) (*shared.UserSnapshot, error) {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	return h.userCommands.EnsureUser(ctx, fmt.Sprintf("%d", from.ID), from.Username, name)
}

func (h *WebhookHandler) reply(ctx context.Context, chatID, text string) {
	if err := h.notifier.Notify(ctx, chatID, text); err != nil {
		slog.Warn("failed to send webhook reply", "chat_id", chatID, "error", err.Error())
	}
}

func welcomeText(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		"Hi %s! Welcome to the group buying bot.\n\nUse /products to browse active group buys and /myorders to track your orders.",
		name,
	)
}
