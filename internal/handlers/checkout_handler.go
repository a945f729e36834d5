package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/identity"
	"github.com/ricardomonteiro/vitrine-backend/internal/payments"
	"github.com/ricardomonteiro/vitrine-backend/internal/services"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	gateway         payments.Gateway
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, gateway payments.Gateway) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, gateway: gateway}
}

func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	buyerID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.checkoutService.CreateSession(buyerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrGateway) {
			slog.Error("checkout session creation failed", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create checkout session",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(resp)
}

// HandleWebhook receives the gateway's asynchronous completion callback.
// The body must be the raw payload for signature verification. Internal
// reconciliation failures are logged and answered 200 so the provider does
// not redeliver; only bad signatures and buyer==seller get a 400.
func (h *CheckoutHandler) HandleWebhook(c *fiber.Ctx) error {
	event, err := h.gateway.ConstructEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhook signature verification failed",
		})
	}

	if event.Type != payments.EventCheckoutCompleted {
		return c.JSON(fiber.Map{"received": true})
	}

	if err := h.checkoutService.HandleCompletedSession(&event.Session); err != nil {
		if errors.Is(err, services.ErrSameBuyerSeller) {
			slog.Error("webhook rejected", "session_id", event.Session.ID, "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("webhook reconciliation failed", "session_id", event.Session.ID, "error", err)
	}

	return c.JSON(fiber.Map{"received": true})
}

func (h *CheckoutHandler) OrderDetails(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Session ID is required",
		})
	}

	sale, err := h.checkoutService.OrderDetails(sessionID)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Sale not found",
			})
		}
		slog.Error("order details lookup failed", "session_id", sessionID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch order details",
		})
	}
	return c.JSON(sale)
}

func (h *CheckoutHandler) AdminOrders(c *fiber.Ctx) error {
	orders, err := h.checkoutService.AdminOrders()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch orders",
		})
	}
	return c.JSON(orders)
}
