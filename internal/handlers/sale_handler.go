package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/identity"
	"github.com/ricardomonteiro/vitrine-backend/internal/services"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	buyerID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	sale, err := h.saleService.Create(buyerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductsRequired) ||
			errors.Is(err, services.ErrSellerRequired) ||
			errors.Is(err, services.ErrProductsNotFound) ||
			errors.Is(err, services.ErrSameBuyerSeller) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create sale",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *SaleHandler) ListAll(c *fiber.Ctx) error {
	sales, err := h.saleService.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch sales",
		})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) ListByBuyer(c *fiber.Ctx) error {
	buyerID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sales, err := h.saleService.ListByBuyer(buyerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch sales",
		})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) ListBySeller(c *fiber.Ctx) error {
	sellerID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sales, err := h.saleService.ListBySeller(sellerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch sales",
		})
	}
	return c.JSON(sales)
}
