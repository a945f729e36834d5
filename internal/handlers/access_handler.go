package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/services"
)

type AccessHandler struct {
	accessService *services.AccessService
}

func NewAccessHandler(accessService *services.AccessService) *AccessHandler {
	return &AccessHandler{accessService: accessService}
}

func (h *AccessHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	access, err := h.accessService.Create(req.Name)
	if err != nil {
		if errors.Is(err, services.ErrAccessNameTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(access)
}

func (h *AccessHandler) List(c *fiber.Ctx) error {
	accesses, err := h.accessService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch accesses",
		})
	}
	return c.JSON(accesses)
}
