package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cantina-api/internal/application/analytics"
	"github.com/jhoicas/cantina-api/internal/application/dto"
)

// DashboardHandler maneja el endpoint del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve productos con stock bajo, total de productos y total de ventas.
// GET /api/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
