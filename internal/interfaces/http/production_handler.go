package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Macruz95/zadia-os-api/internal/application/dto"
	"github.com/Macruz95/zadia-os-api/internal/application/production"
	"github.com/Macruz95/zadia-os-api/internal/domain"
)

// ProductionHandler maneja la ejecución de órdenes de producción (protegido).
type ProductionHandler struct {
	uc *production.ExecuteProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ExecuteProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Execute godoc
// @Summary      Ejecutar orden de producción
// @Description  Consume materias primas según el BOM activo y agrega unidades
//
//	del producto terminado en una sola transacción. Ante faltantes
//	no se escribe nada y la respuesta 409 incluye el reporte con
//	los déficits exactos por material.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExecuteProductionRequest  true  "finished_product_id, quantity, reason"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  map[string]interface{}
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production/execute [post]
func (h *ProductionHandler) Execute(c *fiber.Ctx) error {
	var in dto.ExecuteProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.uc.Execute(c.Context(), production.Input{
		UserID:            GetUserID(c),
		FinishedProductID: in.FinishedProductID,
		Quantity:          in.Quantity,
		Reason:            in.Reason,
	})
	if err != nil {
		// Faltantes: el reporte de factibilidad viaja en el cuerpo del 409.
		if errors.Is(err, domain.ErrInsufficientStock) && result != nil && result.Feasibility != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":        "INSUFFICIENT_STOCK",
				"message":     "stock insuficiente para la orden de producción",
				"feasibility": result.Feasibility,
			})
		}
		return respondDomainError(c, err)
	}

	movements := make([]dto.MovementResponse, 0, len(result.Movements))
	for _, m := range result.Movements {
		movements = append(movements, *toMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"feasibility": result.Feasibility,
		"movements":   movements,
	})
}
