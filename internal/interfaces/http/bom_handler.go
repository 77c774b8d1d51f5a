package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appbom "github.com/Macruz95/zadia-os-api/internal/application/bom"
	"github.com/Macruz95/zadia-os-api/internal/application/dto"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// BOMHandler maneja las peticiones HTTP del ciclo de vida de BOMs (protegido).
type BOMHandler struct {
	uc    *appbom.UseCase
	pdfUC *appbom.PDFUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *appbom.UseCase, pdfUC *appbom.PDFUseCase) *BOMHandler {
	return &BOMHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear versión de BOM
// @Description  Valida la estructura, desnormaliza materiales, calcula costos y
//
//	activa la nueva versión desactivando la anterior.
//
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "Receta, mano de obra y overhead"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]appbom.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, appbom.ItemInput{RawMaterialID: it.RawMaterialID, Quantity: it.Quantity})
	}
	b, err := h.uc.Create(appbom.CreateInput{
		UserID:              GetUserID(c),
		FinishedProductID:   in.FinishedProductID,
		Items:               items,
		EstimatedLaborHours: in.EstimatedLaborHours,
		LaborCostPerHour:    in.LaborCostPerHour,
		OverheadPercentage:  in.OverheadPercentage,
		Notes:               in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBOMResponse(b))
}

// GetByID godoc
// @Summary      Obtener BOM por ID (incluye versiones dadas de baja)
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del BOM"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	b, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toBOMResponse(b))
}

// ListByProduct godoc
// @Summary      Listar BOMs activos de un producto
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto terminado"
// @Success      200  {array}   dto.BOMResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/boms [get]
func (h *BOMHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	boms, err := h.uc.ListByProduct(productID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.BOMResponse, 0, len(boms))
	for _, b := range boms {
		out = append(out, toBOMResponse(b))
	}
	return c.JSON(out)
}

// ListByProductPath godoc
// @Summary      Listar BOMs activos de un producto (ruta anidada)
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto terminado"
// @Success      200  {array}  dto.BOMResponse
// @Router       /api/products/{id}/boms [get]
func (h *BOMHandler) ListByProductPath(c *fiber.Ctx) error {
	boms, err := h.uc.ListByProduct(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.BOMResponse, 0, len(boms))
	for _, b := range boms {
		out = append(out, toBOMResponse(b))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar BOM
// @Description  Items no nulo reemplaza la receta completa y fuerza el recosteo.
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del BOM"
// @Param        body  body  dto.UpdateBOMRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BOMResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var items []appbom.ItemInput
	if in.Items != nil {
		items = make([]appbom.ItemInput, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, appbom.ItemInput{RawMaterialID: it.RawMaterialID, Quantity: it.Quantity})
		}
	}
	b, err := h.uc.Update(id, appbom.UpdateInput{
		Items:               items,
		EstimatedLaborHours: in.EstimatedLaborHours,
		LaborCostPerHour:    in.LaborCostPerHour,
		OverheadPercentage:  in.OverheadPercentage,
		Notes:               in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toBOMResponse(b))
}

// Deactivate godoc
// @Summary      Dar de baja una versión de BOM (baja lógica)
// @Description  La versión conserva su instantánea de costos y sigue consultable por id.
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del BOM"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [delete]
func (h *BOMHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Deactivate(id); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "BOM dado de baja"})
}

// Costs godoc
// @Summary      Desglose de costos del BOM
// @Description  Recalcula materiales contra el catálogo actual; las referencias
//
//	colgadas aportan costo cero.
//
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del BOM"
// @Success      200  {object}  bom.Costs
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/costs [get]
func (h *BOMHandler) Costs(c *fiber.Ctx) error {
	id := c.Params("id")
	costs, err := h.uc.Costs(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(costs)
}

// UnitCost godoc
// @Summary      Costo por unidad para un rendimiento dado
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del BOM"
// @Param        yield  query  string  false  "Unidades esperadas por lote"  default(1)
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/unit-cost [get]
func (h *BOMHandler) UnitCost(c *fiber.Ctx) error {
	id := c.Params("id")
	yield, err := decimal.NewFromString(c.Query("yield", "1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "yield debe ser numérico"})
	}
	unitCost, err := h.uc.UnitCost(id, yield)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"unit_cost": unitCost})
}

// ValidateCosts godoc
// @Summary      Validación consultiva de costos del BOM
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del BOM"
// @Param        yield  query  string  false  "Rendimiento esperado"  default(1)
// @Success      200  {object}  bom.CostValidation
// @Router       /api/boms/{id}/validate-costs [get]
func (h *BOMHandler) ValidateCosts(c *fiber.Ctx) error {
	id := c.Params("id")
	yield, err := decimal.NewFromString(c.Query("yield", "1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "yield debe ser numérico"})
	}
	v, err := h.uc.ValidateCosts(id, yield)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(v)
}

// Feasibility godoc
// @Summary      Factibilidad de producción con el stock actual
// @Description  Devuelve si se puede producir la cantidad pedida, el máximo
//
//	posible y los faltantes exactos por material.
//
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del BOM"
// @Param        quantity  query  int     false  "Cantidad solicitada"  default(1)
// @Success      200  {object}  entity.ProductionFeasibility
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/feasibility [get]
func (h *BOMHandler) Feasibility(c *fiber.Ctx) error {
	id := c.Params("id")
	quantity := int64(c.QueryInt("quantity", 1))
	feas, err := h.uc.Feasibility(id, quantity)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(feas)
}

// CostSheet godoc
// @Summary      Ficha de costos del BOM en PDF
// @Tags         boms
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del BOM"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id}/cost-sheet.pdf [get]
func (h *BOMHandler) CostSheet(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.pdfUC.CostSheet(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="bom-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

func toBOMResponse(b *entity.BillOfMaterials) *dto.BOMResponse {
	items := make([]dto.BOMItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BOMItemResponse{
			RawMaterialID:   it.RawMaterialID,
			RawMaterialName: it.RawMaterialName,
			Quantity:        it.Quantity,
			UnitMeasure:     it.UnitMeasure,
			UnitCost:        it.UnitCost,
			TotalCost:       it.TotalCost,
		})
	}
	return &dto.BOMResponse{
		ID:                  b.ID,
		FinishedProductID:   b.FinishedProductID,
		FinishedProductName: b.FinishedProductName,
		Version:             b.Version,
		Items:               items,
		TotalMaterialCost:   b.TotalMaterialCost,
		EstimatedLaborHours: b.EstimatedLaborHours,
		LaborCostPerHour:    b.LaborCostPerHour,
		TotalLaborCost:      b.TotalLaborCost,
		OverheadPercentage:  b.OverheadPercentage,
		TotalOverheadCost:   b.TotalOverheadCost,
		TotalCost:           b.TotalCost,
		Notes:               b.Notes,
		IsActive:            b.IsActive,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
