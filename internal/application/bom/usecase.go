// Package bom orquesta el ciclo de vida de las listas de materiales: creación
// validada y costeada, versionado, activación, baja lógica y consultas de
// costo y factibilidad.
package bom

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/bom"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// UseCase orquesta las operaciones sobre BOMs.
type UseCase struct {
	bomRepo      repository.BOMRepository
	productRepo  repository.FinishedProductRepository
	materialRepo repository.RawMaterialRepository
	costSvc      *bom.CostService
	feasSvc      *bom.FeasibilityService
	policy       bom.Policy
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	bomRepo repository.BOMRepository,
	productRepo repository.FinishedProductRepository,
	materialRepo repository.RawMaterialRepository,
	costSvc *bom.CostService,
	feasSvc *bom.FeasibilityService,
	policy bom.Policy,
) *UseCase {
	return &UseCase{
		bomRepo:      bomRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		costSvc:      costSvc,
		feasSvc:      feasSvc,
		policy:       policy,
	}
}

// ItemInput es una línea de la receta en la entrada de creación/actualización.
type ItemInput struct {
	RawMaterialID string
	Quantity      decimal.Decimal
}

// CreateInput es la entrada para crear una versión de BOM.
type CreateInput struct {
	UserID              string
	FinishedProductID   string
	Items               []ItemInput
	EstimatedLaborHours decimal.Decimal
	LaborCostPerHour    decimal.Decimal
	OverheadPercentage  decimal.Decimal
	Notes               string
}

// Create valida la estructura (puerta dura), resuelve y desnormaliza los
// materiales, calcula los costos y persiste la nueva versión como BOM activo
// del producto (desactivando la versión activa anterior). La versión se asigna
// monotónicamente por producto.
func (uc *UseCase) Create(in CreateInput) (*entity.BillOfMaterials, error) {
	product, err := uc.productRepo.GetByID(in.FinishedProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.OverheadPercentage.LessThan(decimal.Zero) || in.OverheadPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}

	items, err := uc.resolveItems(in.Items)
	if err != nil {
		return nil, err
	}

	maxVersion, err := uc.bomRepo.MaxVersion(in.FinishedProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &entity.BillOfMaterials{
		ID:                  uuid.New().String(),
		FinishedProductID:   product.ID,
		FinishedProductName: product.Name,
		Version:             maxVersion + 1,
		Items:               items,
		EstimatedLaborHours: in.EstimatedLaborHours,
		LaborCostPerHour:    in.LaborCostPerHour,
		OverheadPercentage:  in.OverheadPercentage,
		Notes:               in.Notes,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedBy:           in.UserID,
	}

	if v := bom.ValidateStructure(b, uc.policy); !v.IsValid {
		return nil, &domain.BOMStructureError{Violations: v.Errors}
	}
	if err := uc.attachCosts(b); err != nil {
		return nil, err
	}

	// Solo una versión activa por producto.
	if err := uc.bomRepo.DeactivateByProduct(product.ID); err != nil {
		return nil, err
	}
	if err := uc.bomRepo.Create(b); err != nil {
		return nil, err
	}
	if err := uc.syncProductCosts(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateInput es la entrada para actualizar un BOM existente. Los campos nil
// no se tocan; Items no nil reemplaza la receta y fuerza el recosteo.
type UpdateInput struct {
	Items               []ItemInput
	EstimatedLaborHours *decimal.Decimal
	LaborCostPerHour    *decimal.Decimal
	OverheadPercentage  *decimal.Decimal
	Notes               *string
}

// Update modifica un BOM; si cambian los ítems o los parámetros de costo se
// recalculan los totales antes de persistir.
func (uc *UseCase) Update(id string, in UpdateInput) (*entity.BillOfMaterials, error) {
	b, err := uc.bomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	recost := false
	if in.Items != nil {
		items, err := uc.resolveItems(in.Items)
		if err != nil {
			return nil, err
		}
		b.Items = items
		recost = true
	}
	if in.EstimatedLaborHours != nil {
		b.EstimatedLaborHours = *in.EstimatedLaborHours
		recost = true
	}
	if in.LaborCostPerHour != nil {
		b.LaborCostPerHour = *in.LaborCostPerHour
		recost = true
	}
	if in.OverheadPercentage != nil {
		if in.OverheadPercentage.LessThan(decimal.Zero) || in.OverheadPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		b.OverheadPercentage = *in.OverheadPercentage
		recost = true
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}

	if v := bom.ValidateStructure(b, uc.policy); !v.IsValid {
		return nil, &domain.BOMStructureError{Violations: v.Errors}
	}
	if recost {
		if err := uc.attachCosts(b); err != nil {
			return nil, err
		}
	}
	b.UpdatedAt = time.Now()

	if err := uc.bomRepo.Update(b); err != nil {
		return nil, err
	}
	if b.IsActive {
		if err := uc.syncProductCosts(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Deactivate da de baja lógica la versión: el histórico de costeo de lo ya
// producido con ella sigue siendo consultable por id.
func (uc *UseCase) Deactivate(id string) error {
	b, err := uc.bomRepo.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	return uc.bomRepo.Deactivate(id)
}

// GetByID devuelve el BOM sin filtrar por IsActive (contrato del repositorio).
func (uc *UseCase) GetByID(id string) (*entity.BillOfMaterials, error) {
	b, err := uc.bomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// ListByProduct devuelve los BOMs activos del producto.
func (uc *UseCase) ListByProduct(productID string) ([]*entity.BillOfMaterials, error) {
	return uc.bomRepo.ListByProduct(productID)
}

// Costs recalcula el desglose de costos del BOM contra el stock de materias
// primas actual (las referencias colgadas degradan a costo cero).
func (uc *UseCase) Costs(id string) (bom.Costs, error) {
	b, err := uc.GetByID(id)
	if err != nil {
		return bom.Costs{}, err
	}
	return uc.costSvc.CalculateBOMCosts(b)
}

// UnitCost devuelve el costo por unidad para el rendimiento dado.
func (uc *UseCase) UnitCost(id string, yieldQuantity decimal.Decimal) (decimal.Decimal, error) {
	b, err := uc.GetByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	return uc.costSvc.CalculateUnitCost(b, yieldQuantity)
}

// ValidateCosts ejecuta la validación consultiva de costos.
func (uc *UseCase) ValidateCosts(id string, expectedYield decimal.Decimal) (bom.CostValidation, error) {
	b, err := uc.GetByID(id)
	if err != nil {
		return bom.CostValidation{}, err
	}
	return uc.costSvc.ValidateCosts(b, expectedYield), nil
}

// Feasibility evalúa cuántas unidades se pueden producir con el stock actual.
func (uc *UseCase) Feasibility(id string, requestedQuantity int64) (*entity.ProductionFeasibility, error) {
	b, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	return uc.feasSvc.CalculateProductionFeasibility(b, requestedQuantity)
}

// resolveItems desnormaliza nombre y costo unitario de cada materia prima al
// momento de guardar. Crear un BOM exige referencias resolubles: la
// degradación suave aplica a lecturas posteriores, no a la captura inicial.
func (uc *UseCase) resolveItems(inputs []ItemInput) ([]entity.BOMItem, error) {
	items := make([]entity.BOMItem, 0, len(inputs))
	for _, in := range inputs {
		material, err := uc.materialRepo.GetByID(in.RawMaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.BOMItem{
			RawMaterialID:   material.ID,
			RawMaterialName: material.Name,
			Quantity:        in.Quantity,
			UnitMeasure:     material.UnitMeasure,
			UnitCost:        material.UnitCost,
			TotalCost:       in.Quantity.Mul(material.UnitCost),
		})
	}
	return items, nil
}

// attachCosts materializa los totales en el BOM: mano de obra = horas x
// tarifa, overhead = porcentaje sobre (material + mano de obra). Esta es la
// única capa donde ocurren esas multiplicaciones; el costeo de lectura las
// toma ya almacenadas.
func (uc *UseCase) attachCosts(b *entity.BillOfMaterials) error {
	b.TotalLaborCost = b.EstimatedLaborHours.Mul(b.LaborCostPerHour)

	costs, err := uc.costSvc.CalculateBOMCosts(b)
	if err != nil {
		return err
	}
	b.TotalMaterialCost = costs.TotalMaterialCost

	base := b.TotalMaterialCost.Add(b.TotalLaborCost)
	b.TotalOverheadCost = base.Mul(b.OverheadPercentage).Div(decimal.NewFromInt(100))
	b.TotalCost = base.Add(b.TotalOverheadCost)
	return nil
}

// syncProductCosts propaga los costos derivados del BOM activo al producto
// terminado (UnitCost del producto no es editable directamente).
func (uc *UseCase) syncProductCosts(b *entity.BillOfMaterials) error {
	return uc.productRepo.UpdateDerivedCosts(
		b.FinishedProductID,
		b.TotalMaterialCost,
		b.TotalLaborCost,
		b.TotalOverheadCost,
		b.TotalCost,
	)
}
