package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/inventory"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// La validación de stock corre SIEMPRE antes de escribir: no hay transacción
// compensatoria después.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInput es la entrada para registrar un movimiento.
// UnitCost es opcional: si falta se usa el costo promedio del ítem.
type MovementInput struct {
	UserID       string
	ItemID       string
	ItemType     string // raw_material | finished_product
	MovementType string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reason       string
}

// RegisterMovement valida la entrada, abre una transacción, bloquea la fila
// del ítem, aplica la política de movimientos y persiste el registro de
// auditoría con los stocks previo y nuevo capturados.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	if input.ItemID == "" || !entity.ValidMovementType(input.MovementType) || !entity.ValidItemKind(input.ItemType) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.MovementType != entity.MovementTypeAjuste && input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		materialRepo repository.RawMaterialRepository,
		productRepo repository.FinishedProductRepository,
	) error {
		var err error
		if input.ItemType == entity.ItemKindRawMaterial {
			created, err = applyToRawMaterial(movRepo, materialRepo, input)
		} else {
			created, err = applyToFinishedProduct(movRepo, productRepo, input)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// applyToRawMaterial bloquea la fila de la materia prima, valida la operación
// y actualiza stock y costo promedio (las entradas recalculan el promedio
// ponderado) antes de guardar el movimiento.
func applyToRawMaterial(
	movRepo repository.InventoryMovementRepository,
	materialRepo repository.RawMaterialRepository,
	input MovementInput,
) (*entity.InventoryMovement, error) {
	material, err := materialRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	newStock, err := inventory.ValidateStockOperation(
		material.ID, material.CurrentStock, input.Quantity, input.MovementType, input.ItemType)
	if err != nil {
		return nil, err
	}

	unitCost := resolveUnitCost(input.UnitCost, material.AverageCost, material.UnitCost)
	averageCost := material.AverageCost
	switch input.MovementType {
	case entity.MovementTypeEntrada, entity.MovementTypeDevolucion:
		averageCost = inventory.AverageCost(material.CurrentStock, material.AverageCost, input.Quantity, unitCost)
	}

	if err := materialRepo.UpdateStock(material.ID, newStock, averageCost); err != nil {
		return nil, err
	}
	mov := buildMovement(input, material.CurrentStock, newStock, unitCost)
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// applyToFinishedProduct bloquea la fila del producto terminado, valida la
// operación y actualiza el stock antes de guardar el movimiento.
func applyToFinishedProduct(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.FinishedProductRepository,
	input MovementInput,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	newStock, err := inventory.ValidateStockOperation(
		product.ID, product.CurrentStock, input.Quantity, input.MovementType, input.ItemType)
	if err != nil {
		return nil, err
	}

	unitCost := resolveUnitCost(input.UnitCost, product.TotalCost, product.UnitCost)
	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	mov := buildMovement(input, product.CurrentStock, newStock, unitCost)
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// resolveUnitCost prefiere el costo explícito del movimiento; si falta usa el
// costo promedio del ítem y, si este es cero, el costo unitario de referencia.
func resolveUnitCost(explicit *decimal.Decimal, average, reference decimal.Decimal) decimal.Decimal {
	if explicit != nil {
		return *explicit
	}
	if average.GreaterThan(decimal.Zero) {
		return average
	}
	return reference
}

func buildMovement(input MovementInput, previousStock, newStock, unitCost decimal.Decimal) *entity.InventoryMovement {
	now := time.Now()
	return &entity.InventoryMovement{
		ID:            uuid.New().String(),
		ItemID:        input.ItemID,
		ItemType:      input.ItemType,
		MovementType:  input.MovementType,
		Quantity:      input.Quantity,
		PreviousStock: previousStock,
		NewStock:      newStock,
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Mul(unitCost),
		Reason:        input.Reason,
		PerformedBy:   input.UserID,
		PerformedAt:   now,
		CreatedAt:     now,
	}
}
