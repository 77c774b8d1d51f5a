// Package production ejecuta órdenes de producción: consume materias primas
// según el BOM activo y agrega unidades del producto terminado, todo en una
// sola transacción.
package production

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/Macruz95/zadia-os-api/internal/application/inventory"
	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/bom"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/inventory"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// ExecuteProductionUseCase materializa una orden de producción contra el stock.
type ExecuteProductionUseCase struct {
	txRunner appinventory.TxRunner
	bomRepo  repository.BOMRepository
	policy   bom.Policy
}

// NewExecuteProductionUseCase construye el caso de uso.
func NewExecuteProductionUseCase(txRunner appinventory.TxRunner, bomRepo repository.BOMRepository, policy bom.Policy) *ExecuteProductionUseCase {
	return &ExecuteProductionUseCase{txRunner: txRunner, bomRepo: bomRepo, policy: policy}
}

// Input es la orden de producción.
type Input struct {
	UserID            string
	FinishedProductID string
	Quantity          int64
	Reason            string
}

// Result agrupa el reporte de factibilidad evaluado sobre filas bloqueadas y,
// si la orden procedió, los movimientos generados.
type Result struct {
	Feasibility *entity.ProductionFeasibility
	Movements   []*entity.InventoryMovement
}

// Execute carga el BOM activo del producto y, dentro de una transacción,
// bloquea las filas de todas las materias primas (ordenadas por id para evitar
// deadlocks), re-verifica la factibilidad contra el stock bloqueado y aplica
// los movimientos Produccion: una salida por material y una entrada del
// producto terminado. Ante faltantes no se escribe nada y el resultado lleva
// el reporte con los déficits.
func (uc *ExecuteProductionUseCase) Execute(ctx context.Context, input Input) (*Result, error) {
	if input.FinishedProductID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	activeBOM, err := uc.bomRepo.GetActiveByProduct(input.FinishedProductID)
	if err != nil {
		return nil, err
	}
	if activeBOM == nil {
		return nil, domain.ErrNotFound
	}
	if v := bom.ValidateStructure(activeBOM, uc.policy); !v.IsValid {
		return nil, &domain.BOMStructureError{Violations: v.Errors}
	}

	requested := decimal.NewFromInt(input.Quantity)
	result := &Result{}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		materialRepo repository.RawMaterialRepository,
		productRepo repository.FinishedProductRepository,
	) error {
		// Bloqueo en orden estable por id de material.
		items := make([]entity.BOMItem, len(activeBOM.Items))
		copy(items, activeBOM.Items)
		sort.Slice(items, func(i, j int) bool { return items[i].RawMaterialID < items[j].RawMaterialID })

		type lockedMaterial struct {
			item     entity.BOMItem
			material *entity.RawMaterial
			required decimal.Decimal
		}
		locked := make([]lockedMaterial, 0, len(items))

		feasibility := &entity.ProductionFeasibility{
			CanProduce:       true,
			MaxQuantity:      input.Quantity,
			MissingMaterials: []entity.MissingMaterial{},
			Warnings:         []string{},
		}

		for _, it := range items {
			// Un material inexistente cuenta como disponibilidad cero y queda
			// en el reporte de faltantes, igual que en el cálculo de factibilidad.
			material, err := materialRepo.GetForUpdate(it.RawMaterialID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			required := it.Quantity.Mul(requested)

			available := decimal.Zero
			name := it.RawMaterialName
			if material != nil {
				available = material.CurrentStock
				name = material.Name
			}
			if available.LessThan(required) {
				feasibility.CanProduce = false
				feasibility.MissingMaterials = append(feasibility.MissingMaterials, entity.MissingMaterial{
					MaterialID: it.RawMaterialID,
					Name:       name,
					Required:   required,
					Available:  available,
					Shortage:   required.Sub(available),
				})
				continue
			}
			locked = append(locked, lockedMaterial{item: it, material: material, required: required})
		}

		if !feasibility.CanProduce {
			result.Feasibility = feasibility
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		movements := make([]*entity.InventoryMovement, 0, len(locked)+1)

		for _, lm := range locked {
			newStock, err := inventory.ValidateStockOperation(
				lm.material.ID, lm.material.CurrentStock, lm.required,
				entity.MovementTypeProduccion, entity.ItemKindRawMaterial)
			if err != nil {
				return err
			}
			if err := materialRepo.UpdateStock(lm.material.ID, newStock, lm.material.AverageCost); err != nil {
				return err
			}
			unitCost := lm.material.AverageCost
			if !unitCost.GreaterThan(decimal.Zero) {
				unitCost = lm.material.UnitCost
			}
			mov := &entity.InventoryMovement{
				ID:            uuid.New().String(),
				ItemID:        lm.material.ID,
				ItemType:      entity.ItemKindRawMaterial,
				MovementType:  entity.MovementTypeProduccion,
				Quantity:      lm.required,
				PreviousStock: lm.material.CurrentStock,
				NewStock:      newStock,
				UnitCost:      unitCost,
				TotalCost:     lm.required.Mul(unitCost),
				Reason:        input.Reason,
				PerformedBy:   input.UserID,
				PerformedAt:   now,
				CreatedAt:     now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			movements = append(movements, mov)
		}

		product, err := productRepo.GetForUpdate(input.FinishedProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto terminado %s: %w", input.FinishedProductID, domain.ErrNotFound)
		}
		newStock := inventory.CalculateNewStock(
			product.CurrentStock, requested, entity.MovementTypeProduccion, entity.ItemKindFinishedProduct)
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:            uuid.New().String(),
			ItemID:        product.ID,
			ItemType:      entity.ItemKindFinishedProduct,
			MovementType:  entity.MovementTypeProduccion,
			Quantity:      requested,
			PreviousStock: product.CurrentStock,
			NewStock:      newStock,
			UnitCost:      activeBOM.TotalCost,
			TotalCost:     requested.Mul(activeBOM.TotalCost),
			Reason:        input.Reason,
			PerformedBy:   input.UserID,
			PerformedAt:   now,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		movements = append(movements, mov)

		result.Feasibility = feasibility
		result.Movements = movements
		return nil
	})

	if err != nil {
		// La transacción ya hizo rollback; el reporte de faltantes (si lo hay)
		// viaja junto al error para que el llamador lo muestre.
		return result, err
	}
	return result, nil
}
