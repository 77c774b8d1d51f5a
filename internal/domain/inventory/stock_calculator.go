package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// CalculateNewStock aplica la política de movimientos sobre el stock actual
// (servicio de dominio, función pura):
//
//	Entrada, Devolucion        -> stock + cantidad
//	Salida, Merma, Venta       -> max(0, stock - cantidad)
//	Produccion (materia prima) -> max(0, stock - cantidad)
//	Produccion (terminado)     -> stock + cantidad
//	Ajuste                     -> la cantidad es el nuevo stock (absoluto)
func CalculateNewStock(currentStock, quantity decimal.Decimal, movementType, itemKind string) decimal.Decimal {
	switch movementType {
	case entity.MovementTypeEntrada, entity.MovementTypeDevolucion:
		return currentStock.Add(quantity)
	case entity.MovementTypeSalida, entity.MovementTypeMerma, entity.MovementTypeVenta:
		return clampZero(currentStock.Sub(quantity))
	case entity.MovementTypeProduccion:
		if itemKind == entity.ItemKindFinishedProduct {
			return currentStock.Add(quantity)
		}
		return clampZero(currentStock.Sub(quantity))
	case entity.MovementTypeAjuste:
		return quantity
	}
	return currentStock
}

// ValidateStockOperation calcula el nuevo stock y rechaza el movimiento cuando
// el resultado sería negativo para cualquier tipo distinto de Ajuste. Debe
// ejecutarse SIEMPRE antes de persistir la mutación de stock: no hay
// transacción compensatoria después.
func ValidateStockOperation(itemID string, currentStock, quantity decimal.Decimal, movementType, itemKind string) (decimal.Decimal, error) {
	if !entity.ValidMovementType(movementType) || !entity.ValidItemKind(itemKind) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if quantity.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if movementType != entity.MovementTypeAjuste && subtracts(movementType, itemKind) {
		if currentStock.LessThan(quantity) {
			return decimal.Zero, &domain.InsufficientStockError{
				ItemID:       itemID,
				CurrentStock: currentStock,
				Requested:    quantity,
			}
		}
	}
	return CalculateNewStock(currentStock, quantity, movementType, itemKind), nil
}

// subtracts indica si el movimiento resta stock para la clase de ítem dada.
func subtracts(movementType, itemKind string) bool {
	switch movementType {
	case entity.MovementTypeSalida, entity.MovementTypeMerma, entity.MovementTypeVenta:
		return true
	case entity.MovementTypeProduccion:
		return itemKind == entity.ItemKindRawMaterial
	}
	return false
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
