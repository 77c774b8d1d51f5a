package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada    = "Entrada"
	MovementTypeSalida     = "Salida"
	MovementTypeAjuste     = "Ajuste" // la cantidad SE CONVIERTE en el stock (valor absoluto)
	MovementTypeMerma      = "Merma"
	MovementTypeProduccion = "Produccion" // consume materia prima, produce terminado
	MovementTypeVenta      = "Venta"
	MovementTypeDevolucion = "Devolucion"
)

// ValidMovementType verifica que el tipo pertenezca al enum.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste,
		MovementTypeMerma, MovementTypeProduccion, MovementTypeVenta,
		MovementTypeDevolucion:
		return true
	}
	return false
}

// Clase de ítem afectado por un movimiento.
const (
	ItemKindRawMaterial     = "raw_material"
	ItemKindFinishedProduct = "finished_product"
)

// ValidItemKind verifica que la clase de ítem pertenezca al enum.
func ValidItemKind(k string) bool {
	return k == ItemKindRawMaterial || k == ItemKindFinishedProduct
}

// InventoryMovement es el registro de auditoría de un cambio de stock.
// PreviousStock y NewStock se capturan al crearlo; los movimientos son
// append-only: nunca se mutan ni se borran.
type InventoryMovement struct {
	ID            string
	ItemID        string
	ItemType      string // raw_material | finished_product
	MovementType  string
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal // Quantity * UnitCost
	Reason        string
	PerformedBy   string
	PerformedAt   time.Time
	CreatedAt     time.Time
}
