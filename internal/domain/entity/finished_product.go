package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto terminado.
const (
	ProductStatusDisponible      = "Disponible"
	ProductStatusReservado       = "Reservado"
	ProductStatusVendido         = "Vendido"
	ProductStatusFueraDeCatalogo = "FueraDeCatalogo"
	ProductStatusEnProduccion    = "EnProduccion"
)

// ValidProductStatus verifica que el estado pertenezca al enum.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusDisponible, ProductStatusReservado, ProductStatusVendido,
		ProductStatusFueraDeCatalogo, ProductStatusEnProduccion:
		return true
	}
	return false
}

// FinishedProduct representa un producto terminado fabricado a partir de un BOM.
// UnitCost, LaborCost y OverheadCost derivan del BOM activo (no son editables
// directamente); TotalCost = UnitCost + LaborCost + OverheadCost.
type FinishedProduct struct {
	ID             string
	SKU            string
	Name           string
	Category       string
	CurrentStock   decimal.Decimal
	MinimumStock   decimal.Decimal
	UnitCost       decimal.Decimal // costo de materiales según BOM activo
	LaborCost      decimal.Decimal
	OverheadCost   decimal.Decimal
	TotalCost      decimal.Decimal
	SellingPrice   decimal.Decimal
	SuggestedPrice decimal.Decimal
	Status         string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}
