package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima del inventario de manufactura.
// CurrentStock solo se muta vía movimientos de inventario; la baja es lógica
// (IsActive=false), nunca física, para preservar referencias históricas de BOMs.
type RawMaterial struct {
	ID           string
	SKU          string // código único
	Name         string
	Category     string
	UnitMeasure  string          // unidad de medida (kg, m, unidad, ...)
	CurrentStock decimal.Decimal // existencia actual, >= 0
	MinimumStock decimal.Decimal // punto de reorden
	UnitCost     decimal.Decimal // costo por unidad, > 0
	AverageCost  decimal.Decimal // costo promedio ponderado
	Location     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// BelowMinimum indica si la materia prima está en o por debajo del punto de reorden.
func (m *RawMaterial) BelowMinimum() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinimumStock)
}
