package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest entrada para crear una materia prima.
// El stock inicial siempre es 0: las existencias entran vía movimientos.
type CreateRawMaterialRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category"`
	UnitMeasure  string          `json:"unit_measure" validate:"required"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost" validate:"required"`
	Location     string          `json:"location"`
}

// UpdateRawMaterialRequest entrada para actualizar una materia prima
// (sin CurrentStock ni AverageCost: se manejan vía movimientos).
type UpdateRawMaterialRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category"`
	UnitMeasure  *string          `json:"unit_measure"`
	MinimumStock *decimal.Decimal `json:"minimum_stock"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Location     *string          `json:"location"`
}

// RawMaterialResponse salida de una materia prima.
type RawMaterialResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitMeasure  string          `json:"unit_measure"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	Location     string          `json:"location"`
	IsActive     bool            `json:"is_active"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RawMaterialListResponse lista paginada de materias primas.
type RawMaterialListResponse struct {
	Items []RawMaterialResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
