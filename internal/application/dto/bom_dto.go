package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItemRequest línea de receta en la creación/actualización de un BOM.
type BOMItemRequest struct {
	RawMaterialID string          `json:"raw_material_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateBOMRequest entrada para crear una versión de BOM.
type CreateBOMRequest struct {
	FinishedProductID   string           `json:"finished_product_id" validate:"required"`
	Items               []BOMItemRequest `json:"items" validate:"required,min=1"`
	EstimatedLaborHours decimal.Decimal  `json:"estimated_labor_hours"`
	LaborCostPerHour    decimal.Decimal  `json:"labor_cost_per_hour"`
	OverheadPercentage  decimal.Decimal  `json:"overhead_percentage"`
	Notes               string           `json:"notes"`
}

// UpdateBOMRequest entrada para actualizar un BOM. Items no nil reemplaza la
// receta completa y fuerza el recosteo.
type UpdateBOMRequest struct {
	Items               []BOMItemRequest `json:"items"`
	EstimatedLaborHours *decimal.Decimal `json:"estimated_labor_hours"`
	LaborCostPerHour    *decimal.Decimal `json:"labor_cost_per_hour"`
	OverheadPercentage  *decimal.Decimal `json:"overhead_percentage"`
	Notes               *string          `json:"notes"`
}

// BOMItemResponse línea de receta en la salida.
type BOMItemResponse struct {
	RawMaterialID   string          `json:"raw_material_id"`
	RawMaterialName string          `json:"raw_material_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitMeasure     string          `json:"unit_measure"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// BOMResponse salida de un BOM.
type BOMResponse struct {
	ID                  string            `json:"id"`
	FinishedProductID   string            `json:"finished_product_id"`
	FinishedProductName string            `json:"finished_product_name"`
	Version             int               `json:"version"`
	Items               []BOMItemResponse `json:"items"`
	TotalMaterialCost   decimal.Decimal   `json:"total_material_cost"`
	EstimatedLaborHours decimal.Decimal   `json:"estimated_labor_hours"`
	LaborCostPerHour    decimal.Decimal   `json:"labor_cost_per_hour"`
	TotalLaborCost      decimal.Decimal   `json:"total_labor_cost"`
	OverheadPercentage  decimal.Decimal   `json:"overhead_percentage"`
	TotalOverheadCost   decimal.Decimal   `json:"total_overhead_cost"`
	TotalCost           decimal.Decimal   `json:"total_cost"`
	Notes               string            `json:"notes"`
	IsActive            bool              `json:"is_active"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}
