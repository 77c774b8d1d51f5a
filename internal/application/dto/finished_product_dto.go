package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFinishedProductRequest entrada para crear un producto terminado.
// Los costos no se aceptan aquí: derivan del BOM activo.
type CreateFinishedProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Category       string          `json:"category"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
}

// UpdateFinishedProductRequest entrada para actualizar un producto terminado
// (sin stock ni costos: stock vía movimientos, costos vía BOM activo).
type UpdateFinishedProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category       *string          `json:"category"`
	MinimumStock   *decimal.Decimal `json:"minimum_stock"`
	SellingPrice   *decimal.Decimal `json:"selling_price"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price"`
	Status         *string          `json:"status"`
}

// FinishedProductResponse salida de un producto terminado.
type FinishedProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LaborCost      decimal.Decimal `json:"labor_cost"`
	OverheadCost   decimal.Decimal `json:"overhead_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	Status         string          `json:"status"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FinishedProductListResponse lista paginada de productos terminados.
type FinishedProductListResponse struct {
	Items []FinishedProductResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
