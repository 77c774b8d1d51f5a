package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ItemID       string           `json:"item_id" validate:"required"`
	ItemType     string           `json:"item_type" validate:"required"` // raw_material | finished_product
	MovementType string           `json:"movement_type" validate:"required"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason       string           `json:"reason"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	ItemType      string          `json:"item_type"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Reason        string          `json:"reason"`
	PerformedBy   string          `json:"performed_by"`
	PerformedAt   time.Time       `json:"performed_at"`
}

// ExecuteProductionRequest body para POST /api/production/execute.
type ExecuteProductionRequest struct {
	FinishedProductID string `json:"finished_product_id" validate:"required"`
	Quantity          int64  `json:"quantity" validate:"required,min=1"`
	Reason            string `json:"reason"`
}
