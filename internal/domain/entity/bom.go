package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItem es una línea de la lista de materiales: cuánta materia prima se
// necesita para producir UNA unidad del producto terminado. RawMaterialName y
// UnitCost son copias desnormalizadas tomadas al crear el BOM; la referencia
// real se resuelve por RawMaterialID.
type BOMItem struct {
	RawMaterialID   string          `json:"raw_material_id"`
	RawMaterialName string          `json:"raw_material_name"`
	Quantity        decimal.Decimal `json:"quantity"` // > 0
	UnitMeasure     string          `json:"unit_measure"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"` // Quantity * UnitCost
}

// BillOfMaterials es la receta versionada de un producto terminado.
// Puede haber varias versiones por producto pero a lo sumo una activa; la
// desactivación es baja lógica para conservar el histórico de costeo de lo
// ya producido con esa versión.
type BillOfMaterials struct {
	ID                  string
	FinishedProductID   string
	FinishedProductName string
	Version             int // >= 1, monotónico por producto
	Items               []BOMItem
	TotalMaterialCost   decimal.Decimal
	EstimatedLaborHours decimal.Decimal
	LaborCostPerHour    decimal.Decimal
	TotalLaborCost      decimal.Decimal // EstimatedLaborHours * LaborCostPerHour
	OverheadPercentage  decimal.Decimal // 0 - 100
	TotalOverheadCost   decimal.Decimal
	TotalCost           decimal.Decimal // material + labor + overhead
	Notes               string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedBy           string
}
