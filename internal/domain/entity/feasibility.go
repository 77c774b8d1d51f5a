package entity

import "github.com/shopspring/decimal"

// MissingMaterial describe el faltante de una materia prima para una orden de producción.
type MissingMaterial struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
	Shortage   decimal.Decimal `json:"shortage"`
}

// ProductionFeasibility es el resultado (no persistido) de evaluar si se puede
// producir la cantidad solicitada de un producto con el stock actual.
// MaxQuantity es el techo de producción impuesto por el material más escaso.
type ProductionFeasibility struct {
	CanProduce       bool              `json:"can_produce"`
	MaxQuantity      int64             `json:"max_quantity"`
	MissingMaterials []MissingMaterial `json:"missing_materials"`
	Warnings         []string          `json:"warnings"`
}
