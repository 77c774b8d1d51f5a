// Package bom contiene los servicios de dominio de listas de materiales:
// costeo, factibilidad de producción y validación estructural.
package bom

import (
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// MaterialLookup resuelve referencias de BOMItem a materias primas.
// GetByID no filtra por IsActive: una referencia histórica sigue siendo
// resoluble aunque el material esté dado de baja.
type MaterialLookup interface {
	GetByID(id string) (*entity.RawMaterial, error)
}

// Policy agrupa los umbrales heurísticos de validación. Son política
// configurable, no constantes del dominio: el "costo inusualmente alto" de un
// taller no es el de otro.
type Policy struct {
	HighCostThreshold     decimal.Decimal // advertencia si TotalMaterialCost lo supera
	HighQuantityThreshold decimal.Decimal // advertencia si la cantidad de un ítem lo supera
}

// DefaultPolicy devuelve los umbrales por defecto (10000 / 1000).
func DefaultPolicy() Policy {
	return Policy{
		HighCostThreshold:     decimal.NewFromInt(10000),
		HighQuantityThreshold: decimal.NewFromInt(1000),
	}
}
