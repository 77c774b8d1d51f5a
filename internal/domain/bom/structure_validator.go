package bom

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// StructureValidation es el resultado de validar la estructura de un BOM:
// los errores bloquean la creación, las advertencias no.
type StructureValidation struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateStructure revisa los invariantes estructurales de un BOM con
// independencia del stock: producto referenciado, ítems no vacíos con
// material y cantidad positiva, y versión >= 1. Determinista: la misma
// entrada produce siempre el mismo resultado.
func ValidateStructure(b *entity.BillOfMaterials, policy Policy) StructureValidation {
	v := StructureValidation{IsValid: true, Errors: []string{}, Warnings: []string{}}

	if b.FinishedProductID == "" {
		v.Errors = append(v.Errors, "el BOM debe referenciar un producto terminado")
	}
	if len(b.Items) == 0 {
		v.Errors = append(v.Errors, "el BOM debe tener al menos un ítem")
	}
	for i, item := range b.Items {
		if item.RawMaterialID == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("el ítem %d no referencia una materia prima", i+1))
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			v.Errors = append(v.Errors, fmt.Sprintf("el ítem %d debe tener cantidad mayor que cero", i+1))
		} else if item.Quantity.GreaterThan(policy.HighQuantityThreshold) {
			// Cantidades inusualmente grandes se señalan pero se permiten.
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"el ítem %d tiene una cantidad inusualmente alta (%s)", i+1, item.Quantity.String()))
		}
	}
	if b.Version < 1 {
		v.Errors = append(v.Errors, "la versión del BOM debe ser mayor o igual a 1")
	}

	v.IsValid = len(v.Errors) == 0
	return v
}
