package bom

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// FeasibilityService evalúa cuántas unidades de un producto terminado se
// pueden producir con el stock actual de materias primas.
type FeasibilityService struct {
	materials MaterialLookup
	log       zerolog.Logger
}

// NewFeasibilityService construye el servicio de factibilidad.
func NewFeasibilityService(materials MaterialLookup, log zerolog.Logger) *FeasibilityService {
	return &FeasibilityService{materials: materials, log: log}
}

// CalculateProductionFeasibility aplica la regla del cuello de botella: la
// capacidad total es el mínimo de floor(disponible/requerido-por-unidad) entre
// todos los ítems. Un material no encontrado cuenta como disponibilidad cero
// (garantiza no-factibilidad para ese ítem) sin abortar la evaluación; un
// error inesperado del repositorio sí aborta sin resultado parcial.
//
// Un ítem con cantidad <= 0 es un defecto estructural y produce
// BOMStructureError en lugar de dejar que la división contra cero ocurra:
// esta verificación se repite aquí porque nada garantiza que el llamador haya
// pasado antes por ValidateStructure.
func (s *FeasibilityService) CalculateProductionFeasibility(b *entity.BillOfMaterials, requestedQuantity int64) (*entity.ProductionFeasibility, error) {
	if requestedQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &entity.ProductionFeasibility{
		CanProduce:       true,
		MissingMaterials: []entity.MissingMaterial{},
		Warnings:         []string{},
	}

	requested := decimal.NewFromInt(requestedQuantity)
	maxPossible := int64(math.MaxInt64)

	for _, item := range b.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, &domain.BOMStructureError{Violations: []string{
				fmt.Sprintf("el ítem %s tiene cantidad no positiva", item.RawMaterialID),
			}}
		}

		material, err := s.materials.GetByID(item.RawMaterialID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).
				Str("bom_id", b.ID).
				Str("raw_material_id", item.RawMaterialID).
				Msg("error del repositorio durante el cálculo de factibilidad")
			return nil, fmt.Errorf("calcular factibilidad de producción: %w", domain.ErrCalculation)
		}

		available := decimal.Zero
		name := item.RawMaterialName
		if material != nil {
			available = material.CurrentStock
			name = material.Name
		} else {
			s.log.Warn().
				Str("bom_id", b.ID).
				Str("raw_material_id", item.RawMaterialID).
				Msg("materia prima no encontrada, disponibilidad cero")
		}

		required := item.Quantity.Mul(requested)
		materialMax := available.Div(item.Quantity).Floor().IntPart()
		if materialMax < maxPossible {
			maxPossible = materialMax
		}

		if available.LessThan(required) {
			result.CanProduce = false
			result.MissingMaterials = append(result.MissingMaterials, entity.MissingMaterial{
				MaterialID: item.RawMaterialID,
				Name:       name,
				Required:   required,
				Available:  available,
				Shortage:   required.Sub(available),
			})
		}
	}

	// Un BOM sin ítems no debería existir (la validación estructural lo
	// impide), pero el mínimo quedaría "sin restricción": se normaliza a 0.
	if maxPossible == math.MaxInt64 {
		maxPossible = 0
	}
	result.MaxQuantity = maxPossible

	if maxPossible > 0 && maxPossible < requestedQuantity {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"stock insuficiente para %d unidades: solo se pueden producir %d",
			requestedQuantity, maxPossible))
	}

	return result, nil
}
