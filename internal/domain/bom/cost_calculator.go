package bom

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// Costs es el desglose de costos calculado para un BOM.
// TotalCost = TotalMaterialCost + TotalLaborCost + TotalOverheadCost.
type Costs struct {
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TotalLaborCost    decimal.Decimal `json:"total_labor_cost"`
	TotalOverheadCost decimal.Decimal `json:"total_overhead_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
}

// CostValidation es el resultado consultivo de ValidateCosts: las advertencias
// no bloquean la creación del BOM.
type CostValidation struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
}

// CostService calcula el costo consolidado de un BOM resolviendo cada ítem
// contra el repositorio de materias primas inyectado.
type CostService struct {
	materials MaterialLookup
	policy    Policy
	log       zerolog.Logger
}

// NewCostService construye el servicio de costeo.
func NewCostService(materials MaterialLookup, policy Policy, log zerolog.Logger) *CostService {
	return &CostService{materials: materials, policy: policy, log: log}
}

// CalculateBOMCosts consolida costo de materiales, mano de obra y overhead.
// Una referencia a material inexistente aporta costo cero y se registra como
// advertencia: un dato colgado no debe impedir mostrar el costo del BOM.
// Cualquier otro fallo del repositorio aborta el cálculo completo (sin
// resultado parcial) con un mensaje saneado.
func (s *CostService) CalculateBOMCosts(b *entity.BillOfMaterials) (Costs, error) {
	totalMaterial := decimal.Zero
	for _, item := range b.Items {
		material, err := s.materials.GetByID(item.RawMaterialID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).
				Str("bom_id", b.ID).
				Str("raw_material_id", item.RawMaterialID).
				Msg("error del repositorio durante el costeo del BOM")
			return Costs{}, fmt.Errorf("calcular costos del BOM: %w", domain.ErrCalculation)
		}
		if material == nil {
			s.log.Warn().
				Str("bom_id", b.ID).
				Str("raw_material_id", item.RawMaterialID).
				Msg("materia prima no encontrada, aporta costo cero")
			continue
		}
		totalMaterial = totalMaterial.Add(item.Quantity.Mul(material.UnitCost))
	}

	// Mano de obra y overhead se leen de los campos almacenados: la
	// multiplicación horas x tarifa ocurre al guardar el BOM, no aquí.
	costs := Costs{
		TotalMaterialCost: totalMaterial,
		TotalLaborCost:    b.TotalLaborCost,
		TotalOverheadCost: b.TotalOverheadCost,
	}
	costs.TotalCost = totalMaterial.Add(b.TotalLaborCost).Add(b.TotalOverheadCost)
	return costs, nil
}

// CalculateUnitCost divide el costo total entre el rendimiento esperado.
// Un rendimiento <= 0 se trata como 1: devuelve el costo total sin dividir.
func (s *CostService) CalculateUnitCost(b *entity.BillOfMaterials, yieldQuantity decimal.Decimal) (decimal.Decimal, error) {
	costs, err := s.CalculateBOMCosts(b)
	if err != nil {
		return decimal.Zero, err
	}
	if yieldQuantity.LessThanOrEqual(decimal.Zero) {
		return costs.TotalCost, nil
	}
	return costs.TotalCost.Div(yieldQuantity), nil
}

// ValidateCosts revisa cotas de sanidad sobre los costos ya almacenados en el
// BOM. Es consultivo: costo de material fuera de rango solo advierte;
// rendimiento <= 0 o costo total <= 0 sí invalidan.
func (s *CostService) ValidateCosts(b *entity.BillOfMaterials, expectedYield decimal.Decimal) CostValidation {
	v := CostValidation{IsValid: true, Warnings: []string{}}

	if b.TotalMaterialCost.LessThanOrEqual(decimal.Zero) {
		v.Warnings = append(v.Warnings, "el costo total de materiales es cero o negativo")
	}
	if b.TotalMaterialCost.GreaterThan(s.policy.HighCostThreshold) {
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"el costo de materiales %s supera el umbral de %s",
			b.TotalMaterialCost.String(), s.policy.HighCostThreshold.String()))
	}
	if expectedYield.LessThanOrEqual(decimal.Zero) {
		v.IsValid = false
		v.Warnings = append(v.Warnings, "el rendimiento esperado debe ser mayor que cero")
	}
	if b.TotalCost.LessThanOrEqual(decimal.Zero) {
		v.IsValid = false
		v.Warnings = append(v.Warnings, "el costo total debe ser mayor que cero")
	}
	return v
}
