package bom_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/bom"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// fakeMaterials es un MaterialLookup en memoria para los tests de dominio.
type fakeMaterials struct {
	materials map[string]*entity.RawMaterial
	failWith  error // si no es nil, GetByID siempre falla con este error
}

func (f *fakeMaterials) GetByID(id string) (*entity.RawMaterial, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	m, ok := f.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func material(id, name string, stock, unitCost int64) *entity.RawMaterial {
	return &entity.RawMaterial{
		ID:           id,
		Name:         name,
		CurrentStock: d(stock),
		UnitCost:     d(unitCost),
		IsActive:     true,
	}
}

func testBOM(items ...entity.BOMItem) *entity.BillOfMaterials {
	return &entity.BillOfMaterials{
		ID:                "bom-1",
		FinishedProductID: "prod-1",
		Version:           1,
		Items:             items,
		IsActive:          true,
	}
}

func item(materialID string, qty int64) entity.BOMItem {
	return entity.BOMItem{RawMaterialID: materialID, Quantity: d(qty)}
}

// TestCalculateBOMCosts_Aditividad: el costo total es exactamente la suma de
// materiales + mano de obra + overhead, sin deriva.
func TestCalculateBOMCosts_Aditividad(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Tornillo", 100, 3),
		"mat-b": material("mat-b", "Lámina", 50, 20),
	}}
	svc := bom.NewCostService(lookup, bom.DefaultPolicy(), zerolog.Nop())

	b := testBOM(item("mat-a", 4), item("mat-b", 2))
	b.TotalLaborCost = d(30)
	b.TotalOverheadCost = d(8)

	costs, err := svc.CalculateBOMCosts(b)
	require.NoError(t, err)

	// 4*3 + 2*20 = 52 de materiales
	assert.True(t, d(52).Equal(costs.TotalMaterialCost))
	assert.True(t, d(30).Equal(costs.TotalLaborCost))
	assert.True(t, d(8).Equal(costs.TotalOverheadCost))
	sum := costs.TotalMaterialCost.Add(costs.TotalLaborCost).Add(costs.TotalOverheadCost)
	assert.True(t, sum.Equal(costs.TotalCost), "TotalCost debe ser la suma exacta de los tres componentes")
}

// TestCalculateBOMCosts_MaterialFaltanteDegrada: una referencia colgada aporta
// costo cero en lugar de abortar el cálculo.
func TestCalculateBOMCosts_MaterialFaltanteDegrada(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Tornillo", 100, 3),
	}}
	svc := bom.NewCostService(lookup, bom.DefaultPolicy(), zerolog.Nop())

	b := testBOM(item("mat-a", 4), item("mat-borrado", 2))
	costs, err := svc.CalculateBOMCosts(b)
	require.NoError(t, err, "un material faltante no debe hacer fallar el costeo")
	assert.True(t, d(12).Equal(costs.TotalMaterialCost), "el ítem colgado aporta cero")
}

// TestCalculateBOMCosts_ErrorDeRepositorioAborta: un fallo inesperado del
// repositorio rechaza el cálculo completo, sin resultado parcial.
func TestCalculateBOMCosts_ErrorDeRepositorioAborta(t *testing.T) {
	lookup := &fakeMaterials{failWith: errors.New("conexión perdida")}
	svc := bom.NewCostService(lookup, bom.DefaultPolicy(), zerolog.Nop())

	_, err := svc.CalculateBOMCosts(testBOM(item("mat-a", 1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCalculation)
	assert.NotContains(t, err.Error(), "conexión perdida",
		"el error interno del repositorio no debe filtrarse al llamador")
}

// TestCalculateUnitCost_Rendimiento: divide por el rendimiento y trata
// rendimiento cero como uno por seguridad.
func TestCalculateUnitCost_Rendimiento(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Tornillo", 100, 10),
	}}
	svc := bom.NewCostService(lookup, bom.DefaultPolicy(), zerolog.Nop())
	b := testBOM(item("mat-a", 10)) // 100 de materiales

	unit, err := svc.CalculateUnitCost(b, d(4))
	require.NoError(t, err)
	assert.True(t, d(25).Equal(unit))

	unit, err = svc.CalculateUnitCost(b, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, d(100).Equal(unit), "rendimiento cero devuelve el costo total sin dividir")
}

// TestValidateCosts_Advertencias: las cotas de sanidad son consultivas salvo
// rendimiento y costo total no positivos.
func TestValidateCosts_Advertencias(t *testing.T) {
	svc := bom.NewCostService(&fakeMaterials{}, bom.DefaultPolicy(), zerolog.Nop())

	t.Run("costos sanos", func(t *testing.T) {
		b := testBOM(item("mat-a", 1))
		b.TotalMaterialCost = d(500)
		b.TotalCost = d(600)
		v := svc.ValidateCosts(b, d(1))
		assert.True(t, v.IsValid)
		assert.Empty(t, v.Warnings)
	})

	t.Run("costo de material alto solo advierte", func(t *testing.T) {
		b := testBOM(item("mat-a", 1))
		b.TotalMaterialCost = d(10001)
		b.TotalCost = d(10001)
		v := svc.ValidateCosts(b, d(1))
		assert.True(t, v.IsValid, "superar el umbral no invalida")
		assert.Len(t, v.Warnings, 1)
	})

	t.Run("material en cero advierte sin invalidar", func(t *testing.T) {
		b := testBOM(item("mat-a", 1))
		b.TotalMaterialCost = decimal.Zero
		b.TotalCost = d(50)
		v := svc.ValidateCosts(b, d(1))
		assert.True(t, v.IsValid)
		assert.NotEmpty(t, v.Warnings)
	})

	t.Run("rendimiento no positivo invalida", func(t *testing.T) {
		b := testBOM(item("mat-a", 1))
		b.TotalMaterialCost = d(10)
		b.TotalCost = d(10)
		v := svc.ValidateCosts(b, decimal.Zero)
		assert.False(t, v.IsValid)
	})

	t.Run("costo total no positivo invalida", func(t *testing.T) {
		b := testBOM(item("mat-a", 1))
		b.TotalMaterialCost = d(10)
		b.TotalCost = decimal.Zero
		v := svc.ValidateCosts(b, d(1))
		assert.False(t, v.IsValid)
	})

	t.Run("umbral configurable", func(t *testing.T) {
		policy := bom.Policy{HighCostThreshold: d(100), HighQuantityThreshold: d(1000)}
		strict := bom.NewCostService(&fakeMaterials{}, policy, zerolog.Nop())
		b := testBOM(item("mat-a", 1))
		b.TotalMaterialCost = d(101)
		b.TotalCost = d(101)
		v := strict.ValidateCosts(b, d(1))
		assert.Len(t, v.Warnings, 1)
	})
}
