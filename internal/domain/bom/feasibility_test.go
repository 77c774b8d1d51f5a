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

// TestFeasibility_CuelloDeBotella: el material más escaso limita la producción.
// A alcanza para 10 unidades, B para 3: pedir 5 → máximo 3, no factible, con B
// en faltantes y el déficit exacto.
func TestFeasibility_CuelloDeBotella(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Tornillo", 20, 1), // 20 / 2 = 10 unidades
		"mat-b": material("mat-b", "Lámina", 9, 1),    // 9 / 3 = 3 unidades
	}}
	svc := bom.NewFeasibilityService(lookup, zerolog.Nop())

	b := testBOM(item("mat-a", 2), item("mat-b", 3))
	result, err := svc.CalculateProductionFeasibility(b, 5)
	require.NoError(t, err)

	assert.False(t, result.CanProduce)
	assert.Equal(t, int64(3), result.MaxQuantity)
	require.Len(t, result.MissingMaterials, 1)

	missing := result.MissingMaterials[0]
	assert.Equal(t, "mat-b", missing.MaterialID)
	assert.True(t, d(15).Equal(missing.Required))  // 5 * 3
	assert.True(t, d(9).Equal(missing.Available))
	assert.True(t, d(6).Equal(missing.Shortage))   // 15 - 9
	assert.NotEmpty(t, result.Warnings, "debe advertir la cantidad reducida producible")
}

// TestFeasibility_CasoSatisfecho: con stock suficiente para lo pedido no hay
// faltantes, aunque el máximo producible supere lo solicitado.
func TestFeasibility_CasoSatisfecho(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Tornillo", 100, 1),
		"mat-b": material("mat-b", "Lámina", 40, 1),
	}}
	svc := bom.NewFeasibilityService(lookup, zerolog.Nop())

	b := testBOM(item("mat-a", 2), item("mat-b", 1))
	result, err := svc.CalculateProductionFeasibility(b, 10)
	require.NoError(t, err)

	assert.True(t, result.CanProduce)
	assert.Empty(t, result.MissingMaterials)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, int64(40), result.MaxQuantity) // limitado por mat-b: 40/1
}

// TestFeasibility_MaterialFaltante: una referencia colgada cuenta como
// disponibilidad cero y garantiza la no factibilidad de ese ítem.
func TestFeasibility_MaterialFaltante(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Tornillo", 100, 1),
	}}
	svc := bom.NewFeasibilityService(lookup, zerolog.Nop())

	b := testBOM(item("mat-a", 1), item("mat-fantasma", 2))
	result, err := svc.CalculateProductionFeasibility(b, 1)
	require.NoError(t, err, "la referencia colgada no aborta la evaluación")

	assert.False(t, result.CanProduce)
	assert.Equal(t, int64(0), result.MaxQuantity)
	require.Len(t, result.MissingMaterials, 1)
	assert.Equal(t, "mat-fantasma", result.MissingMaterials[0].MaterialID)
	assert.True(t, decimal.Zero.Equal(result.MissingMaterials[0].Available))
}

// TestFeasibility_SinItems: un BOM sin ítems colapsa a máximo 0 (salvaguarda;
// la validación estructural debería impedir que exista).
func TestFeasibility_SinItems(t *testing.T) {
	svc := bom.NewFeasibilityService(&fakeMaterials{}, zerolog.Nop())
	result, err := svc.CalculateProductionFeasibility(testBOM(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.MaxQuantity)
}

// TestFeasibility_ItemConCantidadCero: cantidad no positiva en un ítem es un
// defecto estructural y se rechaza antes de dividir contra cero.
func TestFeasibility_ItemConCantidadCero(t *testing.T) {
	svc := bom.NewFeasibilityService(&fakeMaterials{}, zerolog.Nop())
	b := testBOM(entity.BOMItem{RawMaterialID: "mat-a", Quantity: decimal.Zero})

	_, err := svc.CalculateProductionFeasibility(b, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidBOM)
}

// TestFeasibility_CantidadSolicitadaInvalida: pedir cero o negativo es entrada inválida.
func TestFeasibility_CantidadSolicitadaInvalida(t *testing.T) {
	svc := bom.NewFeasibilityService(&fakeMaterials{}, zerolog.Nop())
	_, err := svc.CalculateProductionFeasibility(testBOM(item("mat-a", 1)), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestFeasibility_ErrorDeRepositorioAborta: un fallo inesperado no produce
// resultado parcial.
func TestFeasibility_ErrorDeRepositorioAborta(t *testing.T) {
	lookup := &fakeMaterials{failWith: errors.New("timeout")}
	svc := bom.NewFeasibilityService(lookup, zerolog.Nop())

	_, err := svc.CalculateProductionFeasibility(testBOM(item("mat-a", 1)), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCalculation)
}

// TestFeasibility_DivisionFraccionaria: el máximo por material usa floor.
func TestFeasibility_DivisionFraccionaria(t *testing.T) {
	lookup := &fakeMaterials{materials: map[string]*entity.RawMaterial{
		"mat-a": material("mat-a", "Cable", 10, 1),
	}}
	svc := bom.NewFeasibilityService(lookup, zerolog.Nop())

	b := testBOM(item("mat-a", 3)) // 10/3 = 3.33 → 3
	result, err := svc.CalculateProductionFeasibility(b, 3)
	require.NoError(t, err)
	assert.True(t, result.CanProduce) // 3*3=9 <= 10
	assert.Equal(t, int64(3), result.MaxQuantity)
}
