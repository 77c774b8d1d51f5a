package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/inventory"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// TestCalculateNewStock_TablaDePolitica recorre la tabla completa de tipos de
// movimiento por clase de ítem: es la regla de negocio central del subsistema.
func TestCalculateNewStock_TablaDePolitica(t *testing.T) {
	cases := []struct {
		name         string
		currentStock int64
		quantity     int64
		movementType string
		itemKind     string
		want         int64
	}{
		{"entrada suma", 10, 3, entity.MovementTypeEntrada, entity.ItemKindRawMaterial, 13},
		{"devolucion suma", 10, 3, entity.MovementTypeDevolucion, entity.ItemKindFinishedProduct, 13},
		{"salida resta", 10, 3, entity.MovementTypeSalida, entity.ItemKindRawMaterial, 7},
		{"merma resta", 10, 3, entity.MovementTypeMerma, entity.ItemKindRawMaterial, 7},
		{"venta resta", 10, 3, entity.MovementTypeVenta, entity.ItemKindFinishedProduct, 7},
		{"salida nunca negativa", 2, 5, entity.MovementTypeSalida, entity.ItemKindRawMaterial, 0},
		{"ajuste es absoluto", 10, 5, entity.MovementTypeAjuste, entity.ItemKindRawMaterial, 5},
		{"ajuste ignora stock actual", 0, 42, entity.MovementTypeAjuste, entity.ItemKindFinishedProduct, 42},
		{"produccion consume materia prima", 10, 4, entity.MovementTypeProduccion, entity.ItemKindRawMaterial, 6},
		{"produccion agrega terminado", 10, 4, entity.MovementTypeProduccion, entity.ItemKindFinishedProduct, 14},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.CalculateNewStock(d(tc.currentStock), d(tc.quantity), tc.movementType, tc.itemKind)
			assert.True(t, d(tc.want).Equal(got),
				"esperado %d, obtenido %s", tc.want, got.String())
		})
	}
}

// TestValidateStockOperation_StockInsuficiente verifica que un movimiento que
// dejaría el stock en negativo se rechaza y NUNCA reporta stock negativo.
func TestValidateStockOperation_StockInsuficiente(t *testing.T) {
	for _, movType := range []string{
		entity.MovementTypeSalida,
		entity.MovementTypeMerma,
		entity.MovementTypeVenta,
	} {
		t.Run(movType, func(t *testing.T) {
			_, err := inventory.ValidateStockOperation("mat-1", d(3), d(7), movType, entity.ItemKindRawMaterial)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

			var insufficientErr *domain.InsufficientStockError
			require.True(t, errors.As(err, &insufficientErr))
			assert.True(t, d(3).Equal(insufficientErr.CurrentStock), "debe informar el stock actual")
			assert.True(t, d(7).Equal(insufficientErr.Requested), "debe informar la cantidad solicitada")
		})
	}
}

// TestValidateStockOperation_ProduccionInsuficiente: producción que consume más
// materia prima de la disponible se rechaza; sobre producto terminado suma y pasa.
func TestValidateStockOperation_Produccion(t *testing.T) {
	_, err := inventory.ValidateStockOperation("mat-1", d(3), d(7), entity.MovementTypeProduccion, entity.ItemKindRawMaterial)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	newStock, err := inventory.ValidateStockOperation("prod-1", d(3), d(7), entity.MovementTypeProduccion, entity.ItemKindFinishedProduct)
	require.NoError(t, err)
	assert.True(t, d(10).Equal(newStock))
}

// TestValidateStockOperation_AjusteNoValidaContraStock: el ajuste fija el stock
// en la cantidad dada aunque sea menor al stock actual.
func TestValidateStockOperation_Ajuste(t *testing.T) {
	newStock, err := inventory.ValidateStockOperation("mat-1", d(100), d(5), entity.MovementTypeAjuste, entity.ItemKindRawMaterial)
	require.NoError(t, err)
	assert.True(t, d(5).Equal(newStock))
}

// TestValidateStockOperation_EntradasValidas: los movimientos aditivos nunca fallan.
func TestValidateStockOperation_EntradasValidas(t *testing.T) {
	newStock, err := inventory.ValidateStockOperation("mat-1", d(0), d(9), entity.MovementTypeEntrada, entity.ItemKindRawMaterial)
	require.NoError(t, err)
	assert.True(t, d(9).Equal(newStock))

	newStock, err = inventory.ValidateStockOperation("prod-1", d(1), d(2), entity.MovementTypeDevolucion, entity.ItemKindFinishedProduct)
	require.NoError(t, err)
	assert.True(t, d(3).Equal(newStock))
}

// TestValidateStockOperation_EntradaInvalida: tipo o clase desconocidos y
// cantidades negativas se rechazan antes de calcular.
func TestValidateStockOperation_EntradaInvalida(t *testing.T) {
	_, err := inventory.ValidateStockOperation("mat-1", d(10), d(1), "Traslado", entity.ItemKindRawMaterial)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ValidateStockOperation("mat-1", d(10), d(1), entity.MovementTypeEntrada, "bodega")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ValidateStockOperation("mat-1", d(10), d(-1), entity.MovementTypeEntrada, entity.ItemKindRawMaterial)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestAverageCost_PromedioPonderado verifica la fórmula de costo promedio tras una entrada.
func TestAverageCost_PromedioPonderado(t *testing.T) {
	// (10 * 100 + 10 * 200) / 20 = 150
	got := inventory.AverageCost(d(10), d(100), d(10), d(200))
	assert.True(t, d(150).Equal(got))

	// Sin stock previo el promedio es el costo de la entrada.
	got = inventory.AverageCost(d(0), d(0), d(5), d(80))
	assert.True(t, d(80).Equal(got))

	// Sin cantidades el promedio colapsa a cero.
	got = inventory.AverageCost(d(0), d(0), d(0), d(0))
	assert.True(t, decimal.Zero.Equal(got))
}
