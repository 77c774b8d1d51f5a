package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Macruz95/zadia-os-api/internal/application/production"
	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/bom"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/infrastructure/memory"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type fixture struct {
	uc        *production.ExecuteProductionUseCase
	materials *memory.RawMaterialRepo
	products  *memory.FinishedProductRepo
	boms      *memory.BOMRepo
	movements *memory.MovementRepo
}

// newFixture arma una mesa con BOM activo: 2 de madera y 4 de tornillos por unidad.
func newFixture(t *testing.T, maderaStock, tornilloStock int64) *fixture {
	t.Helper()
	materials := memory.NewRawMaterialRepository()
	products := memory.NewFinishedProductRepository()
	boms := memory.NewBOMRepository()
	movements := memory.NewMovementRepository()
	runner := memory.NewTxRunner(movements, materials, products)

	require.NoError(t, materials.Create(&entity.RawMaterial{
		ID: "mat-madera", SKU: "MAD", Name: "Madera",
		CurrentStock: d(maderaStock), UnitCost: d(50), AverageCost: d(50), IsActive: true,
	}))
	require.NoError(t, materials.Create(&entity.RawMaterial{
		ID: "mat-tornillo", SKU: "TOR", Name: "Tornillo",
		CurrentStock: d(tornilloStock), UnitCost: d(2), AverageCost: d(2), IsActive: true,
	}))
	require.NoError(t, products.Create(&entity.FinishedProduct{
		ID: "prod-mesa", SKU: "MESA", Name: "Mesa", CurrentStock: d(0), IsActive: true,
	}))
	require.NoError(t, boms.Create(&entity.BillOfMaterials{
		ID: "bom-mesa", FinishedProductID: "prod-mesa", FinishedProductName: "Mesa",
		Version: 1, IsActive: true,
		Items: []entity.BOMItem{
			{RawMaterialID: "mat-madera", RawMaterialName: "Madera", Quantity: d(2), UnitCost: d(50)},
			{RawMaterialID: "mat-tornillo", RawMaterialName: "Tornillo", Quantity: d(4), UnitCost: d(2)},
		},
		TotalMaterialCost: d(108), TotalCost: d(108),
	}))

	return &fixture{
		uc:        production.NewExecuteProductionUseCase(runner, boms, bom.DefaultPolicy()),
		materials: materials,
		products:  products,
		boms:      boms,
		movements: movements,
	}
}

// TestExecute_OrdenCompleta: consume materias primas y agrega terminados en
// una sola operación, con un movimiento Produccion por material más uno del producto.
func TestExecute_OrdenCompleta(t *testing.T) {
	f := newFixture(t, 20, 40) // alcanza para 10 mesas

	result, err := f.uc.Execute(context.Background(), production.Input{
		UserID: "user-1", FinishedProductID: "prod-mesa", Quantity: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Feasibility)
	assert.True(t, result.Feasibility.CanProduce)
	assert.Len(t, result.Movements, 3) // madera, tornillo, mesa

	madera, _ := f.materials.GetByID("mat-madera")
	tornillo, _ := f.materials.GetByID("mat-tornillo")
	mesa, _ := f.products.GetByID("prod-mesa")
	assert.True(t, d(14).Equal(madera.CurrentStock))  // 20 - 3*2
	assert.True(t, d(28).Equal(tornillo.CurrentStock)) // 40 - 3*4
	assert.True(t, d(3).Equal(mesa.CurrentStock))

	// El movimiento del terminado lleva el costo del BOM por unidad.
	last := result.Movements[len(result.Movements)-1]
	assert.Equal(t, entity.ItemKindFinishedProduct, last.ItemType)
	assert.True(t, d(108).Equal(last.UnitCost))
}

// TestExecute_Faltantes: ante déficit de cualquier material no se escribe nada
// y el resultado lleva el reporte con el faltante exacto.
func TestExecute_Faltantes(t *testing.T) {
	f := newFixture(t, 20, 7) // tornillos solo para 1 mesa

	result, err := f.uc.Execute(context.Background(), production.Input{
		UserID: "user-1", FinishedProductID: "prod-mesa", Quantity: 3,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	require.NotNil(t, result)
	require.NotNil(t, result.Feasibility)
	assert.False(t, result.Feasibility.CanProduce)
	require.Len(t, result.Feasibility.MissingMaterials, 1)
	missing := result.Feasibility.MissingMaterials[0]
	assert.Equal(t, "mat-tornillo", missing.MaterialID)
	assert.True(t, d(12).Equal(missing.Required))
	assert.True(t, d(7).Equal(missing.Available))
	assert.True(t, d(5).Equal(missing.Shortage))

	madera, _ := f.materials.GetByID("mat-madera")
	mesa, _ := f.products.GetByID("prod-mesa")
	assert.True(t, d(20).Equal(madera.CurrentStock), "nada se consume ante faltantes")
	assert.True(t, d(0).Equal(mesa.CurrentStock))
	movs, _ := f.movements.List(nil, nil, 100, 0)
	assert.Empty(t, movs)
}

// TestExecute_SinBOMActivo responde not found.
func TestExecute_SinBOMActivo(t *testing.T) {
	f := newFixture(t, 20, 40)
	require.NoError(t, f.boms.Deactivate("bom-mesa"))

	_, err := f.uc.Execute(context.Background(), production.Input{
		UserID: "user-1", FinishedProductID: "prod-mesa", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestExecute_EntradaInvalida: cantidad no positiva o producto vacío.
func TestExecute_EntradaInvalida(t *testing.T) {
	f := newFixture(t, 20, 40)

	_, err := f.uc.Execute(context.Background(), production.Input{
		UserID: "user-1", FinishedProductID: "prod-mesa", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), production.Input{
		UserID: "user-1", FinishedProductID: "", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
