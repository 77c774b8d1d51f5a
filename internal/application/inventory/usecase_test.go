package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/Macruz95/zadia-os-api/internal/application/inventory"
	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/infrastructure/memory"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type fixture struct {
	uc        *appinventory.RegisterMovementUseCase
	materials *memory.RawMaterialRepo
	products  *memory.FinishedProductRepo
	movements *memory.MovementRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	materials := memory.NewRawMaterialRepository()
	products := memory.NewFinishedProductRepository()
	movements := memory.NewMovementRepository()
	runner := memory.NewTxRunner(movements, materials, products)
	return &fixture{
		uc:        appinventory.NewRegisterMovementUseCase(runner),
		materials: materials,
		products:  products,
		movements: movements,
	}
}

func (f *fixture) seedMaterial(t *testing.T, id string, stock, unitCost int64) {
	t.Helper()
	err := f.materials.Create(&entity.RawMaterial{
		ID: id, SKU: "SKU-" + id, Name: "Material " + id,
		CurrentStock: d(stock), UnitCost: d(unitCost), AverageCost: d(unitCost),
		IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
}

// TestRegisterMovement_Entrada: suma stock, recalcula el costo promedio y deja
// el registro de auditoría con stock previo y nuevo capturados.
func TestRegisterMovement_Entrada(t *testing.T) {
	f := newFixture(t)
	f.seedMaterial(t, "mat-1", 10, 100)

	cost := d(200)
	mov, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		UserID:       "user-1",
		ItemID:       "mat-1",
		ItemType:     entity.ItemKindRawMaterial,
		MovementType: entity.MovementTypeEntrada,
		Quantity:     d(10),
		UnitCost:     &cost,
	})
	require.NoError(t, err)

	assert.True(t, d(10).Equal(mov.PreviousStock))
	assert.True(t, d(20).Equal(mov.NewStock))
	assert.True(t, d(2000).Equal(mov.TotalCost))
	assert.Equal(t, "user-1", mov.PerformedBy)

	material, err := f.materials.GetByID("mat-1")
	require.NoError(t, err)
	assert.True(t, d(20).Equal(material.CurrentStock))
	// (10*100 + 10*200) / 20 = 150
	assert.True(t, d(150).Equal(material.AverageCost))
}

// TestRegisterMovement_SalidaInsuficiente: el movimiento se rechaza y no se
// escribe nada, ni stock ni registro de auditoría.
func TestRegisterMovement_SalidaInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seedMaterial(t, "mat-1", 3, 100)

	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		UserID:       "user-1",
		ItemID:       "mat-1",
		ItemType:     entity.ItemKindRawMaterial,
		MovementType: entity.MovementTypeSalida,
		Quantity:     d(7),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail))
	assert.True(t, d(3).Equal(detail.CurrentStock))
	assert.True(t, d(7).Equal(detail.Requested))

	material, _ := f.materials.GetByID("mat-1")
	assert.True(t, d(3).Equal(material.CurrentStock), "el stock no debe cambiar")
	movs, _ := f.movements.ListByItem("mat-1", nil, nil, 10, 0)
	assert.Empty(t, movs, "no debe quedar registro de auditoría")
}

// TestRegisterMovement_Ajuste: fija el stock en la cantidad dada, incluso a la baja.
func TestRegisterMovement_Ajuste(t *testing.T) {
	f := newFixture(t)
	f.seedMaterial(t, "mat-1", 100, 10)

	mov, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		UserID:       "user-1",
		ItemID:       "mat-1",
		ItemType:     entity.ItemKindRawMaterial,
		MovementType: entity.MovementTypeAjuste,
		Quantity:     d(5),
		Reason:       "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, d(5).Equal(mov.NewStock))

	material, _ := f.materials.GetByID("mat-1")
	assert.True(t, d(5).Equal(material.CurrentStock))
}

// TestRegisterMovement_ProduccionSobreTerminado agrega unidades producidas.
func TestRegisterMovement_ProduccionTerminado(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.products.Create(&entity.FinishedProduct{
		ID: "prod-1", SKU: "P-1", Name: "Mesa", CurrentStock: d(2),
		TotalCost: d(500), IsActive: true,
	}))

	mov, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		UserID:       "user-1",
		ItemID:       "prod-1",
		ItemType:     entity.ItemKindFinishedProduct,
		MovementType: entity.MovementTypeProduccion,
		Quantity:     d(3),
	})
	require.NoError(t, err)
	assert.True(t, d(5).Equal(mov.NewStock))
	assert.True(t, d(500).Equal(mov.UnitCost), "sin costo explícito usa el costo del producto")
}

// TestRegisterMovement_EntradaInvalida: tipos desconocidos, ítem vacío o
// cantidades inválidas se rechazan antes de abrir transacción.
func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, appinventory.MovementInput{
		ItemID: "", ItemType: entity.ItemKindRawMaterial,
		MovementType: entity.MovementTypeEntrada, Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterMovement(ctx, appinventory.MovementInput{
		ItemID: "mat-1", ItemType: entity.ItemKindRawMaterial,
		MovementType: "Traslado", Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterMovement(ctx, appinventory.MovementInput{
		ItemID: "mat-1", ItemType: entity.ItemKindRawMaterial,
		MovementType: entity.MovementTypeEntrada, Quantity: d(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero solo es válida en Ajuste")
}

// TestRegisterMovement_ItemInexistente responde not found.
func TestRegisterMovement_ItemInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		UserID: "user-1", ItemID: "fantasma",
		ItemType:     entity.ItemKindRawMaterial,
		MovementType: entity.MovementTypeEntrada, Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRegisterMovement_SinLostUpdate: dos movimientos concurrentes sobre el
// mismo ítem deben reflejarse ambos en el stock final. El TxRunner serializa
// el ciclo leer-calcular-escribir; sin esa exclusión uno de los dos se
// perdería silenciosamente.
func TestRegisterMovement_SinLostUpdate(t *testing.T) {
	f := newFixture(t)
	f.seedMaterial(t, "mat-1", 0, 10)

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.RegisterMovement(context.Background(), appinventory.MovementInput{
				UserID:       "user-1",
				ItemID:       "mat-1",
				ItemType:     entity.ItemKindRawMaterial,
				MovementType: entity.MovementTypeEntrada,
				Quantity:     d(5),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	material, err := f.materials.GetByID("mat-1")
	require.NoError(t, err)
	assert.True(t, d(50).Equal(material.CurrentStock),
		"el stock final debe acumular los %d movimientos, obtenido %s", workers, material.CurrentStock.String())

	movs, err := f.movements.ListByItem("mat-1", nil, nil, 100, 0)
	require.NoError(t, err)
	assert.Len(t, movs, workers)
}
