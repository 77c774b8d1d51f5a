package memory

import (
	"context"
	"sync"

	"github.com/Macruz95/zadia-os-api/internal/application/inventory"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las "transacciones" en memoria con un mutex global: dos
// movimientos concurrentes sobre el mismo ítem nunca leen el mismo stock
// previo, que es la garantía que en postgres da SELECT FOR UPDATE.
//
// No hay rollback: un callback que falla puede dejar escrituras parciales.
// Suficiente para tests; el adaptador postgres es el que da atomicidad real.
type TxRunner struct {
	mu          sync.Mutex
	movRepo     repository.InventoryMovementRepository
	materialRepo repository.RawMaterialRepository
	productRepo repository.FinishedProductRepository
}

// NewTxRunner construye el runner sobre los repositorios en memoria.
func NewTxRunner(
	movRepo repository.InventoryMovementRepository,
	materialRepo repository.RawMaterialRepository,
	productRepo repository.FinishedProductRepository,
) *TxRunner {
	return &TxRunner{movRepo: movRepo, materialRepo: materialRepo, productRepo: productRepo}
}

// Run ejecuta fn bajo el mutex global.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	materialRepo repository.RawMaterialRepository,
	productRepo repository.FinishedProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.movRepo, r.materialRepo, r.productRepo)
}
