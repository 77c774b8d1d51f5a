package inventory

import (
	"context"

	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única garantía contra el lost update en
// el ciclo leer-stock/calcular/escribir-stock: el callback bloquea la fila del
// ítem (GetForUpdate) antes de mutar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		materialRepo repository.RawMaterialRepository,
		productRepo repository.FinishedProductRepository,
	) error) error
}
