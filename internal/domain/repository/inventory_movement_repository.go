package repository

import (
	"time"

	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos
// de inventario. Los movimientos son append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
