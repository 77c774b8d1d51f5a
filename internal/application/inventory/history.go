package inventory

import (
	"time"

	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// MovementHistoryUseCase consulta el historial de movimientos (solo lectura,
// fuera de transacción: el registro es append-only).
type MovementHistoryUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewMovementHistoryUseCase construye el caso de uso.
func NewMovementHistoryUseCase(movRepo repository.InventoryMovementRepository) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movRepo: movRepo}
}

// List devuelve movimientos en un rango de fechas; itemID vacío lista todos.
func (uc *MovementHistoryUseCase) List(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if itemID != "" {
		return uc.movRepo.ListByItem(itemID, from, to, limit, offset)
	}
	return uc.movRepo.List(from, to, limit, offset)
}

// GetByID devuelve un movimiento puntual.
func (uc *MovementHistoryUseCase) GetByID(id string) (*entity.InventoryMovement, error) {
	return uc.movRepo.GetByID(id)
}
