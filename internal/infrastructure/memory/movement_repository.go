package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo guarda movimientos en memoria. Append-only como el contrato.
type MovementRepo struct {
	mu        sync.RWMutex
	movements []entity.InventoryMovement
}

// NewMovementRepository construye el repositorio vacío.
func NewMovementRepository() *MovementRepo {
	return &MovementRepo{}
}

func (r *MovementRepo) Create(m *entity.InventoryMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.movements {
		if m.ID == id {
			copied := m
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(func(m entity.InventoryMovement) bool {
		return m.ItemID == itemID && inRange(m.PerformedAt, from, to)
	}, limit, offset)
}

func (r *MovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(func(m entity.InventoryMovement) bool {
		return inRange(m.PerformedAt, from, to)
	}, limit, offset)
}

func (r *MovementRepo) list(match func(entity.InventoryMovement) bool, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*entity.InventoryMovement, 0)
	for _, m := range r.movements {
		if match(m) {
			copied := m
			result = append(result, &copied)
		}
	}
	// Más recientes primero, como el adaptador postgres.
	sort.Slice(result, func(i, j int) bool { return result[i].PerformedAt.After(result[j].PerformedAt) })
	return paginate(result, limit, offset), nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
