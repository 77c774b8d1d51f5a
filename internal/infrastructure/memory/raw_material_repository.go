// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests y como sustituto liviano del adaptador postgres.
package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo guarda materias primas en un mapa protegido por mutex.
type RawMaterialRepo struct {
	mu        sync.RWMutex
	materials map[string]entity.RawMaterial
}

// NewRawMaterialRepository construye el repositorio vacío.
func NewRawMaterialRepository() *RawMaterialRepo {
	return &RawMaterialRepo{materials: make(map[string]entity.RawMaterial)}
}

func (r *RawMaterialRepo) Create(m *entity.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.materials {
		if existing.SKU == m.SKU {
			return domain.ErrDuplicate
		}
	}
	r.materials[m.ID] = *m
	return nil
}

func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := m
	return &copied, nil
}

func (r *RawMaterialRepo) GetBySKU(sku string) (*entity.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.materials {
		if m.SKU == sku && m.IsActive {
			copied := m
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *RawMaterialRepo) Update(m *entity.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.materials[m.ID] = *m
	return nil
}

func (r *RawMaterialRepo) UpdateStock(id string, stock, averageCost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	m.AverageCost = averageCost
	r.materials[id] = m
	return nil
}

// GetForUpdate no bloquea nada por sí mismo: la exclusión la da el TxRunner en
// memoria, que serializa las transacciones con un mutex global.
func (r *RawMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	return r.GetByID(id)
}

func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actives := make([]*entity.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		if m.IsActive {
			copied := m
			actives = append(actives, &copied)
		}
	}
	sort.Slice(actives, func(i, j int) bool { return actives[i].SKU < actives[j].SKU })
	return paginate(actives, limit, offset), nil
}

func (r *RawMaterialRepo) ListLowStock() ([]*entity.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	low := make([]*entity.RawMaterial, 0)
	for _, m := range r.materials {
		if m.IsActive && m.CurrentStock.LessThanOrEqual(m.MinimumStock) {
			copied := m
			low = append(low, &copied)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].SKU < low[j].SKU })
	return low, nil
}

func (r *RawMaterialRepo) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.IsActive = false
	r.materials[id] = m
	return nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
