package memory

import (
	"sort"
	"sync"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo guarda listas de materiales en un mapa protegido por mutex.
type BOMRepo struct {
	mu   sync.RWMutex
	boms map[string]entity.BillOfMaterials
}

// NewBOMRepository construye el repositorio vacío.
func NewBOMRepository() *BOMRepo {
	return &BOMRepo{boms: make(map[string]entity.BillOfMaterials)}
}

func (r *BOMRepo) Create(b *entity.BillOfMaterials) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boms[b.ID] = *b
	return nil
}

// GetByID no filtra por IsActive: las versiones históricas siguen consultables.
func (r *BOMRepo) GetByID(id string) (*entity.BillOfMaterials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := b
	return &copied, nil
}

func (r *BOMRepo) GetActiveByProduct(productID string) (*entity.BillOfMaterials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.boms {
		if b.FinishedProductID == productID && b.IsActive {
			copied := b
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BillOfMaterials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actives := make([]*entity.BillOfMaterials, 0)
	for _, b := range r.boms {
		if b.FinishedProductID == productID && b.IsActive {
			copied := b
			actives = append(actives, &copied)
		}
	}
	sort.Slice(actives, func(i, j int) bool { return actives[i].Version < actives[j].Version })
	return actives, nil
}

func (r *BOMRepo) MaxVersion(productID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	max := 0
	for _, b := range r.boms {
		if b.FinishedProductID == productID && b.Version > max {
			max = b.Version
		}
	}
	return max, nil
}

func (r *BOMRepo) Update(b *entity.BillOfMaterials) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boms[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.boms[b.ID] = *b
	return nil
}

func (r *BOMRepo) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boms[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.IsActive = false
	r.boms[id] = b
	return nil
}

func (r *BOMRepo) DeactivateByProduct(productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, b := range r.boms {
		if b.FinishedProductID == productID && b.IsActive {
			b.IsActive = false
			r.boms[id] = b
		}
	}
	return nil
}
