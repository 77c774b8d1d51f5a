package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ repository.FinishedProductRepository = (*FinishedProductRepo)(nil)

// FinishedProductRepo guarda productos terminados en un mapa protegido por mutex.
type FinishedProductRepo struct {
	mu       sync.RWMutex
	products map[string]entity.FinishedProduct
}

// NewFinishedProductRepository construye el repositorio vacío.
func NewFinishedProductRepository() *FinishedProductRepo {
	return &FinishedProductRepo{products: make(map[string]entity.FinishedProduct)}
}

func (r *FinishedProductRepo) Create(p *entity.FinishedProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.products[p.ID] = *p
	return nil
}

func (r *FinishedProductRepo) GetByID(id string) (*entity.FinishedProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (r *FinishedProductRepo) GetBySKU(sku string) (*entity.FinishedProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.SKU == sku && p.IsActive {
			copied := p
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *FinishedProductRepo) Update(p *entity.FinishedProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *FinishedProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	r.products[id] = p
	return nil
}

func (r *FinishedProductRepo) UpdateDerivedCosts(id string, unitCost, laborCost, overheadCost, totalCost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.UnitCost = unitCost
	p.LaborCost = laborCost
	p.OverheadCost = overheadCost
	p.TotalCost = totalCost
	r.products[id] = p
	return nil
}

func (r *FinishedProductRepo) GetForUpdate(id string) (*entity.FinishedProduct, error) {
	return r.GetByID(id)
}

func (r *FinishedProductRepo) List(limit, offset int) ([]*entity.FinishedProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actives := make([]*entity.FinishedProduct, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive {
			copied := p
			actives = append(actives, &copied)
		}
	}
	sort.Slice(actives, func(i, j int) bool { return actives[i].SKU < actives[j].SKU })
	return paginate(actives, limit, offset), nil
}

func (r *FinishedProductRepo) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	r.products[id] = p
	return nil
}
