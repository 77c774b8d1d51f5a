package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// FinishedProductRepository define el puerto de persistencia para productos
// terminados. Mismo contrato de baja lógica que RawMaterialRepository:
// List filtra activos, GetByID y GetForUpdate no.
type FinishedProductRepository interface {
	Create(p *entity.FinishedProduct) error
	GetByID(id string) (*entity.FinishedProduct, error)
	GetBySKU(sku string) (*entity.FinishedProduct, error)
	Update(p *entity.FinishedProduct) error
	UpdateStock(id string, stock decimal.Decimal) error
	// UpdateDerivedCosts sincroniza los costos derivados del BOM activo.
	UpdateDerivedCosts(id string, unitCost, laborCost, overheadCost, totalCost decimal.Decimal) error
	GetForUpdate(id string) (*entity.FinishedProduct, error)
	List(limit, offset int) ([]*entity.FinishedProduct, error)
	Deactivate(id string) error
}
