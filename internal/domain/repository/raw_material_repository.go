package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para materias primas.
//
// Contrato de baja lógica: los métodos List* devuelven SOLO registros activos;
// GetByID y GetForUpdate NO filtran por IsActive, de modo que las referencias
// históricas (p. ej. desde un BOM desactivado) siguen siendo resolubles.
type RawMaterialRepository interface {
	Create(m *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	GetBySKU(sku string) (*entity.RawMaterial, error)
	Update(m *entity.RawMaterial) error
	// UpdateStock fija el stock y el costo promedio tras un movimiento validado.
	UpdateStock(id string, stock, averageCost decimal.Decimal) error
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(id string) (*entity.RawMaterial, error)
	List(limit, offset int) ([]*entity.RawMaterial, error)
	// ListLowStock devuelve los activos con stock en o bajo el punto de reorden.
	ListLowStock() ([]*entity.RawMaterial, error)
	// Deactivate es baja lógica (IsActive=false); nunca hay borrado físico.
	Deactivate(id string) error
}
