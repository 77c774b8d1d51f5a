package repository

import "github.com/Macruz95/zadia-os-api/internal/domain/entity"

// BOMRepository define el puerto de persistencia para listas de materiales.
//
// Las consultas de listado y GetActiveByProduct devuelven solo BOMs activos;
// GetByID no filtra, de modo que las versiones desactivadas siguen siendo
// consultables por id (histórico de costeo). No existe borrado físico.
type BOMRepository interface {
	Create(b *entity.BillOfMaterials) error
	GetByID(id string) (*entity.BillOfMaterials, error)
	// GetActiveByProduct devuelve el BOM activo del producto, o ErrNotFound.
	GetActiveByProduct(productID string) (*entity.BillOfMaterials, error)
	ListByProduct(productID string) ([]*entity.BillOfMaterials, error)
	// MaxVersion devuelve la versión más alta registrada para el producto
	// (0 si no hay ninguna), incluyendo versiones desactivadas.
	MaxVersion(productID string) (int, error)
	Update(b *entity.BillOfMaterials) error
	// Deactivate es baja lógica; conserva la instantánea de costos de la versión.
	Deactivate(id string) error
	// DeactivateByProduct desactiva el BOM activo del producto (si existe),
	// previo a activar una versión nueva.
	DeactivateByProduct(productID string) error
}
