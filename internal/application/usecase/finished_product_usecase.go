package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/application/dto"
	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// FinishedProductUseCase casos de uso CRUD para productos terminados.
// Stock vía movimientos; costos derivados del BOM activo.
type FinishedProductUseCase struct {
	repo repository.FinishedProductRepository
}

// NewFinishedProductUseCase construye el caso de uso.
func NewFinishedProductUseCase(repo repository.FinishedProductRepository) *FinishedProductUseCase {
	return &FinishedProductUseCase{repo: repo}
}

// Create crea un producto terminado con stock y costos en 0.
func (uc *FinishedProductUseCase) Create(userID string, in dto.CreateFinishedProductRequest) (*dto.FinishedProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.FinishedProduct{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		Category:       in.Category,
		CurrentStock:   decimal.Zero,
		MinimumStock:   in.MinimumStock,
		UnitCost:       decimal.Zero,
		LaborCost:      decimal.Zero,
		OverheadCost:   decimal.Zero,
		TotalCost:      decimal.Zero,
		SellingPrice:   in.SellingPrice,
		SuggestedPrice: in.SuggestedPrice,
		Status:         entity.ProductStatusDisponible,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      userID,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toFinishedProductResponse(product), nil
}

// GetByID obtiene un producto terminado por ID (activo o no).
func (uc *FinishedProductUseCase) GetByID(id string) (*dto.FinishedProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toFinishedProductResponse(product), nil
}

// Update actualiza campos editables. Stock y costos no se aceptan aquí.
func (uc *FinishedProductUseCase) Update(id string, in dto.UpdateFinishedProductRequest) (*dto.FinishedProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
	}
	if in.SuggestedPrice != nil {
		product.SuggestedPrice = *in.SuggestedPrice
	}
	if in.Status != nil {
		if !entity.ValidProductStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toFinishedProductResponse(product), nil
}

// Delete es baja lógica; los BOMs históricos del producto siguen consultables.
func (uc *FinishedProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

// List devuelve los productos terminados activos paginados.
func (uc *FinishedProductUseCase) List(page dto.PageRequest) (*dto.FinishedProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FinishedProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toFinishedProductResponse(p))
	}
	return &dto.FinishedProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func toFinishedProductResponse(p *entity.FinishedProduct) *dto.FinishedProductResponse {
	return &dto.FinishedProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Category:       p.Category,
		CurrentStock:   p.CurrentStock,
		MinimumStock:   p.MinimumStock,
		UnitCost:       p.UnitCost,
		LaborCost:      p.LaborCost,
		OverheadCost:   p.OverheadCost,
		TotalCost:      p.TotalCost,
		SellingPrice:   p.SellingPrice,
		SuggestedPrice: p.SuggestedPrice,
		Status:         p.Status,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
