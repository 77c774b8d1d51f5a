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

// RawMaterialUseCase casos de uso CRUD para materias primas.
// CurrentStock y AverageCost se manejan vía movimientos, nunca por aquí.
type RawMaterialUseCase struct {
	repo repository.RawMaterialRepository
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(repo repository.RawMaterialRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{repo: repo}
}

// Create crea una materia prima con stock 0.
func (uc *RawMaterialUseCase) Create(userID string, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if in.SKU == "" || in.Name == "" || in.UnitMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	material := &entity.RawMaterial{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Category:     in.Category,
		UnitMeasure:  in.UnitMeasure,
		CurrentStock: decimal.Zero,
		MinimumStock: in.MinimumStock,
		UnitCost:     in.UnitCost,
		AverageCost:  decimal.Zero,
		Location:     in.Location,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    userID,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID (activa o no).
func (uc *RawMaterialUseCase) GetByID(id string) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toRawMaterialResponse(material), nil
}

// Update actualiza campos editables. No toca CurrentStock ni AverageCost.
func (uc *RawMaterialUseCase) Update(id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Category != nil {
		material.Category = *in.Category
	}
	if in.UnitMeasure != nil {
		material.UnitMeasure = *in.UnitMeasure
	}
	if in.MinimumStock != nil {
		material.MinimumStock = *in.MinimumStock
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		material.UnitCost = *in.UnitCost
	}
	if in.Location != nil {
		material.Location = *in.Location
	}
	material.UpdatedAt = time.Now()

	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// Delete es baja lógica: el registro conserva su histórico de movimientos y
// sigue siendo resoluble desde BOMs existentes.
func (uc *RawMaterialUseCase) Delete(id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

// List devuelve las materias primas activas paginadas.
func (uc *RawMaterialUseCase) List(page dto.PageRequest) (*dto.RawMaterialListResponse, error) {
	page.DefaultPage()
	materials, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, *toRawMaterialResponse(m))
	}
	return &dto.RawMaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// ListLowStock devuelve las materias primas activas en o bajo el punto de reorden.
func (uc *RawMaterialUseCase) ListLowStock() ([]dto.RawMaterialResponse, error) {
	materials, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, *toRawMaterialResponse(m))
	}
	return items, nil
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:           m.ID,
		SKU:          m.SKU,
		Name:         m.Name,
		Category:     m.Category,
		UnitMeasure:  m.UnitMeasure,
		CurrentStock: m.CurrentStock,
		MinimumStock: m.MinimumStock,
		UnitCost:     m.UnitCost,
		AverageCost:  m.AverageCost,
		Location:     m.Location,
		IsActive:     m.IsActive,
		BelowMinimum: m.BelowMinimum(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
