package bom

import (
	"context"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/bom"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

// CostSheetGenerator es el puerto hacia el generador de PDF de fichas de costo.
type CostSheetGenerator interface {
	GenerateCostSheet(ctx context.Context, b *entity.BillOfMaterials, costs bom.Costs) ([]byte, error)
}

// PDFUseCase produce la ficha de costos imprimible de un BOM.
type PDFUseCase struct {
	bomRepo   repository.BOMRepository
	costSvc   *bom.CostService
	generator CostSheetGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(bomRepo repository.BOMRepository, costSvc *bom.CostService, generator CostSheetGenerator) *PDFUseCase {
	return &PDFUseCase{bomRepo: bomRepo, costSvc: costSvc, generator: generator}
}

// CostSheet recalcula los costos del BOM y genera el PDF. Funciona también
// sobre versiones desactivadas: la ficha histórica sigue siendo imprimible.
func (uc *PDFUseCase) CostSheet(ctx context.Context, bomID string) ([]byte, error) {
	b, err := uc.bomRepo.GetByID(bomID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	costs, err := uc.costSvc.CalculateBOMCosts(b)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateCostSheet(ctx, b, costs)
}
