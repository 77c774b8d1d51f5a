package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

const bomColumns = `id, finished_product_id, finished_product_name, version, items,
	total_material_cost, estimated_labor_hours, labor_cost_per_hour, total_labor_cost,
	overhead_percentage, total_overhead_cost, total_cost, notes, is_active,
	created_at, updated_at, created_by`

// BOMRepo implementación de BOMRepository sobre PostgreSQL (usable con pool o tx).
// Los ítems de la receta se guardan como JSONB: la instantánea desnormalizada
// viaja completa con cada versión.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Create persiste una versión nueva de BOM.
func (r *BOMRepo) Create(b *entity.BillOfMaterials) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("marshal BOM items: %w", err)
	}
	query := `
		INSERT INTO bill_of_materials (` + bomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.q.Exec(context.Background(), query,
		b.ID, b.FinishedProductID, b.FinishedProductName, b.Version, items,
		b.TotalMaterialCost, b.EstimatedLaborHours, b.LaborCostPerHour, b.TotalLaborCost,
		b.OverheadPercentage, b.TotalOverheadCost, b.TotalCost, b.Notes, b.IsActive,
		b.CreatedAt, b.UpdatedAt, b.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert BOM: %w", err)
	}
	return nil
}

// GetByID obtiene un BOM por ID. No filtra por IsActive: las versiones
// desactivadas siguen consultables (histórico de costeo).
func (r *BOMRepo) GetByID(id string) (*entity.BillOfMaterials, error) {
	query := `SELECT ` + bomColumns + ` FROM bill_of_materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get BOM")
}

// GetActiveByProduct devuelve el BOM activo del producto, o ErrNotFound.
func (r *BOMRepo) GetActiveByProduct(productID string) (*entity.BillOfMaterials, error) {
	query := `
		SELECT ` + bomColumns + ` FROM bill_of_materials
		WHERE finished_product_id = $1 AND is_active = true`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get active BOM")
}

// ListByProduct lista las versiones activas del producto, la más nueva primero.
func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BillOfMaterials, error) {
	query := `
		SELECT ` + bomColumns + ` FROM bill_of_materials
		WHERE finished_product_id = $1 AND is_active = true
		ORDER BY version DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list BOMs: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillOfMaterials
	for rows.Next() {
		b, err := scanBOM(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// MaxVersion devuelve la versión más alta registrada para el producto (0 si no
// hay ninguna), incluyendo versiones desactivadas.
func (r *BOMRepo) MaxVersion(productID string) (int, error) {
	var version int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(version), 0) FROM bill_of_materials WHERE finished_product_id = $1`,
		productID,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("max BOM version: %w", err)
	}
	return version, nil
}

// Update reemplaza la receta y los totales de una versión existente.
func (r *BOMRepo) Update(b *entity.BillOfMaterials) error {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("marshal BOM items: %w", err)
	}
	query := `
		UPDATE bill_of_materials
		SET items = $2, total_material_cost = $3, estimated_labor_hours = $4,
			labor_cost_per_hour = $5, total_labor_cost = $6, overhead_percentage = $7,
			total_overhead_cost = $8, total_cost = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		b.ID, items, b.TotalMaterialCost, b.EstimatedLaborHours,
		b.LaborCostPerHour, b.TotalLaborCost, b.OverheadPercentage,
		b.TotalOverheadCost, b.TotalCost, b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update BOM: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate es baja lógica; conserva la instantánea de costos de la versión.
func (r *BOMRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bill_of_materials SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate BOM: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeactivateByProduct desactiva el BOM activo del producto, si existe.
func (r *BOMRepo) DeactivateByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bill_of_materials SET is_active = false, updated_at = now()
		 WHERE finished_product_id = $1 AND is_active = true`,
		productID)
	if err != nil {
		return fmt.Errorf("deactivate BOMs by product: %w", err)
	}
	return nil
}

func (r *BOMRepo) scanOne(row pgx.Row, op string) (*entity.BillOfMaterials, error) {
	b, err := scanBOM(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func scanBOM(row pgx.Row) (*entity.BillOfMaterials, error) {
	var b entity.BillOfMaterials
	var items []byte
	err := row.Scan(
		&b.ID, &b.FinishedProductID, &b.FinishedProductName, &b.Version, &items,
		&b.TotalMaterialCost, &b.EstimatedLaborHours, &b.LaborCostPerHour, &b.TotalLaborCost,
		&b.OverheadPercentage, &b.TotalOverheadCost, &b.TotalCost, &b.Notes, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt, &b.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &b.Items); err != nil {
		return nil, fmt.Errorf("unmarshal BOM items: %w", err)
	}
	return &b, nil
}
