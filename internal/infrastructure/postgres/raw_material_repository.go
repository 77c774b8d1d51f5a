package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Macruz95/zadia-os-api/internal/domain"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
	"github.com/Macruz95/zadia-os-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

const rawMaterialColumns = `id, sku, name, category, unit_measure, current_stock, minimum_stock,
	unit_cost, average_cost, location, is_active, created_at, updated_at, created_by`

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

// Create persiste una materia prima nueva.
func (r *RawMaterialRepo) Create(m *entity.RawMaterial) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO raw_materials (` + rawMaterialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SKU, m.Name, m.Category, m.UnitMeasure, m.CurrentStock, m.MinimumStock,
		m.UnitCost, m.AverageCost, m.Location, m.IsActive, m.CreatedAt, m.UpdatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID. No filtra por IsActive: las
// referencias históricas de BOMs desactivados siguen siendo resolubles.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get raw material")
}

// GetBySKU obtiene una materia prima por SKU.
func (r *RawMaterialRepo) GetBySKU(sku string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get raw material by sku")
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get raw material for update")
}

// Update actualiza los datos maestros. El stock no se toca aquí: solo vía UpdateStock.
func (r *RawMaterialRepo) Update(m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET name = $2, category = $3, unit_measure = $4, minimum_stock = $5,
			unit_cost = $6, location = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Category, m.UnitMeasure, m.MinimumStock,
		m.UnitCost, m.Location, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock y el costo promedio tras un movimiento validado.
func (r *RawMaterialRepo) UpdateStock(id string, stock, averageCost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE raw_materials SET current_stock = $2, average_cost = $3, updated_at = now() WHERE id = $1`,
		id, stock, averageCost,
	)
	if err != nil {
		return fmt.Errorf("update raw material stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista materias primas activas con paginación.
func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + ` FROM raw_materials
		WHERE is_active = true ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	return r.scanAll(rows)
}

// ListLowStock devuelve las activas con stock en o bajo el punto de reorden.
func (r *RawMaterialRepo) ListLowStock() ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + ` FROM raw_materials
		WHERE is_active = true AND current_stock <= minimum_stock
		ORDER BY current_stock - minimum_stock ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return r.scanAll(rows)
}

// Deactivate es baja lógica; nunca hay DELETE.
func (r *RawMaterialRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE raw_materials SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate raw material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RawMaterialRepo) scanOne(row pgx.Row, op string) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(
		&m.ID, &m.SKU, &m.Name, &m.Category, &m.UnitMeasure, &m.CurrentStock, &m.MinimumStock,
		&m.UnitCost, &m.AverageCost, &m.Location, &m.IsActive, &m.CreatedAt, &m.UpdatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func (r *RawMaterialRepo) scanAll(rows pgx.Rows) ([]*entity.RawMaterial, error) {
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(
			&m.ID, &m.SKU, &m.Name, &m.Category, &m.UnitMeasure, &m.CurrentStock, &m.MinimumStock,
			&m.UnitCost, &m.AverageCost, &m.Location, &m.IsActive, &m.CreatedAt, &m.UpdatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
