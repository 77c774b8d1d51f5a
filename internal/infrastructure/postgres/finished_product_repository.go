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

var _ repository.FinishedProductRepository = (*FinishedProductRepo)(nil)

const finishedProductColumns = `id, sku, name, category, current_stock, minimum_stock,
	unit_cost, labor_cost, overhead_cost, total_cost, selling_price, suggested_price,
	status, is_active, created_at, updated_at, created_by`

// FinishedProductRepo implementación de FinishedProductRepository sobre PostgreSQL (usable con pool o tx).
type FinishedProductRepo struct {
	q Querier
}

// NewFinishedProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedProductRepository(q Querier) *FinishedProductRepo {
	return &FinishedProductRepo{q: q}
}

// Create persiste un producto terminado nuevo. Los costos derivados inician en cero.
func (r *FinishedProductRepo) Create(p *entity.FinishedProduct) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO finished_products (` + finishedProductColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Category, p.CurrentStock, p.MinimumStock,
		p.UnitCost, p.LaborCost, p.OverheadCost, p.TotalCost, p.SellingPrice, p.SuggestedPrice,
		p.Status, p.IsActive, p.CreatedAt, p.UpdatedAt, p.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert finished product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto terminado por ID, sin filtrar por IsActive.
func (r *FinishedProductRepo) GetByID(id string) (*entity.FinishedProduct, error) {
	query := `SELECT ` + finishedProductColumns + ` FROM finished_products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get finished product")
}

// GetBySKU obtiene un producto terminado por SKU.
func (r *FinishedProductRepo) GetBySKU(sku string) (*entity.FinishedProduct, error) {
	query := `SELECT ` + finishedProductColumns + ` FROM finished_products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get finished product by sku")
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *FinishedProductRepo) GetForUpdate(id string) (*entity.FinishedProduct, error) {
	query := `SELECT ` + finishedProductColumns + ` FROM finished_products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get finished product for update")
}

// Update actualiza los datos maestros. Ni el stock ni los costos derivados
// se tocan aquí: van por UpdateStock y UpdateDerivedCosts.
func (r *FinishedProductRepo) Update(p *entity.FinishedProduct) error {
	query := `
		UPDATE finished_products
		SET name = $2, category = $3, minimum_stock = $4, selling_price = $5,
			suggested_price = $6, status = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Category, p.MinimumStock, p.SellingPrice,
		p.SuggestedPrice, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update finished product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock tras un movimiento validado.
func (r *FinishedProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE finished_products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update finished product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDerivedCosts sincroniza los costos derivados del BOM activo.
func (r *FinishedProductRepo) UpdateDerivedCosts(id string, unitCost, laborCost, overheadCost, totalCost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE finished_products
		 SET unit_cost = $2, labor_cost = $3, overhead_cost = $4, total_cost = $5, updated_at = now()
		 WHERE id = $1`,
		id, unitCost, laborCost, overheadCost, totalCost,
	)
	if err != nil {
		return fmt.Errorf("update derived costs: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos terminados activos con paginación.
func (r *FinishedProductRepo) List(limit, offset int) ([]*entity.FinishedProduct, error) {
	query := `
		SELECT ` + finishedProductColumns + ` FROM finished_products
		WHERE is_active = true ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list finished products: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinishedProduct
	for rows.Next() {
		var p entity.FinishedProduct
		if err := scanFinishedProduct(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Deactivate es baja lógica; nunca hay DELETE.
func (r *FinishedProductRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE finished_products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate finished product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FinishedProductRepo) scanOne(row pgx.Row, op string) (*entity.FinishedProduct, error) {
	var p entity.FinishedProduct
	if err := scanFinishedProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanFinishedProduct(row pgx.Row, p *entity.FinishedProduct) error {
	return row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.CurrentStock, &p.MinimumStock,
		&p.UnitCost, &p.LaborCost, &p.OverheadCost, &p.TotalCost, &p.SellingPrice, &p.SuggestedPrice,
		&p.Status, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy,
	)
}
