package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
	"github.com/tu-usuario/tienda-movil/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un producto y devuelve su id autogenerado. Si el caller
// fija un id que ya existe se reemplaza el registro (política REPLACE).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	if p.ID != 0 {
		return r.upsertWithID(ctx, p)
	}
	query := `
		INSERT INTO products (name, description, price, image_path, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.ImagePath, p.Category,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *ProductRepo) upsertWithID(ctx context.Context, p *entity.Product) (int64, error) {
	query := `
		INSERT INTO products (id, name, description, price, image_path, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			image_path = EXCLUDED.image_path,
			category = EXCLUDED.category,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.ImagePath, p.Category,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert product: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT id, name, description, price, image_path, category, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImagePath, &p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

// Update reemplaza el registro completo por id.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, image_path = $5, category = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.ImagePath, p.Category, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteByID elimina un producto por ID y devuelve las filas afectadas.
func (r *ProductRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListAll devuelve el catálogo completo ordenado por nombre ascendente.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, price, image_path, category, created_at, updated_at
		FROM products ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImagePath, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
