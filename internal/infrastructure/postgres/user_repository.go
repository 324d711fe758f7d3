package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/tienda-movil/internal/domain"
	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
	"github.com/tu-usuario/tienda-movil/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. Un email duplicado NO es error: el
// insert se ignora y se devuelve entity.NoID (centinela "no row inserted").
func (r *UserRepo) Create(ctx context.Context, user *entity.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, hashed_password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.HashedPassword, user.Role,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// DO NOTHING no devolvió fila: el email ya existía.
			return entity.NoID, nil
		}
		return entity.NoID, fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return id, nil
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, name, email, hashed_password, role, created_at, updated_at
		FROM users WHERE id = $1`
	u, err := r.scanOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email. (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, hashed_password, role, created_at, updated_at
		FROM users WHERE email = $1 LIMIT 1`
	u, err := r.scanOne(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.HashedPassword, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Update reemplaza el registro completo por id.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, hashed_password = $4, role = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.HashedPassword, user.Role, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteByID elimina un usuario por ID y devuelve las filas afectadas.
func (r *UserRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected(), nil
}
