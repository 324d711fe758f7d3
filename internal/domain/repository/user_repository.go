package repository

import (
	"context"

	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Los lookups devuelven (nil, nil) cuando no hay registro: un miss no es un
// error duro, el caso de uso decide cómo presentarlo.
type UserRepository interface {
	// Create inserta el usuario y devuelve su id autogenerado.
	// Si el email ya existe el insert se ignora silenciosamente y se
	// devuelve entity.NoID sin error (política IGNORE del modelo original).
	Create(ctx context.Context, user *entity.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update reemplaza el registro completo por id.
	Update(ctx context.Context, user *entity.User) error
	// DeleteByID devuelve el número de filas afectadas (0 si ya no existía).
	DeleteByID(ctx context.Context, id int64) (int64, error)
}
