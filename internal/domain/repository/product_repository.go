package repository

import (
	"context"

	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto y devuelve su id autogenerado. A diferencia
	// de User, un conflicto de id reemplaza el registro existente (política
	// REPLACE del modelo original).
	Create(ctx context.Context, product *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	DeleteByID(ctx context.Context, id int64) (int64, error)
	// ListAll devuelve el catálogo completo ordenado por nombre ascendente.
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
