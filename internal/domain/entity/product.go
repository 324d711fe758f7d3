package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// ImagePath es nil cuando el producto se creó sin foto.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal // siempre > 0, validado en el caso de uso
	ImagePath   *string         // ruta del objeto en el storage de imágenes
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
