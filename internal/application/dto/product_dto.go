package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Price llega como
// string y se parsea en el caso de uso (debe ser decimal positivo). La
// imagen viaja aparte (multipart) y no forma parte de este DTO.
type CreateProductRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" form:"description" validate:"required"`
	Price       string `json:"price" form:"price" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Category    *string `json:"category"`
}

// ProductResponse salida de un producto. ImageURL solo se completa en el
// detalle: es una URL de lectura firmada por el storage, derivada de ImagePath.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImagePath   *string         `json:"image_path,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse salida del listado de catálogo (ordenado por nombre).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
