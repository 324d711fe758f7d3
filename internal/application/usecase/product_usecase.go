package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-movil/internal/application/dto"
	"github.com/tu-usuario/tienda-movil/internal/application/ports"
	"github.com/tu-usuario/tienda-movil/internal/domain"
	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
	"github.com/tu-usuario/tienda-movil/internal/domain/repository"
	"github.com/tu-usuario/tienda-movil/pkg/logger"
)

// ProductUseCase casos de uso del catálogo: alta con foto opcional, listado
// ordenado por nombre, detalle, edición y baja.
type ProductUseCase struct {
	repo   repository.ProductRepository
	images ports.ImageStore
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, images ports.ImageStore, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, images: images, log: log}
}

// Create valida y crea un producto. Si viene imagen, primero se persiste en
// el storage y recién entonces se inserta el producto: un fallo guardando la
// imagen aborta el alta completa. Si el insert falla después de subir la
// imagen, el objeto queda huérfano en el bucket (estado filtrado aceptado,
// no se hace rollback).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, image []byte, imageFilename string) (*dto.ProductResponse, error) {
	if isBlank(in.Name) || isBlank(in.Description) || isBlank(in.Price) || isBlank(in.Category) {
		return nil, domain.ErrFieldsRequired
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}

	var imagePath *string
	if len(image) > 0 {
		path, err := uc.images.Save(ctx, image, imageFilename)
		if err != nil {
			uc.log.Error().Err(err).Str("filename", imageFilename).Msg("alta de producto: fallo guardando imagen")
			return nil, domain.ErrImageStore
		}
		imagePath = &path
	}

	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		ImagePath:   imagePath,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := uc.repo.Create(ctx, product)
	if err != nil {
		if imagePath != nil {
			uc.log.Warn().Str("image_path", *imagePath).Msg("alta de producto: insert falló, imagen queda huérfana")
		}
		return nil, fmt.Errorf("crear producto: %w", err)
	}

	uc.log.Info().Int64("product_id", id).Str("name", in.Name).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe. En el detalle
// se resuelve además una URL de lectura para la imagen; si el storage no puede
// firmarla, el producto se devuelve igual sin URL.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	if product.ImagePath != nil {
		url, err := uc.images.URL(ctx, *product.ImagePath)
		if err != nil {
			uc.log.Warn().Err(err).Str("image_path", *product.ImagePath).Msg("detalle de producto: no se pudo firmar la URL de la imagen")
		} else {
			out.ImageURL = &url
		}
	}
	return out, nil
}

// Update modifica los campos provistos de un producto existente.
// (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if isBlank(*in.Name) {
			return nil, domain.ErrFieldsRequired
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		price, err := decimal.NewFromString(*in.Price)
		if err != nil || price.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidPrice
		}
		product.Price = price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Devuelve domain.ErrNotFound si no existía.
// Si el producto tenía imagen, el objeto se borra del storage después de la
// fila; un fallo ahí no revierte la baja, solo se loguea.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rows, err := uc.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	if product != nil && product.ImagePath != nil {
		if err := uc.images.Delete(ctx, *product.ImagePath); err != nil {
			uc.log.Warn().Err(err).Str("image_path", *product.ImagePath).Msg("baja de producto: no se pudo eliminar la imagen del storage")
		}
	}
	uc.log.Info().Int64("product_id", id).Msg("producto eliminado")
	return nil
}

// List devuelve el catálogo completo ordenado por nombre ascendente.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImagePath:   p.ImagePath,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
