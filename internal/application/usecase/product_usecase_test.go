package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-movil/internal/application/dto"
	"github.com/tu-usuario/tienda-movil/internal/application/ports"
	"github.com/tu-usuario/tienda-movil/internal/application/usecase"
	"github.com/tu-usuario/tienda-movil/internal/domain"
	"github.com/tu-usuario/tienda-movil/internal/domain/entity"
	"github.com/tu-usuario/tienda-movil/pkg/logger"
)

// fakeProductRepo store en memoria con semántica REPLACE sobre el id.
type fakeProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]entity.Product

	failCreate error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1, products: make(map[int64]entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return 0, r.failCreate
	}
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.products[p.ID] = *p // mismo id pisa el registro anterior
	return p.ID, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeImageStore registra guardados y borrados, y permite forzar fallos.
type fakeImageStore struct {
	mu       sync.Mutex
	saved    []string
	deleted  []string
	failSave error
	failURL  error
}

// El fake debe cumplir el mismo contrato que el adaptador real.
var _ ports.ImageStore = (*fakeImageStore)(nil)

func (s *fakeImageStore) Save(ctx context.Context, data []byte, originalFilename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return "", s.failSave
	}
	path := fmt.Sprintf("productos/%d_%s", len(s.saved)+1, originalFilename)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeImageStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeImageStore) URL(ctx context.Context, path string) (string, error) {
	if s.failURL != nil {
		return "", s.failURL
	}
	return "http://storage.local/" + path, nil
}

func newProductUC(repo *fakeProductRepo, images *fakeImageStore) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(repo, images, logger.Nop())
}

func validCreateReq() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        "Café de Origen",
		Description: "Tostado medio, 500g",
		Price:       "25.50",
		Category:    "Bebidas",
	}
}

func TestProductCreate_SinImagenPersisteConPathNulo(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, &fakeImageStore{})

	out, err := uc.Create(context.Background(), validCreateReq(), nil, "")
	require.NoError(t, err)
	assert.Greater(t, out.ID, int64(0))
	assert.Nil(t, out.ImagePath)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("25.50")))
}

func TestProductCreate_ConImagenGuardaPrimeroYRegistraElPath(t *testing.T) {
	repo := newFakeProductRepo()
	images := &fakeImageStore{}
	uc := newProductUC(repo, images)

	out, err := uc.Create(context.Background(), validCreateReq(), []byte{0xFF, 0xD8, 0xFF}, "foto.jpg")
	require.NoError(t, err)
	require.NotNil(t, out.ImagePath)
	require.Len(t, images.saved, 1)
	assert.Equal(t, images.saved[0], *out.ImagePath)

	stored, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ImagePath)
	assert.Equal(t, images.saved[0], *stored.ImagePath)
}

func TestProductCreate_FalloGuardandoImagenAbortaElAlta(t *testing.T) {
	repo := newFakeProductRepo()
	images := &fakeImageStore{failSave: errors.New("bucket inaccesible")}
	uc := newProductUC(repo, images)

	_, err := uc.Create(context.Background(), validCreateReq(), []byte{0x01}, "foto.jpg")
	assert.ErrorIs(t, err, domain.ErrImageStore)

	list, listErr := repo.ListAll(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, list, "si la imagen no se guarda, el producto no debe insertarse")
}

func TestProductCreate_InsertFallidoDejaLaImagenHuerfana(t *testing.T) {
	repo := newFakeProductRepo()
	repo.failCreate = errors.New("db caída")
	images := &fakeImageStore{}
	uc := newProductUC(repo, images)

	_, err := uc.Create(context.Background(), validCreateReq(), []byte{0x01}, "foto.jpg")
	require.Error(t, err)
	assert.Len(t, images.saved, 1, "no hay rollback del objeto ya subido")
}

func TestProductCreate_Validacion(t *testing.T) {
	uc := newProductUC(newFakeProductRepo(), &fakeImageStore{})
	ctx := context.Background()

	casos := []struct {
		nombre  string
		mutar   func(*dto.CreateProductRequest)
		wantErr error
	}{
		{"nombre vacío", func(r *dto.CreateProductRequest) { r.Name = "  " }, domain.ErrFieldsRequired},
		{"descripción vacía", func(r *dto.CreateProductRequest) { r.Description = "" }, domain.ErrFieldsRequired},
		{"categoría vacía", func(r *dto.CreateProductRequest) { r.Category = "" }, domain.ErrFieldsRequired},
		{"precio no numérico", func(r *dto.CreateProductRequest) { r.Price = "abc" }, domain.ErrInvalidPrice},
		{"precio cero", func(r *dto.CreateProductRequest) { r.Price = "0" }, domain.ErrInvalidPrice},
		{"precio negativo", func(r *dto.CreateProductRequest) { r.Price = "-3.50" }, domain.ErrInvalidPrice},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			in := validCreateReq()
			c.mutar(&in)
			_, err := uc.Create(ctx, in, nil, "")
			assert.ErrorIs(t, err, c.wantErr)
		})
	}
}

func TestProductList_OrdenadoPorNombreAscendente(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, &fakeImageStore{})
	ctx := context.Background()

	for _, name := range []string{"Zanahoria", "Arroz", "Manzana"} {
		in := validCreateReq()
		in.Name = name
		_, err := uc.Create(ctx, in, nil, "")
		require.NoError(t, err)
	}

	out, err := uc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, out.Total)
	assert.Equal(t, "Arroz", out.Items[0].Name)
	assert.Equal(t, "Manzana", out.Items[1].Name)
	assert.Equal(t, "Zanahoria", out.Items[2].Name)
}

func TestProductUpdate_CamposParcialesYValidacion(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, &fakeImageStore{})
	ctx := context.Background()

	created, err := uc.Create(ctx, validCreateReq(), nil, "")
	require.NoError(t, err)

	nuevoNombre := "Café Premium"
	nuevoPrecio := "30.00"
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &nuevoNombre, Price: &nuevoPrecio})
	require.NoError(t, err)
	assert.Equal(t, "Café Premium", out.Name)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, created.Description, out.Description, "los campos no provistos se conservan")

	precioMalo := "-1"
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: &precioMalo})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestProductUpdate_InexistenteDevuelveNilNil(t *testing.T) {
	uc := newProductUC(newFakeProductRepo(), &fakeImageStore{})
	out, err := uc.Update(context.Background(), 999, dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductDelete(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo, &fakeImageStore{})
	ctx := context.Background()

	created, err := uc.Create(ctx, validCreateReq(), nil, "")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestProductDelete_EliminaTambienLaImagenDelStorage(t *testing.T) {
	repo := newFakeProductRepo()
	images := &fakeImageStore{}
	uc := newProductUC(repo, images)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCreateReq(), []byte{0x01}, "foto.jpg")
	require.NoError(t, err)
	require.NotNil(t, created.ImagePath)

	require.NoError(t, uc.Delete(ctx, created.ID))
	require.Len(t, images.deleted, 1)
	assert.Equal(t, *created.ImagePath, images.deleted[0])
}

func TestProductGetByID_DetalleIncluyeURLFirmadaDeLaImagen(t *testing.T) {
	repo := newFakeProductRepo()
	images := &fakeImageStore{}
	uc := newProductUC(repo, images)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCreateReq(), []byte{0x01}, "foto.jpg")
	require.NoError(t, err)

	out, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.ImageURL)
	assert.Equal(t, "http://storage.local/"+*created.ImagePath, *out.ImageURL)
}

func TestProductGetByID_FalloFirmandoURLNoRompeElDetalle(t *testing.T) {
	repo := newFakeProductRepo()
	images := &fakeImageStore{}
	uc := newProductUC(repo, images)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCreateReq(), []byte{0x01}, "foto.jpg")
	require.NoError(t, err)

	images.failURL = errors.New("storage inaccesible")
	out, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, out.ImageURL, "sin URL firmada el detalle se devuelve igual")
	assert.NotNil(t, out.ImagePath)
}

func TestProductRepo_MismoIDReemplazaElRegistro(t *testing.T) {
	repo := newFakeProductRepo()
	ctx := context.Background()

	first := &entity.Product{Name: "Original", Description: "v1", Price: decimal.NewFromInt(10), Category: "x"}
	id, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := &entity.Product{ID: id, Name: "Reemplazo", Description: "v2", Price: decimal.NewFromInt(20), Category: "x"}
	sameID, err := repo.Create(ctx, second)
	require.NoError(t, err)
	require.Equal(t, id, sameID)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Reemplazo", stored.Name)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "reemplazar por id no duplica filas")
}
