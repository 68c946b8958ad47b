package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/domain"
	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El saldo se maneja vía movimientos.
type ProductUseCase struct {
	repo  repository.ProductRepository
	stock repository.StockRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stock repository.StockRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock}
}

// Create crea el producto y garantiza exactamente un registro de estoque en 0.
// El respaldo en memoria ya lo crea junto con el producto; PostgreSQL no, por eso se consulta antes.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		StockRef: in.StockRef,
		Name:     in.Name,
		Price:    in.Price,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	existing, err := uc.stock.GetByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := uc.stock.Create(ctx, &entity.StockRecord{ProductID: product.ID, Quantity: 0}); err != nil {
			return nil, err
		}
	}
	return toProductResponse(entity.ProductStock{Product: *product}), nil
}

// Update actualiza nombre y precio.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.Price = in.Price
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	var qty int64
	if s, err := uc.stock.GetByProduct(ctx, id); err == nil && s != nil {
		qty = s.Quantity
	}
	return toProductResponse(entity.ProductStock{Product: *product, Quantity: qty}), nil
}

// List productos con su cantidad; search filtra por nombre sin distinguir mayúsculas.
func (uc *ProductUseCase) List(ctx context.Context, search string) (*dto.ProductListResponse, error) {
	search = strings.TrimSpace(search)
	list, err := uc.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: ToProductResponses(list), Search: search}, nil
}

// Delete elimina el producto y su estoque.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p entity.ProductStock) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID,
		StockRef: p.StockRef,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

// ToProductResponses mapea el listado de productos con saldo (también lo usan dashboard e inventario).
func ToProductResponses(list []entity.ProductStock) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}
