package inventory

import (
	"context"
	"sync"

	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/domain"
	"github.com/jhoicas/cantina-api/internal/domain/entity"
	domaininv "github.com/jhoicas/cantina-api/internal/domain/inventory"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de estoque.
// Una salida además registra la venta al precio actual del producto.
type RegisterMovementUseCase struct {
	products repository.ProductRepository
	stock    repository.StockRepository
	sales    repository.SaleRepository

	// No hay transacciones: serializa lectura-modificación-escritura del saldo dentro del proceso.
	mu sync.Mutex
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	products repository.ProductRepository,
	stock repository.StockRepository,
	sales repository.SaleRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		products: products,
		stock:    stock,
		sales:    sales,
	}
}

// MovementInputDTO entrada para registrar un movimiento. EmployeeID es el funcionario en sesión.
type MovementInputDTO struct {
	EmployeeID int64
	ProductID  int64
	Type       string
	Quantity   int64
}

// RegisterMovement aplica el movimiento: entrada suma, saida resta (el saldo puede quedar negativo).
// Si el producto no tiene registro de estoque se crea con el nuevo saldo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResponse, error) {
	if !entity.IsValidMovementType(input.Type) || input.ProductID <= 0 || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, err := uc.stock.GetByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	var balance int64
	if current != nil {
		balance = current.Quantity
	}
	balance = domaininv.ApplyMovement(balance, input.Type, input.Quantity)

	if current == nil {
		err = uc.stock.Create(ctx, &entity.StockRecord{ProductID: input.ProductID, Quantity: balance})
	} else {
		err = uc.stock.UpdateQuantity(ctx, input.ProductID, balance)
	}
	if err != nil {
		return nil, err
	}

	out := &dto.MovementResponse{ProductID: input.ProductID, Type: input.Type, Balance: balance}
	if input.Type != entity.MovementTypeOut {
		return out, nil
	}
	sale := &entity.Sale{
		EmployeeID: input.EmployeeID,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		TotalPrice: domaininv.SaleTotal(product.Price, input.Quantity),
	}
	if err := uc.sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	out.Sale = &dto.SaleResponse{
		ID:         sale.ID,
		Product:    product.Name,
		Quantity:   sale.Quantity,
		TotalPrice: sale.TotalPrice,
	}
	return out, nil
}
