package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Price ausente = 0.
type CreateProductRequest struct {
	StockRef int64           `json:"id_estoque"`
	Name     string          `json:"nome"`
	Price    decimal.Decimal `json:"preco"`
}

// UpdateProductRequest entrada para actualizar nombre y precio.
type UpdateProductRequest struct {
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"preco"`
}

// ProductResponse producto con su cantidad en estoque.
type ProductResponse struct {
	ID       int64           `json:"id"`
	StockRef int64           `json:"id_estoque"`
	Name     string          `json:"nome"`
	Price    decimal.Decimal `json:"preco"`
	Quantity int64           `json:"quantidade"`
}

// ProductListResponse listado de productos con el término de búsqueda aplicado.
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Search string            `json:"busca,omitempty"`
}
