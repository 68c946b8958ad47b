package entity

import "github.com/shopspring/decimal"

// Product producto a la venta.
type Product struct {
	ID       int64
	StockRef int64 // id_estoque: referencia heredada, no es FK
	Name     string
	Price    decimal.Decimal
}

// ProductStock producto con la cantidad de su registro de estoque (0 si no tiene).
type ProductStock struct {
	Product
	Quantity int64
}
