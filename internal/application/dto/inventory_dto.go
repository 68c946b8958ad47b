package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Type      string `json:"type"` // entrada | saida
	Quantity  int64  `json:"quantity"`
}

// MovementResponse resultado de un movimiento: nuevo saldo y la venta si fue salida.
type MovementResponse struct {
	ProductID int64         `json:"product_id"`
	Type      string        `json:"type"`
	Balance   int64         `json:"saldo"`
	Sale      *SaleResponse `json:"venda,omitempty"`
}

// SaleResponse venta listada en movimientos recientes.
type SaleResponse struct {
	ID         int64           `json:"id"`
	Product    string          `json:"produto,omitempty"`
	Employee   string          `json:"funcionario,omitempty"`
	Quantity   int64           `json:"quantidade"`
	TotalPrice decimal.Decimal `json:"preco_total"`
}

// InventoryOverviewDTO respuesta de GET /api/inventory: productos y ventas recientes.
type InventoryOverviewDTO struct {
	Products  []ProductResponse `json:"produtos"`
	Movements []SaleResponse    `json:"movimentos"`
}
