package entity

import "github.com/shopspring/decimal"

// Sale venta registrada por una salida de estoque. Inmutable.
type Sale struct {
	ID         int64
	EmployeeID int64
	ProductID  int64
	Quantity   int64
	TotalPrice decimal.Decimal // precio unitario x cantidad al momento de la venta
}

// SaleSummary venta con los nombres de producto y funcionario (listado de movimientos recientes).
type SaleSummary struct {
	ID           int64
	ProductName  string
	EmployeeName string
	Quantity     int64
	TotalPrice   decimal.Decimal
}
