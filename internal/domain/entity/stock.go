package entity

// StockRecord saldo de un producto. Puede quedar negativo: no hay piso.
type StockRecord struct {
	ID        int64
	ProductID int64
	Quantity  int64
}
