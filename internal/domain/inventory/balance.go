package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
)

// ApplyMovement calcula el nuevo saldo (servicio de dominio).
// entrada suma y saida resta; no hay piso en cero, el saldo negativo se conserva.
func ApplyMovement(current int64, movementType string, quantity int64) int64 {
	if movementType == entity.MovementTypeOut {
		return current - quantity
	}
	return current + quantity
}

// SaleTotal precio unitario por cantidad vendida.
func SaleTotal(price decimal.Decimal, quantity int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity))
}
