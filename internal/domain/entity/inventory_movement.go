package entity

// Tipos de movimiento de estoque.
const (
	MovementTypeIn  = "entrada" // suma al saldo
	MovementTypeOut = "saida"   // resta al saldo y registra una venta
)

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}
