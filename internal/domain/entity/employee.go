package entity

// Tipos de funcionario presentes en los datos de la cantina.
const (
	RoleCashier = "caixa"
	RoleAdmin   = "admin"
)

// Employee funcionario de la cantina. Se autentica por nombre o email y firma las ventas.
type Employee struct {
	ID       int64
	Name     string
	Role     string // tipo: caixa, admin...
	Email    string
	Password string // credencial en texto plano, como está en funcionarios.senha
}
