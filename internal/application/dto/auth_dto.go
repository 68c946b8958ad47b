package dto

// LoginRequest entrada para login: username acepta nombre o email del funcionario.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// EmployeeResponse funcionario en sesión (sin credencial).
type EmployeeResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Role  string `json:"tipo"`
	Email string `json:"email"`
}

// LoginResponse token JWT y funcionario autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"funcionario"`
}
