package dto

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	LowStock      []ProductResponse `json:"produtos_baixos"` // menos de 5 unidades
	TotalProducts int64             `json:"total_produtos"`
	TotalSales    int64             `json:"total_movimentos"` // ventas registradas
}
