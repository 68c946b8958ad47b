package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/cantina-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, employeeID int64, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		EmployeeID: employeeID,
		ProductID:  in.ProductID,
		Type:       strings.ToLower(strings.TrimSpace(in.Type)),
		Quantity:   in.Quantity,
	})
}
