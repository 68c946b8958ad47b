package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
)

func TestApplyMovement(t *testing.T) {
	assert.Equal(t, int64(15), ApplyMovement(10, entity.MovementTypeIn, 5))
	assert.Equal(t, int64(7), ApplyMovement(10, entity.MovementTypeOut, 3))
	assert.Equal(t, int64(-3), ApplyMovement(0, entity.MovementTypeOut, 3), "el saldo puede quedar negativo")
}

func TestSaleTotal(t *testing.T) {
	total := SaleTotal(decimal.RequireFromString("2.50"), 3)
	assert.True(t, total.Equal(decimal.RequireFromString("7.50")), total.String())
	assert.True(t, SaleTotal(decimal.RequireFromString("0.10"), 3).Equal(decimal.RequireFromString("0.30")))
}
