package postgres

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Lectura tolerante de columnas: el backend real y el de respaldo entregan int64/decimal/string,
// pero un esquema con INT4 o NUMERIC sin codec no debe romper los repositorios.

func rowInt64(r Row, col string) (int64, error) {
	switch v := r[col].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int:
		return int64(v), nil
	case decimal.Decimal:
		return v.IntPart(), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("columna %s: %w", col, err)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("columna %s: tipo %T no soportado", col, v)
	}
}

func rowDecimal(r Row, col string) (decimal.Decimal, error) {
	switch v := r[col].(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("columna %s: %w", col, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, nil
	default:
		n, err := rowInt64(r, col)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(n), nil
	}
}

func rowString(r Row, col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
