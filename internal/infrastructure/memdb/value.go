package memdb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row fila de una tabla o de un resultado: nombre de columna -> valor escalar
// (string, int64, decimal.Decimal o nil). Mismo formato que devuelve pgx.RowToMap.
type Row = map[string]any

var (
	intPattern     = regexp.MustCompile(`^[-+]?\d+$`)
	decimalPattern = regexp.MustCompile(`^[-+]?(\d+\.\d*|\.\d+)([eE][-+]?\d+)?$`)
)

// coerce convierte un token del script a su valor tipado.
// Un literal entre comillas siempre es string; lo demás se infiere.
func coerce(token string, quoted bool) any {
	if quoted {
		return token
	}
	t := strings.TrimSpace(token)
	switch {
	case strings.EqualFold(t, "null"):
		return nil
	case intPattern.MatchString(t):
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
		if d, err := decimal.NewFromString(t); err == nil {
			return d
		}
	case decimalPattern.MatchString(t):
		if d, err := decimal.NewFromString(t); err == nil {
			return d
		}
	}
	return t
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	case float32:
		if n == float32(int64(n)) {
			return int64(n), true
		}
	case decimal.Decimal:
		if n.IsInteger() {
			return n.IntPart(), true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	}
	if i, ok := toInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Decimal{}, false
}

func toText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case decimal.Decimal:
		return s.String()
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

// sameValue compara como lo haría "col = $n": NULL nunca es igual; si alguno de los
// dos es texto se compara como texto, si no numéricamente.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	_, aText := a.(string)
	_, bText := b.(string)
	if !aText && !bText {
		da, okA := toDecimal(a)
		db, okB := toDecimal(b)
		if okA && okB {
			return da.Equal(db)
		}
	}
	return toText(a) == toText(b)
}
