package blocks

import (
	"math"
	"strconv"
	"strings"
)

// asNumber reports the float64 value of v and whether v is an integer kind.
// JSON numbers arrive as float64; flow files may carry native int values.
func asNumber(v any) (val float64, isInt bool, ok bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true, true
	case int32:
		return float64(n), true, true
	case int64:
		return float64(n), true, true
	case uint:
		return float64(n), true, true
	case uint64:
		return float64(n), true, true
	case float32:
		return float64(n), false, true
	case float64:
		return n, false, true
	default:
		return 0, false, false
	}
}

// isWhole reports whether f has no fractional part and fits an int64.
func isWhole(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64
}

// parseNumberString converts a string to a number, preferring int unless the
// text carries a decimal point or exponent.
func parseNumberString(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if strings.ContainsAny(trimmed, ".eE") {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	i, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr != nil {
			return nil, false
		}
		return f, true
	}
	return i, true
}

// addThousandsSeparators inserts commas into the integer part of a formatted
// number ("1234567.5" -> "1,234,567.5").
func addThousandsSeparators(s string) string {
	intPart := s
	rest := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, rest = s[:idx], s[idx:]
	}

	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + rest
	if neg {
		return "-" + out
	}
	return out
}
