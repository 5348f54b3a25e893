package keywords

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	minPrecision = 0
	maxPrecision = 4
)

// precision limits the number of decimal places of a number. The schema value
// is only checked when a number is validated.
type precision struct {
	raw any
}

func (p *precision) Validate(ctx *jsonschema.ValidatorContext, v any) {
	if !isNumber(v) {
		return
	}
	want, ok := precisionValue(p.raw)
	if !ok {
		ctx.AddError(&InvalidPrecision{Value: p.raw})
		return
	}
	got, ok := CountDecimals(v)
	if ok && got > want {
		ctx.AddError(&PrecisionExceeded{Got: got, Want: want})
	}
}

// CountDecimals returns the number of digits after the decimal point in the
// standard shortest double-to-string form of v. That form is plain for
// magnitudes from 1e-6 up to but excluding 1e21, and exponent notation
// otherwise, where only the mantissa's fraction counts: 1e-7 has no decimals
// and 1.5e-7 has one. The count is taken from that string rather than from the
// exact binary value, so 0.1+0.2 counts 17 decimals. ok is false when v is not
// a number.
func CountDecimals(v any) (n int, ok bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return decimalsOf(f, 64), true
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, false
		}
		return decimalsOf(x, 64), true
	case float32:
		return decimalsOf(float64(x), 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return 0, true
	default:
		return 0, false
	}
}

// Exponent notation is used when the decimal point would fall outside
// (minPlainPoint, maxPlainPoint].
const (
	minPlainPoint = -6
	maxPlainPoint = 21
)

func decimalsOf(f float64, bitSize int) int {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(math.Abs(f), 'e', -1, bitSize), "e")
	e, _ := strconv.Atoi(exp)
	digits := len(mant) - strings.Count(mant, ".")
	// point is where the decimal point falls after the first digit
	point := e + 1
	switch {
	case point <= minPlainPoint || point > maxPlainPoint:
		return digits - 1
	case point >= digits:
		return 0
	default:
		return digits - point
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// precisionValue returns the schema value as an int when it is an integer in
// the supported range.
func precisionValue(raw any) (int, bool) {
	var f float64
	switch x := raw.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < minPrecision || f > maxPrecision {
		return 0, false
	}
	return int(f), true
}
