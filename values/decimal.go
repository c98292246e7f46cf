// Package values provides the value types used by generated formula code.
//
// Decimal and Money are immutable. A Decimal with a nil Value represents the
// null value; operations involving null yield null.
package values

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// defaultDecimalPrecision keeps 34 significant digits (roughly Decimal128).
const defaultDecimalPrecision uint32 = 34

// DecimalContext is the apd.Context used for decimal arithmetic.
var DecimalContext = apd.BaseContext.WithPrecision(defaultDecimalPrecision)

// RoundingMode selects how Round discards digits.
type RoundingMode apd.Rounder

const (
	RoundHalfUp   = RoundingMode(apd.RoundHalfUp)
	RoundHalfEven = RoundingMode(apd.RoundHalfEven)
	RoundHalfDown = RoundingMode(apd.RoundHalfDown)
	RoundUp       = RoundingMode(apd.RoundUp)
	RoundDown     = RoundingMode(apd.RoundDown)
	RoundCeiling  = RoundingMode(apd.RoundCeiling)
	RoundFloor    = RoundingMode(apd.RoundFloor)
)

type Decimal struct {
	Value *apd.Decimal
}

// DecimalZero returns the decimal 0.
func DecimalZero() Decimal {
	return Decimal{Value: apd.New(0, 0)}
}

// DecimalNull returns the null decimal.
func DecimalNull() Decimal {
	return Decimal{}
}

func DecimalFromInt(i int64) Decimal {
	return Decimal{Value: apd.New(i, 0)}
}

// DecimalFromFloat converts f using its shortest decimal representation, so
// that Float64 returns f again.
func DecimalFromFloat(f float64) Decimal {
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		panic(fmt.Errorf("can not convert %v to decimal: %w", f, err))
	}
	return Decimal{Value: d}
}

// NullableDecimalFromInt converts an optional integer, nil yields null.
func NullableDecimalFromInt[T int32 | int64](i *T) Decimal {
	if i == nil {
		return DecimalNull()
	}
	return DecimalFromInt(int64(*i))
}

// NullableDecimalFromFloat converts an optional float, nil yields null.
func NullableDecimalFromFloat(f *float64) Decimal {
	if f == nil {
		return DecimalNull()
	}
	return DecimalFromFloat(*f)
}

func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{Value: d}, nil
}

// MustParseDecimal is like ParseDecimal but panics on invalid input.
// Generated code uses it for decimal literals that were validated at compile time.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) IsNull() bool {
	return d.Value == nil
}

// Float64 returns the nearest float64, 0 for null.
func (d Decimal) Float64() float64 {
	if d.IsNull() {
		return 0
	}
	f, err := d.Value.Float64()
	if err != nil {
		panic(fmt.Errorf("can not convert %s to float: %w", d, err))
	}
	return f
}

// NullableFloat64 is like Float64 but returns nil for null.
func (d Decimal) NullableFloat64() *float64 {
	if d.IsNull() {
		return nil
	}
	f := d.Float64()
	return &f
}

type binaryOp func(ctx *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

func (d Decimal) apply(o Decimal, op binaryOp, name string) Decimal {
	if d.IsNull() || o.IsNull() {
		return DecimalNull()
	}
	var r apd.Decimal
	if _, err := op(DecimalContext, &r, d.Value, o.Value); err != nil {
		panic(fmt.Errorf("%s %s %s: %w", d, name, o, err))
	}
	return Decimal{Value: &r}
}

func (d Decimal) Add(o Decimal) Decimal {
	return d.apply(o, (*apd.Context).Add, "+")
}

func (d Decimal) Subtract(o Decimal) Decimal {
	return d.apply(o, (*apd.Context).Sub, "-")
}

func (d Decimal) Multiply(o Decimal) Decimal {
	return d.apply(o, (*apd.Context).Mul, "*")
}

func (d Decimal) Abs() Decimal {
	if d.IsNull() {
		return d
	}
	var r apd.Decimal
	r.Abs(d.Value)
	return Decimal{Value: &r}
}

// Power raises d to the integral exponent n.
func (d Decimal) Power(n int32) Decimal {
	if d.IsNull() {
		return d
	}
	var r apd.Decimal
	if _, err := DecimalContext.Pow(&r, d.Value, apd.New(int64(n), 0)); err != nil {
		panic(fmt.Errorf("%s ^ %d: %w", d, n, err))
	}
	return Decimal{Value: &r}
}

// Round rounds d to scale digits after the decimal point.
func (d Decimal) Round(scale int32, mode RoundingMode) Decimal {
	if d.IsNull() {
		return d
	}
	ctx := *DecimalContext
	ctx.Rounding = apd.Rounder(mode)
	var r apd.Decimal
	if _, err := ctx.Quantize(&r, d.Value, -scale); err != nil {
		panic(fmt.Errorf("can not round %s to scale %d: %w", d, scale, err))
	}
	return Decimal{Value: &r}
}

// WholeNumber truncates d to its integral part, 0 for null. It panics if the
// integral part does not fit into an int32.
func (d Decimal) WholeNumber() int32 {
	if d.IsNull() {
		return 0
	}
	var r apd.Decimal
	ctx := *DecimalContext
	ctx.Rounding = apd.RoundDown
	if _, err := ctx.RoundToIntegralValue(&r, d.Value); err != nil {
		panic(fmt.Errorf("can not truncate %s: %w", d, err))
	}
	i, err := r.Int64()
	if err != nil {
		panic(fmt.Errorf("can not truncate %s: %w", d, err))
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		panic(fmt.Errorf("can not truncate %s: out of int range", d))
	}
	return int32(i)
}

// Cmp compares d and o, null sorts before every value.
func (d Decimal) Cmp(o Decimal) int {
	switch {
	case d.IsNull() && o.IsNull():
		return 0
	case d.IsNull():
		return -1
	case o.IsNull():
		return 1
	}
	return d.Value.Cmp(o.Value)
}

func (d Decimal) Min(o Decimal) Decimal {
	if d.IsNull() || o.IsNull() {
		return DecimalNull()
	}
	if d.Cmp(o) <= 0 {
		return d
	}
	return o
}

func (d Decimal) Max(o Decimal) Decimal {
	if d.IsNull() || o.IsNull() {
		return DecimalNull()
	}
	if d.Cmp(o) >= 0 {
		return d
	}
	return o
}

func (d Decimal) String() string {
	if d.IsNull() {
		return "null"
	}
	return d.Value.Text('f')
}

// NotNullable negates an optional boolean, nil stays nil.
func NotNullable(b *bool) *bool {
	if b == nil {
		return nil
	}
	r := !*b
	return &r
}
