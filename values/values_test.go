package values

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
)

var decimalComparer = cmp.Comparer(func(a, b Decimal) bool {
	return a.Cmp(b) == 0
})

func TestDecimalRound(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		scale    int32
		mode     RoundingMode
		expected string
	}{
		{"half up", "2.345", 2, RoundHalfUp, "2.35"},
		{"half even", "2.345", 2, RoundHalfEven, "2.34"},
		{"up", "2.341", 2, RoundUp, "2.35"},
		{"down", "2.349", 2, RoundDown, "2.34"},
		{"integral", "2.5", 0, RoundHalfUp, "3"},
		{"negative", "-2.345", 1, RoundDown, "-2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDecimal(tt.value).Round(tt.scale, tt.mode)
			if got.String() != tt.expected {
				t.Errorf("Round() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDecimalFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.1, 2.5, 1234.5678, 1e-7, 3.141592653589793} {
		if got := DecimalFromFloat(f).Float64(); got != f {
			t.Errorf("DecimalFromFloat(%v).Float64() = %v", f, got)
		}
	}
	for _, s := range []string{"0.1", "12.75", "-3.5", "100"} {
		d := MustParseDecimal(s)
		if got := DecimalFromFloat(d.Float64()); got.Cmp(d) != 0 {
			t.Errorf("DecimalFromFloat(%s.Float64()) = %s", s, got)
		}
	}
}

func TestDecimalNull(t *testing.T) {
	null := DecimalNull()
	one := DecimalFromInt(1)

	if !null.Add(one).IsNull() || !one.Add(null).IsNull() {
		t.Error("adding null must yield null")
	}
	if !null.Round(2, RoundHalfUp).IsNull() {
		t.Error("rounding null must yield null")
	}
	if null.NullableFloat64() != nil {
		t.Error("NullableFloat64() of null must be nil")
	}
	if !NullableDecimalFromInt[int32](nil).IsNull() {
		t.Error("NullableDecimalFromInt(nil) must be null")
	}
	i := int64(7)
	if NullableDecimalFromInt(&i).Cmp(DecimalFromInt(7)) != 0 {
		t.Error("NullableDecimalFromInt(7) must be 7")
	}
}

func TestDecimalArithmetic(t *testing.T) {
	a := MustParseDecimal("1.5")
	b := MustParseDecimal("-2")

	tests := []struct {
		name     string
		got      Decimal
		expected Decimal
	}{
		{"add", a.Add(b), MustParseDecimal("-0.5")},
		{"subtract", a.Subtract(b), MustParseDecimal("3.5")},
		{"multiply", a.Multiply(b), MustParseDecimal("-3")},
		{"abs", b.Abs(), MustParseDecimal("2")},
		{"power", a.Power(2), MustParseDecimal("2.25")},
		{"min", a.Min(b), b},
		{"max", a.Max(b), a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Cmp(tt.expected) != 0 {
				t.Errorf("got %s, want %s", tt.got, tt.expected)
			}
		})
	}

	if got := MustParseDecimal("-7.9").WholeNumber(); got != -7 {
		t.Errorf("WholeNumber() = %d, want -7", got)
	}
}

func TestWholeNumberRange(t *testing.T) {
	if got := MustParseDecimal("2147483647.9").WholeNumber(); got != math.MaxInt32 {
		t.Errorf("WholeNumber() = %d, want %d", got, math.MaxInt32)
	}
	if got := MustParseDecimal("-2147483648").WholeNumber(); got != math.MinInt32 {
		t.Errorf("WholeNumber() = %d, want %d", got, math.MinInt32)
	}

	for _, s := range []string{"3000000000.7", "-2147483649", "1E20"} {
		t.Run(s, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %s", s)
				}
			}()
			MustParseDecimal(s).WholeNumber()
		})
	}
}

func TestParseMoney(t *testing.T) {
	got, err := ParseMoney("10.50 EUR")
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	expected := Money{Amount: Decimal{Value: apd.New(1050, -2)}, Currency: "EUR"}
	if !cmp.Equal(got, expected, decimalComparer) {
		t.Errorf("ParseMoney() = %v, want %v", got, expected)
	}

	for _, s := range []string{"10.50", "10.50 eur", "abc EUR", "1 EUR extra"} {
		if _, err := ParseMoney(s); err == nil {
			t.Errorf("ParseMoney(%q) expected error", s)
		}
	}
}

func sumMoney(list []Money) Money {
	sum := MoneyZero()
	for _, v := range list {
		sum = sum.Add(v)
	}
	return sum
}

func TestMoneySum(t *testing.T) {
	tests := []struct {
		name     string
		list     []Money
		expected string
	}{
		{"empty", nil, "0"},
		{"single", []Money{MustParseMoney("3.20 CHF")}, "3.20 CHF"},
		{"several", []Money{MustParseMoney("10.50 EUR"), MustParseMoney("0.50 EUR")}, "11.00 EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sumMoney(tt.list)
			if got.IsNull() {
				t.Fatal("sum must not be null")
			}
			if got.String() != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestMoneyZeroAdoptsCurrency(t *testing.T) {
	empty := sumMoney(nil)
	m := MustParseMoney("10 EUR")

	if got := empty.Max(m); got.String() != "10 EUR" {
		t.Errorf("Max() = %s, want 10 EUR", got)
	}
	if got := empty.Min(m); got.String() != "0 EUR" {
		t.Errorf("Min() = %s, want 0 EUR", got)
	}
	if got := m.Add(empty); got.String() != "10 EUR" {
		t.Errorf("Add() = %s, want 10 EUR", got)
	}

	b, err := json.Marshal(empty)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"0"` {
		t.Errorf("json = %s, want \"0\"", b)
	}
	var back Money
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.IsNull() || back.Currency != "" || back.Amount.Cmp(DecimalZero()) != 0 {
		t.Errorf("unmarshalled %#v, want currency-less zero", back)
	}
}

func TestMoneyNull(t *testing.T) {
	m := MustParseMoney("3.20 CHF")
	for name, got := range map[string]Money{
		"add": (Money{}).Add(m),
		"min": m.Min(Money{}),
		"max": (Money{}).Max(m),
	} {
		if !got.IsNull() {
			t.Errorf("%s with null = %s, want null", name, got)
		}
	}
}

func TestMoneyCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for differing currencies")
		}
	}()
	MustParseMoney("1 EUR").Max(MustParseMoney("1 USD"))
}

func TestNotNullable(t *testing.T) {
	if NotNullable(nil) != nil {
		t.Error("NotNullable(nil) must be nil")
	}
	b := true
	if got := NotNullable(&b); got == nil || *got {
		t.Errorf("NotNullable(true) = %v", got)
	}
}

func TestJSON(t *testing.T) {
	type input struct {
		Base     Decimal `json:"base"`
		Discount Decimal `json:"discount"`
		Fee      Money   `json:"fee"`
	}

	var in input
	err := json.Unmarshal([]byte(`{"base": 12.50, "discount": null, "fee": "3.20 EUR"}`), &in)
	if err != nil {
		t.Fatal(err)
	}
	want := input{
		Base:     MustParseDecimal("12.50"),
		Discount: DecimalNull(),
		Fee:      MustParseMoney("3.20 EUR"),
	}
	if diff := cmp.Diff(want, in, decimalComparer); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out); got != `{"base":12.50,"discount":null,"fee":"3.20 EUR"}` {
		t.Errorf("unexpected encoding %s", got)
	}
}

func TestDecimalUnmarshalString(t *testing.T) {
	var d Decimal
	if err := json.Unmarshal([]byte(`"1.5"`), &d); err != nil {
		t.Fatal(err)
	}
	if d.String() != "1.5" {
		t.Errorf("expected 1.5, got %s", d)
	}
	if err := json.Unmarshal([]byte(`"abc"`), &d); err == nil {
		t.Error("expected error")
	}
}
