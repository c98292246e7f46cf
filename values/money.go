package values

import (
	"fmt"
	"strings"
)

// Money is an amount in a currency identified by its ISO 4217 code.
//
// The zero Money is the null value. MoneyZero is the additive identity: a
// zero amount without currency that adopts the currency of the other operand.
type Money struct {
	Amount   Decimal
	Currency string
}

// MoneyZero returns the currency-less zero amount.
func MoneyZero() Money {
	return Money{Amount: DecimalZero()}
}

// ParseMoney parses "<amount> <currency>", e.g. "10.50 EUR".
func ParseMoney(s string) (Money, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Money{}, fmt.Errorf("invalid money %q: expected amount and currency", s)
	}
	amount, err := ParseDecimal(fields[0])
	if err != nil {
		return Money{}, fmt.Errorf("invalid money %q: %w", s, err)
	}
	if !validCurrency(fields[1]) {
		return Money{}, fmt.Errorf("invalid money %q: unknown currency code %q", s, fields[1])
	}
	return Money{Amount: amount, Currency: fields[1]}, nil
}

// MustParseMoney is like ParseMoney but panics on invalid input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func validCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (m Money) IsNull() bool {
	return m.Amount.IsNull()
}

// align gives a currency-less amount the currency of the other operand and
// panics if the currencies still differ.
func (m Money) align(o Money, op string) (Money, Money) {
	if m.Currency == "" {
		m.Currency = o.Currency
	}
	if o.Currency == "" {
		o.Currency = m.Currency
	}
	if m.Currency != o.Currency {
		panic(fmt.Errorf("%s %s %s: currencies differ", m, op, o))
	}
	return m, o
}

// Add returns the sum, null if either operand is null.
func (m Money) Add(o Money) Money {
	if m.IsNull() || o.IsNull() {
		return Money{}
	}
	m, o = m.align(o, "+")
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}
}

// Round rounds the amount to scale digits after the decimal point.
func (m Money) Round(scale int32, mode RoundingMode) Money {
	return Money{Amount: m.Amount.Round(scale, mode), Currency: m.Currency}
}

func (m Money) Min(o Money) Money {
	if m.IsNull() || o.IsNull() {
		return Money{}
	}
	m, o = m.align(o, "min")
	if m.Amount.Cmp(o.Amount) <= 0 {
		return m
	}
	return o
}

func (m Money) Max(o Money) Money {
	if m.IsNull() || o.IsNull() {
		return Money{}
	}
	m, o = m.align(o, "max")
	if m.Amount.Cmp(o.Amount) >= 0 {
		return m
	}
	return o
}

func (m Money) String() string {
	if m.IsNull() {
		return "null"
	}
	if m.Currency == "" {
		return m.Amount.String()
	}
	return m.Amount.String() + " " + m.Currency
}
