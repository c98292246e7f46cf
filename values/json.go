package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var jsonNull = []byte("null")

// MarshalJSON encodes d as a JSON number, null as null.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d.IsNull() {
		return jsonNull, nil
	}
	return []byte(d.Value.Text('f')), nil
}

// UnmarshalJSON accepts JSON numbers, numeric strings and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*d = DecimalNull()
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON encodes m as a string of amount and currency, e.g. "10.50 EUR".
// A currency-less amount is written without currency.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.IsNull() {
		return jsonNull, nil
	}
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*m = Money{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("money must be a string: %w", err)
	}
	if !strings.ContainsRune(strings.TrimSpace(s), ' ') {
		// an amount without currency, as written for MoneyZero
		amount, err := ParseDecimal(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid money %q: %w", s, err)
		}
		*m = Money{Amount: amount}
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
