// Package types provides common types used across Ledger.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Value represents an amount of social labour time, measured in hours.
// All arithmetic is exact decimal arithmetic, never floating point.
//
// Examples:
//   - Hours(8)              = 8 hours
//   - MustParse("2.5")      = 2 hours 30 minutes
//   - Hours(10).DivInt(4)   = 2.5 hours
type Value struct {
	dec decimal.Decimal
}

// ZeroValue is the zero amount of labour time.
var ZeroValue = Value{}

// Constructors

// Hours creates a Value from a whole number of hours.
func Hours(h int64) Value { return Value{dec: decimal.NewFromInt(h)} }

// FromDecimal wraps an existing decimal as a Value.
func FromDecimal(d decimal.Decimal) Value { return Value{dec: d} }

// ParseValue parses a decimal string ("2.5", "-0.75") into a Value.
func ParseValue(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("types: parse value %q: %w", s, err)
	}
	return Value{dec: d}, nil
}

// MustParse is like ParseValue but panics on error. Use for hardcoded values.
func MustParse(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Arithmetic operations

// Add returns the sum of two Values.
func (v Value) Add(other Value) Value {
	return Value{dec: v.dec.Add(other.dec)}
}

// Sub returns the difference of two Values.
func (v Value) Sub(other Value) Value {
	return Value{dec: v.dec.Sub(other.dec)}
}

// MulInt multiplies the Value by an integer quantity.
func (v Value) MulInt(qty int64) Value {
	return Value{dec: v.dec.Mul(decimal.NewFromInt(qty))}
}

// DivInt divides the Value by an integer divisor with exact decimal precision.
func (v Value) DivInt(divisor int64) Value {
	if divisor == 0 {
		panic("types: value division by zero")
	}
	return Value{dec: v.dec.Div(decimal.NewFromInt(divisor))}
}

// Neg returns the negative of the Value.
func (v Value) Neg() Value {
	return Value{dec: v.dec.Neg()}
}

// Abs returns the absolute value.
func (v Value) Abs() Value {
	return Value{dec: v.dec.Abs()}
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (v Value) IsZero() bool { return v.dec.IsZero() }

// IsPositive returns true if the amount is greater than zero.
func (v Value) IsPositive() bool { return v.dec.IsPositive() }

// IsNegative returns true if the amount is less than zero.
func (v Value) IsNegative() bool { return v.dec.IsNegative() }

// Equal returns true if both Values represent the same amount.
func (v Value) Equal(other Value) bool {
	return v.dec.Equal(other.dec)
}

// LessThan returns true if this Value is less than other.
func (v Value) LessThan(other Value) bool {
	return v.dec.LessThan(other.dec)
}

// GreaterThan returns true if this Value is greater than other.
func (v Value) GreaterThan(other Value) bool {
	return v.dec.GreaterThan(other.dec)
}

// Decimal returns the underlying decimal.
func (v Value) Decimal() decimal.Decimal { return v.dec }

// Float64 returns the nearest float64. For metrics and plotting only; exact
// arithmetic stays on the decimal representation.
func (v Value) Float64() float64 {
	f, _ := v.dec.Float64()
	return f
}

// String returns the canonical decimal string ("2.5", "-0.75", "0").
func (v Value) String() string { return v.dec.String() }

// MarshalJSON implements json.Marshaler. Values serialize as JSON strings so
// that no precision is lost in transit.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.dec.String())
}

// UnmarshalJSON implements json.Unmarshaler. Both string and bare numeric
// encodings are accepted.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Fall back to a bare JSON number.
		s = string(data)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("types: unmarshal value %q: %w", s, err)
	}
	v.dec = d
	return nil
}

// Value implements driver.Valuer for database storage. Amounts are stored as
// their canonical decimal string.
func (v Value) Value() (driver.Value, error) {
	return v.dec.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (v *Value) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		v.dec = decimal.Zero
		return nil
	case string:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("types: scan value %q: %w", s, err)
		}
		v.dec = d
		return nil
	case []byte:
		return v.Scan(string(s))
	case int64:
		v.dec = decimal.NewFromInt(s)
		return nil
	case float64:
		v.dec = decimal.NewFromFloat(s)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into Value", src)
	}
}

// SumValues calculates the sum of multiple Values.
func SumValues(values ...Value) Value {
	result := ZeroValue
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
