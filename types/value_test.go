package types

import (
	"encoding/json"
	"testing"
)

func TestValueConstructors(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		display string
	}{
		{"Hours", Hours(8), "8"},
		{"Zero", ZeroValue, "0"},
		{"Fraction", MustParse("2.5"), "2.5"},
		{"Negative", MustParse("-0.75"), "-0.75"},
		{"Hours negative", Hours(-3), "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.String() != tt.display {
				t.Errorf("String: got %s, want %s", tt.value.String(), tt.display)
			}
		})
	}
}

func TestValueArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Value
		expected Value
	}{
		{"Add", func() Value { return Hours(1).Add(Hours(2)) }, Hours(3)},
		{"Sub", func() Value { return Hours(5).Sub(Hours(2)) }, Hours(3)},
		{"MulInt", func() Value { return MustParse("2.5").MulInt(4) }, Hours(10)},
		{"DivInt exact", func() Value { return Hours(10).DivInt(4) }, MustParse("2.5")},
		{"DivInt repeating", func() Value { return Hours(1).DivInt(3).MulInt(3) }, Hours(1)},
		{"Neg", func() Value { return Hours(1).Neg() }, Hours(-1)},
		{"Abs positive", func() Value { return Hours(1).Abs() }, Hours(1)},
		{"Abs negative", func() Value { return Hours(-1).Abs() }, Hours(1)},
		{"Complex", func() Value {
			return Hours(10).Add(Hours(5)).MulInt(2).Sub(Hours(10))
		}, Hours(20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestValueDivisionByZero(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for division by zero")
		}
	}()

	// This should panic
	_ = Hours(100).DivInt(0)
}

func TestValueComparison(t *testing.T) {
	if !Hours(1).LessThan(Hours(2)) {
		t.Error("1 should be less than 2")
	}
	if !Hours(2).GreaterThan(Hours(1)) {
		t.Error("2 should be greater than 1")
	}
	if !ZeroValue.IsZero() {
		t.Error("zero value should be zero")
	}
	if !Hours(1).IsPositive() {
		t.Error("1 should be positive")
	}
	if !Hours(-1).IsNegative() {
		t.Error("-1 should be negative")
	}
	// Equal is numeric, not representational.
	if !MustParse("2.50").Equal(MustParse("2.5")) {
		t.Error("2.50 should equal 2.5")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	original := MustParse("13.37")
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"13.37"` {
		t.Errorf("expected string encoding, got %s", data)
	}

	var restored Value
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !restored.Equal(original) {
		t.Errorf("round-trip mismatch: %v != %v", restored, original)
	}

	// Bare numbers are accepted too.
	var fromNumber Value
	if err := json.Unmarshal([]byte("4.25"), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if !fromNumber.Equal(MustParse("4.25")) {
		t.Errorf("got %v, want 4.25", fromNumber)
	}
}

func TestValueScan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected Value
	}{
		{"string", "2.5", MustParse("2.5")},
		{"bytes", []byte("-0.75"), MustParse("-0.75")},
		{"int64", int64(8), Hours(8)},
		{"nil", nil, ZeroValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := v.Scan(tt.src); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if !v.Equal(tt.expected) {
				t.Errorf("got %v, want %v", v, tt.expected)
			}
		})
	}

	var v Value
	if err := v.Scan(struct{}{}); err == nil {
		t.Error("expected error for unsupported scan type")
	}
}

func TestValueDriverRoundTrip(t *testing.T) {
	// High-precision amounts must survive storage without rounding or
	// float conversion. The driver representation is the canonical
	// decimal string, so every digit comes back.
	for _, s := range []string{"99.999", "0.142857142857142857", "12345678901234567890.123456"} {
		original := MustParse(s)
		dv, err := original.Value()
		if err != nil {
			t.Fatalf("Value(%s) failed: %v", s, err)
		}
		if str, ok := dv.(string); !ok || str != s {
			t.Fatalf("Value(%s) = %v (%T), want the same decimal string", s, dv, dv)
		}

		var restored Value
		if err := restored.Scan(dv); err != nil {
			t.Fatalf("Scan(%s) failed: %v", s, err)
		}
		if !restored.Equal(original) {
			t.Errorf("round-trip mismatch: %v != %v", restored, original)
		}
	}
}

func TestSumValues(t *testing.T) {
	sum := SumValues(Hours(1), MustParse("2.5"), MustParse("-0.5"))
	if !sum.Equal(Hours(3)) {
		t.Errorf("got %v, want 3", sum)
	}
	if !SumValues().IsZero() {
		t.Error("empty sum should be zero")
	}
}

func TestParseValueInvalid(t *testing.T) {
	if _, err := ParseValue("not a number"); err == nil {
		t.Error("expected error for invalid input")
	}
}
