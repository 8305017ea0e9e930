// Package report builds the editable report model from a computed breakdown
// and reconciles it against a user's prior edits across saves.
package report

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind tags a cost value as computed or free-text.
type ValueKind string

const (
	// ValueNumeric marks a freshly computed figure. Numeric values always
	// track the latest computation; user edits to them never survive.
	ValueNumeric ValueKind = "numeric"
	// ValueDescriptive marks free-text commentary. Descriptive values are
	// user-owned and sticky across recomputation.
	ValueDescriptive ValueKind = "descriptive"
)

// CostValue is a tagged variant: either a computed amount or descriptive
// text. The tag is assigned once at default-generation time so merges never
// have to re-sniff strings.
type CostValue struct {
	Kind   ValueKind       `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Text   string          `json:"text,omitempty"`
}

// Numeric builds a numeric cost value.
func Numeric(amount decimal.Decimal) CostValue {
	return CostValue{Kind: ValueNumeric, Amount: amount}
}

// Descriptive builds a descriptive cost value.
func Descriptive(text string) CostValue {
	return CostValue{Kind: ValueDescriptive, Text: text}
}

// IsNumeric reports whether the value carries a computed amount.
func (v CostValue) IsNumeric() bool {
	return v.Kind == ValueNumeric
}

// IsZero reports whether the value was never set.
func (v CostValue) IsZero() bool {
	return v.Kind == ""
}

// String renders the value for display.
func (v CostValue) String() string {
	if v.Kind == ValueDescriptive {
		return v.Text
	}
	return v.Amount.StringFixed(2)
}

// Classify applies the legacy string heuristic to a raw value: an "Impact:"
// prefix, a percent sign, or anything that fails to parse as a number is
// descriptive; everything else is numeric. Only values predating the tagged
// form go through here.
func Classify(raw string) CostValue {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "Impact:") || strings.Contains(trimmed, "%") {
		return Descriptive(raw)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", ""))
	if err != nil {
		return Descriptive(raw)
	}
	return Numeric(amount)
}

// UnmarshalJSON accepts both the tagged object form and the legacy plain
// string form, classifying the latter on the way in.
func (v *CostValue) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*v = Classify(raw)
		return nil
	}

	type alias CostValue
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*v = CostValue(a)
	return nil
}
