package units

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CountUnit is a recognized discrete-dose-form unit code.
type CountUnit string

const (
	Tablet      CountUnit = "tablet"
	Capsule     CountUnit = "capsule"
	Patch       CountUnit = "patch"
	Click       CountUnit = "click"
	Puff        CountUnit = "puff"
	Drop        CountUnit = "drop"
	Spray       CountUnit = "spray"
	Suppository CountUnit = "suppository"
)

var validCountUnits = map[CountUnit]bool{
	Tablet: true, Capsule: true, Patch: true, Click: true,
	Puff: true, Drop: true, Spray: true, Suppository: true,
}

// Count is an immutable discrete-unit quantity. Values may be fractional
// (e.g. 0.5 tablet) — scoring rules that bound which fractions are allowed
// live in pkg/builders, not here; this type only enforces positivity.
type Count struct {
	value decimal.Decimal
	unit  CountUnit
}

// NewCount constructs a Count, rejecting non-positive values and unknown units.
func NewCount(value float64, unit CountUnit) (Count, error) {
	if value <= 0 {
		return Count{}, fmt.Errorf("count value must be positive, got %v", value)
	}
	if !validCountUnits[unit] {
		return Count{}, fmt.Errorf("unknown count unit %q", unit)
	}
	return Count{value: decimal.NewFromFloat(value), unit: unit}, nil
}

// MustCount is like NewCount but panics on error.
func MustCount(value float64, unit CountUnit) Count {
	c, err := NewCount(value, unit)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Count) Kind() string             { return "count" }
func (c Count) Amount() float64          { return c.value.InexactFloat64() }
func (c Count) UnitCode() string         { return string(c.unit) }
func (c Count) Unit() CountUnit          { return c.unit }
func (c Count) Decimal() decimal.Decimal { return c.value }

func (c Count) String() string {
	return fmt.Sprintf("%s %s", c.value.String(), c.unit)
}

func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedValue{Type: c.Kind(), Value: c.Amount(), Unit: c.UnitCode()})
}

func (c *Count) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	if tv.Type != "count" {
		return fmt.Errorf("expected type \"count\", got %q", tv.Type)
	}
	built, err := NewCount(tv.Value, CountUnit(tv.Unit))
	if err != nil {
		return err
	}
	*c = built
	return nil
}

// IsPlural reports whether the count's amount should render with a plural
// unit noun (e.g. "2 tablets" vs "1 tablet"). Values other than exactly 1
// are plural, including fractions like 0.5.
func (c Count) IsPlural() bool {
	return !c.value.Equal(decimal.NewFromInt(1))
}
