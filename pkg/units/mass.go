package units

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MassUnit is a recognized mass unit code (UCUM).
type MassUnit string

const (
	Microgram MassUnit = "mcg"
	Milligram MassUnit = "mg"
	Gram      MassUnit = "g"
	Kilogram  MassUnit = "kg"
)

var validMassUnits = map[MassUnit]bool{
	Microgram: true, Milligram: true, Gram: true, Kilogram: true,
}

// Mass is an immutable mass quantity (mcg/mg/g/kg).
type Mass struct {
	value decimal.Decimal
	unit  MassUnit
}

// NewMass constructs a Mass, rejecting non-positive values and unknown units.
func NewMass(value float64, unit MassUnit) (Mass, error) {
	if value <= 0 {
		return Mass{}, fmt.Errorf("mass value must be positive, got %v", value)
	}
	if !validMassUnits[unit] {
		return Mass{}, fmt.Errorf("unknown mass unit %q", unit)
	}
	return Mass{value: decimal.NewFromFloat(value), unit: unit}, nil
}

// MustMass is like NewMass but panics on error; intended for tests and
// compile-time-known literals.
func MustMass(value float64, unit MassUnit) Mass {
	m, err := NewMass(value, unit)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Mass) Kind() string     { return "mass" }
func (m Mass) Amount() float64  { return m.value.InexactFloat64() }
func (m Mass) UnitCode() string { return string(m.unit) }
func (m Mass) Unit() MassUnit   { return m.unit }
func (m Mass) Decimal() decimal.Decimal { return m.value }

func (m Mass) String() string {
	return fmt.Sprintf("%s %s", m.value.String(), m.unit)
}

func (m Mass) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedValue{Type: m.Kind(), Value: m.Amount(), Unit: m.UnitCode()})
}

func (m *Mass) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	if tv.Type != "mass" {
		return fmt.Errorf("expected type \"mass\", got %q", tv.Type)
	}
	built, err := NewMass(tv.Value, MassUnit(tv.Unit))
	if err != nil {
		return err
	}
	*m = built
	return nil
}
