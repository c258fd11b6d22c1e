package units

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// VolumeUnit is a recognized volume unit code (UCUM).
type VolumeUnit string

const (
	Milliliter VolumeUnit = "mL"
	Liter      VolumeUnit = "L"
)

var validVolumeUnits = map[VolumeUnit]bool{
	Milliliter: true, Liter: true,
}

// Volume is an immutable volume quantity (mL/L).
type Volume struct {
	value decimal.Decimal
	unit  VolumeUnit
}

// NewVolume constructs a Volume, rejecting non-positive values and unknown units.
func NewVolume(value float64, unit VolumeUnit) (Volume, error) {
	if value <= 0 {
		return Volume{}, fmt.Errorf("volume value must be positive, got %v", value)
	}
	if !validVolumeUnits[unit] {
		return Volume{}, fmt.Errorf("unknown volume unit %q", unit)
	}
	return Volume{value: decimal.NewFromFloat(value), unit: unit}, nil
}

// MustVolume is like NewVolume but panics on error.
func MustVolume(value float64, unit VolumeUnit) Volume {
	v, err := NewVolume(value, unit)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Volume) Kind() string     { return "volume" }
func (v Volume) Amount() float64  { return v.value.InexactFloat64() }
func (v Volume) UnitCode() string { return string(v.unit) }
func (v Volume) Unit() VolumeUnit { return v.unit }
func (v Volume) Decimal() decimal.Decimal { return v.value }

func (v Volume) String() string {
	return fmt.Sprintf("%s %s", v.value.String(), v.unit)
}

func (v Volume) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedValue{Type: v.Kind(), Value: v.Amount(), Unit: v.UnitCode()})
}

func (v *Volume) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	if tv.Type != "volume" {
		return fmt.Errorf("expected type \"volume\", got %q", tv.Type)
	}
	built, err := NewVolume(tv.Value, VolumeUnit(tv.Unit))
	if err != nil {
		return err
	}
	*v = built
	return nil
}
