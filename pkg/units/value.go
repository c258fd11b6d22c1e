package units

// Value is the common interface satisfied by every dose Value Object
// (Mass, Volume, Count). It exists so callers that only need to display or
// serialize a dose need not switch on the concrete type.
type Value interface {
	// Kind returns the tagged-JSON discriminator: "mass", "volume", or "count".
	Kind() string
	// Amount returns the numeric value in the value's own unit.
	Amount() float64
	// UnitCode returns the unit code (e.g. "mg", "mL", "tablet").
	UnitCode() string
}

// taggedValue is the wire shape shared by Mass, Volume, and Count:
// {"type": "...", "value": ..., "unit": "..."}.
type taggedValue struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}
