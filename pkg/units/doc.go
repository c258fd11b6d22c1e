// Package units provides the branded, immutable dose Value Objects:
// Mass, Volume, and Count quantities, plus Frequency and Route.
//
// Each quantity type is disjoint at runtime — a Mass value is never
// interchangeable with a Volume value even though both wrap the same
// underlying decimal representation — so a caller cannot accidentally pass
// a mass where a volume is expected; the type system catches it at compile
// time, and the constructors reject non-positive values and unknown units
// at construction time.
//
// Amounts are stored as github.com/shopspring/decimal values rather than
// float64, and pkg/convert likewise keeps quantities in decimal across
// repeated unit conversions. pkg/dayssupply's consumption arithmetic is
// float64.
package units
