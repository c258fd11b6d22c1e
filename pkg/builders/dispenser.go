package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/convert"
)

// dispenserAspect configures Topiclick/NasalSpray-style counted-device
// bridging.
type dispenserAspect struct {
	info          convert.DispenserInfo
	maxUnitsPerDay float64 // 0 means unbounded (Topiclick has no cap here; sprays do)
}

// applyDispenserLimits rejects a single administered dose above the
// dispenser's cap, which NewNasalSprayBuilder sets from the profile's max
// single dose; doses are not totalled across a day. Topiclick has no such
// cap, so maxUnitsPerDay stays zero for it.
func (b *Builder) applyDispenserLimits(value float64) {
	if b.dispenser == nil || b.dispenser.maxUnitsPerDay <= 0 {
		return
	}
	if value > b.dispenser.maxUnitsPerDay {
		b.addError(fmt.Errorf("%s: dose %v %s exceeds the medication's max of %v per administration",
			b.Kind, value, b.dispenser.info.Unit, b.dispenser.maxUnitsPerDay))
	}
}

// clicksToMl converts a Topiclick click count to mL using the dispenser's
// 4:1 conversion ratio.
func (b *Builder) clicksToMl(clicks float64) (convert.Quantity, error) {
	return convert.Convert(convert.NewQuantity(clicks, b.dispenser.info.Unit), b.dispenser.info.BridgeUnit,
		convert.Context{Dispenser: &b.dispenser.info})
}
