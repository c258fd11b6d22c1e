package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
)

// taperAspect accumulates the ordered phase list TaperingDoseBuilder
// assembles into a SignatureInstruction[].
type taperAspect struct {
	phases             []profile.TitrationPhase
	requiresSlowTaper  bool
	validateMonotonic  bool
}

// NewTaperingDoseBuilder builds a multi-phase titration/taper schedule,
// one SignatureInstruction per phase via AddPhase.
func NewTaperingDoseBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindTaperingDose, ctx)
	taper := &taperAspect{validateMonotonic: true}
	if b.medProfile != nil {
		taper.requiresSlowTaper = b.medProfile.RequiresSlowTaper
	}
	b.taper = taper
	return b
}

// AddPhase appends one tapering phase. Only valid on a builder constructed
// with NewTaperingDoseBuilder.
func (b *Builder) AddPhase(doseAmount float64, doseUnit string, t fhirtype.Timing, duration fhirtype.Duration, isMaintenance bool, specialInstructions ...string) *Builder {
	if b.taper == nil {
		b.addError(fmt.Errorf("%s: does not support phases", b.Kind))
		return b
	}
	if duration.Value == 0 && !isMaintenance {
		b.addError(fmt.Errorf("%s: phase %d duration must be non-zero", b.Kind, len(b.taper.phases)))
		return b
	}
	phase := profile.TitrationPhase{
		Timing: t, DoseAmount: doseAmount, DoseUnit: doseUnit, Duration: duration,
		IsMaintenancePhase: isMaintenance, SequenceIndex: len(b.taper.phases),
	}
	if len(specialInstructions) > 0 {
		phase.Description = specialInstructions[0]
		b.additionalInstructions = append(b.additionalInstructions, specialInstructions...)
	}
	b.taper.phases = append(b.taper.phases, phase)
	b.logAudit(fmt.Sprintf("addPhase(%v %s, maintenance=%v)", doseAmount, doseUnit, isMaintenance))
	return b
}

// direction classifies a tapering sequence's dose trend.
type direction int

const (
	directionFlat direction = iota
	directionAscending
	directionDescending
	directionMixed
)

func taperDirection(phases []profile.TitrationPhase) direction {
	if len(phases) < 2 {
		return directionFlat
	}
	sawAscend, sawDescend := false, false
	for i := 1; i < len(phases); i++ {
		switch {
		case phases[i].DoseAmount > phases[i-1].DoseAmount:
			sawAscend = true
		case phases[i].DoseAmount < phases[i-1].DoseAmount:
			sawDescend = true
		}
	}
	switch {
	case sawAscend && sawDescend:
		return directionMixed
	case sawAscend:
		return directionAscending
	case sawDescend:
		return directionDescending
	default:
		return directionFlat
	}
}

// validateMonotonicity appends a warning if the phase sequence isn't
// purely ascending or descending, when the builder was asked to check it.
func (b *Builder) validateMonotonicity() {
	if b.taper == nil || !b.taper.validateMonotonic {
		return
	}
	if taperDirection(b.taper.phases) == directionMixed {
		b.addWarning("tapering schedule is neither monotonically increasing nor decreasing")
	}
}

// GetResult finalizes a TaperingDoseBuilder into one SignatureInstruction
// per phase, sequenced 0..N-1 with a SEQUENTIAL relationship to the
// previous phase.
func (b *Builder) getTaperingResult() ([]profile.SignatureInstruction, error) {
	if err := b.firstError(); err != nil {
		return nil, err
	}
	if len(b.taper.phases) == 0 {
		return nil, fmt.Errorf("%s: no phases were added", b.Kind)
	}

	b.validateMonotonicity()
	if b.taper.requiresSlowTaper && taperDirection(b.taper.phases) != directionDescending {
		b.addWarning("this medication requires a slow taper on discontinuation")
	}

	instructions := make([]profile.SignatureInstruction, 0, len(b.taper.phases))
	var previousID string
	for i, phase := range b.taper.phases {
		id := fmt.Sprintf("phase-%d", i)
		instr := profile.SignatureInstruction{
			Sequence: i,
			Text:     fmt.Sprintf("Phase %d: take %v %s", i, phase.DoseAmount, phase.DoseUnit),
			Timing:   &phase.Timing,
			Phase:    phase.Description,
			DoseAndRate: []fhirtype.DoseAndRate{{
				DoseQuantity: quantityPtr(fhirtype.NewQuantity(phase.DoseAmount, phase.DoseUnit)),
			}},
		}
		if i > 0 {
			instr.Relationship = &fhirtype.Relationship{
				Type:     fhirtype.RelationshipSequential,
				TargetID: previousID,
			}
		}
		previousID = id
		instructions = append(instructions, instr)
	}

	instructions[0].AdditionalInstruction = textsToCodeableConcepts(b.additionalInstructions)
	b.result = instructions
	return instructions, nil
}
