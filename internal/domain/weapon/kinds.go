package weapon

import (
	"sync/atomic"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

// ALMWeapon is an anti-land missile: default interlocks, three launch steps.
type ALMWeapon struct{ *Base }

// ASMWeapon is an anti-ship missile: default interlocks, three launch steps.
type ASMWeapon struct{ *Base }

// AAMWeapon is an anti-air missile: default interlocks, three launch steps.
type AAMWeapon struct{ *Base }

// MineWeapon requires its drop-plan to be loaded before it will report
// interlocks satisfied, on top of the default fire-solution-ready flag.
type MineWeapon struct {
	*Base
	planLoaded atomic.Bool
}

func NewALMWeapon(tubeNumber int, spec Specification, clock shared.Clock) *ALMWeapon {
	return &ALMWeapon{Base: NewBase(KindALM, tubeNumber, spec, clock, nil)}
}

func NewASMWeapon(tubeNumber int, spec Specification, clock shared.Clock) *ASMWeapon {
	return &ASMWeapon{Base: NewBase(KindASM, tubeNumber, spec, clock, nil)}
}

func NewAAMWeapon(tubeNumber int, spec Specification, clock shared.Clock) *AAMWeapon {
	return &AAMWeapon{Base: NewBase(KindAAM, tubeNumber, spec, clock, nil)}
}

func NewMineWeapon(tubeNumber int, spec Specification, clock shared.Clock) *MineWeapon {
	m := &MineWeapon{}
	m.Base = NewBase(KindMine, tubeNumber, spec, clock, m)
	return m
}

// checkInterlocks implements interlockChecker for MineWeapon: the drop
// plan must be loaded in addition to the fire solution being ready.
func (m *MineWeapon) checkInterlocks(base *Base) bool {
	return base.IsFireSolutionReady() && m.planLoaded.Load()
}

// SetPlanLoaded is called once the mine's drop plan has been resolved
// from the mine plan library, and cleared on unassign/Reset.
func (m *MineWeapon) SetPlanLoaded(loaded bool) {
	m.planLoaded.Store(loaded)
}

// Reset clears planLoaded along with the embedded Base's own state, so a
// tube cleared and reassigned never inherits a stale loaded-plan flag.
func (m *MineWeapon) Reset() {
	m.planLoaded.Store(false)
	m.Base.Reset()
}

// DefaultSpecification returns the default static specification for a
// weapon kind, using the configured power-on delay and per-kind launch
// step descriptions. Durations below match the reference implementation's
// one-second-per-step launch sequences: three steps for missiles, two for
// mines.
func DefaultSpecification(kind Kind, powerOnDelaySeconds float64) Specification {
	switch kind {
	case KindALM:
		return Specification{
			Kind:         KindALM,
			PowerOnDelay: powerOnDelaySeconds,
			LaunchSteps: []LaunchStep{
				{Description: "ALM Power On Check", Duration: 1 * time.Second},
				{Description: "ALM System Verification", Duration: 1 * time.Second},
				{Description: "ALM Launch Sequence", Duration: 1 * time.Second},
			},
		}
	case KindASM:
		return Specification{
			Kind:         KindASM,
			PowerOnDelay: powerOnDelaySeconds,
			LaunchSteps: []LaunchStep{
				{Description: "ASM Power On Check", Duration: 1 * time.Second},
				{Description: "ASM System Verification", Duration: 1 * time.Second},
				{Description: "ASM Launch Sequence", Duration: 1 * time.Second},
			},
		}
	case KindAAM:
		return Specification{
			Kind:         KindAAM,
			PowerOnDelay: powerOnDelaySeconds,
			LaunchSteps: []LaunchStep{
				{Description: "AAM Power On Check", Duration: 1 * time.Second},
				{Description: "AAM System Verification", Duration: 1 * time.Second},
				{Description: "AAM Launch Sequence", Duration: 1 * time.Second},
			},
		}
	case KindMine:
		return Specification{
			Kind:         KindMine,
			PowerOnDelay: powerOnDelaySeconds,
			LaunchSteps: []LaunchStep{
				{Description: "Mine Power On Check", Duration: 1 * time.Second},
				{Description: "Mine Drop Sequence", Duration: 1 * time.Second},
			},
		}
	default:
		return Specification{Kind: kind, PowerOnDelay: powerOnDelaySeconds}
	}
}
