// Package factory implements the C6 weapon factory: a registry mapping
// weapon kind to weapon/planner constructors and static specification.
//
// The reference implementation describes this as a "process-wide
// singleton"; the design notes flag exactly that pattern as a hazard to
// avoid (it makes every consumer implicitly depend on global mutable
// state and blocks parallel unit testing of the fleet manager against a
// fake factory). This port keeps the registry's behavior — a single
// shared table of constructors, extendable at runtime — but hands callers
// an explicit *Factory value through constructor injection instead of a
// package-level instance.
package factory

import (
	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// WeaponConstructor builds a weapon instance for a given tube number.
type WeaponConstructor func(tubeNumber int, spec weapon.Specification, clock shared.Clock) weapon.Weapon

// PlannerConstructor builds an engagement manager for a given tube number.
type PlannerConstructor func(tubeNumber int, spec weapon.Specification, clock shared.Clock) engagement.Manager

type entry struct {
	weaponCtor  WeaponConstructor
	plannerCtor PlannerConstructor
	spec        weapon.Specification
}

// Factory is the C6 registry. A zero-value Factory has no entries; use
// New to obtain one pre-populated with the four default kinds.
type Factory struct {
	entries map[weapon.Kind]entry
}

// New constructs a Factory with the four default entries: ALM, ASM, AAM,
// MINE, using cfg's per-kind speed/range/delay settings.
func New(cfg Config) *Factory {
	f := &Factory{entries: make(map[weapon.Kind]entry)}

	f.Register(weapon.KindALM,
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) weapon.Weapon {
			return weapon.NewALMWeapon(tubeNumber, spec, clock)
		},
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) engagement.Manager {
			return engagement.NewMissileEngagementManager(tubeNumber, weapon.KindALM, spec.SpeedMPS, clock)
		},
		weapon.Specification{
			Kind:           weapon.KindALM,
			LaunchSteps:    weapon.DefaultSpecification(weapon.KindALM, cfg.DefaultLaunchDelay).LaunchSteps,
			PowerOnDelay:   cfg.DefaultLaunchDelay,
			MaxRangeMeters: cfg.ALMMaxRange,
			SpeedMPS:       cfg.ALMSpeed,
		},
	)

	f.Register(weapon.KindASM,
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) weapon.Weapon {
			return weapon.NewASMWeapon(tubeNumber, spec, clock)
		},
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) engagement.Manager {
			return engagement.NewMissileEngagementManager(tubeNumber, weapon.KindASM, spec.SpeedMPS, clock)
		},
		weapon.Specification{
			Kind:           weapon.KindASM,
			LaunchSteps:    weapon.DefaultSpecification(weapon.KindASM, cfg.DefaultLaunchDelay).LaunchSteps,
			PowerOnDelay:   cfg.DefaultLaunchDelay,
			MaxRangeMeters: cfg.ASMMaxRange,
			SpeedMPS:       cfg.ASMSpeed,
		},
	)

	f.Register(weapon.KindAAM,
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) weapon.Weapon {
			return weapon.NewAAMWeapon(tubeNumber, spec, clock)
		},
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) engagement.Manager {
			return engagement.NewMissileEngagementManager(tubeNumber, weapon.KindAAM, spec.SpeedMPS, clock)
		},
		weapon.Specification{
			Kind:         weapon.KindAAM,
			LaunchSteps:  weapon.DefaultSpecification(weapon.KindAAM, cfg.DefaultLaunchDelay).LaunchSteps,
			PowerOnDelay: cfg.DefaultLaunchDelay,
			SpeedMPS:     cfg.AAMSpeed,
		},
	)

	f.Register(weapon.KindMine,
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) weapon.Weapon {
			return weapon.NewMineWeapon(tubeNumber, spec, clock)
		},
		func(tubeNumber int, spec weapon.Specification, clock shared.Clock) engagement.Manager {
			return engagement.NewMineEngagementManager(tubeNumber, spec.SpeedMPS, clock)
		},
		weapon.Specification{
			Kind:         weapon.KindMine,
			LaunchSteps:  weapon.DefaultSpecification(weapon.KindMine, cfg.DefaultLaunchDelay).LaunchSteps,
			PowerOnDelay: cfg.DefaultLaunchDelay,
			SpeedMPS:     cfg.MineSpeed,
		},
	)

	return f
}

// Config carries the per-kind statics read from §7's Weapon.* keys.
type Config struct {
	DefaultLaunchDelay float64
	MineSpeed          float64
	ALMMaxRange        float64
	ASMMaxRange        float64
	ALMSpeed           float64
	ASMSpeed           float64
	AAMSpeed           float64
}

// Register adds or replaces the entry for kind. Registration may be
// extended at runtime, per spec §4.5.
func (f *Factory) Register(kind weapon.Kind, weaponCtor WeaponConstructor, plannerCtor PlannerConstructor, spec weapon.Specification) {
	f.entries[kind] = entry{weaponCtor: weaponCtor, plannerCtor: plannerCtor, spec: spec}
}

// IsSupported reports whether kind has a registered entry.
func (f *Factory) IsSupported(kind weapon.Kind) bool {
	_, ok := f.entries[kind]
	return ok
}

// GetSpecification returns a copy of kind's static specification.
func (f *Factory) GetSpecification(kind weapon.Kind) (weapon.Specification, error) {
	e, ok := f.entries[kind]
	if !ok {
		return weapon.Specification{}, shared.NewUnsupportedWeaponKindError(string(kind))
	}
	return e.spec.Clone(), nil
}

// CreateWeapon constructs a new weapon instance of kind for tubeNumber.
func (f *Factory) CreateWeapon(kind weapon.Kind, tubeNumber int, clock shared.Clock) (weapon.Weapon, error) {
	e, ok := f.entries[kind]
	if !ok {
		return nil, shared.NewUnsupportedWeaponKindError(string(kind))
	}
	return e.weaponCtor(tubeNumber, e.spec, clock), nil
}

// CreatePlanner constructs a new engagement manager of kind for tubeNumber.
func (f *Factory) CreatePlanner(kind weapon.Kind, tubeNumber int, clock shared.Clock) (engagement.Manager, error) {
	e, ok := f.entries[kind]
	if !ok {
		return nil, shared.NewUnsupportedWeaponKindError(string(kind))
	}
	return e.plannerCtor(tubeNumber, e.spec, clock), nil
}
