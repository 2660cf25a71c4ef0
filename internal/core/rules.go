package core

import "hospitalcore/pkg/domain"

// NewRulesEngine constructs an empty engine instance.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
// The defaults are advisory: violations are reported and logged but never
// block a commit, because pre-call validation is the caller's job.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewBedCapacityRule())
	engine.Register(NewAppointmentReferenceRule())
	engine.Register(NewAppointmentTransitionRule())
	return engine
}
