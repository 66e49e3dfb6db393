package grab

import (
	"gravgrab/internal/components"
	"gravgrab/internal/engine"
	"gravgrab/internal/physics"
)

// exclusionSet tracks the collider pairs this hold session disabled, so the
// matching release removes exactly those and nothing else. Pairs that were
// already excluded before pickup are not recorded and therefore survive the
// release untouched.
type exclusionSet struct {
	physics PhysicsOps
	pairs   []physics.PairKey
}

// enable marks every holder-collider x held-collider pair non-colliding and
// records the ones this session added.
func (e *exclusionSet) enable(holder, held *engine.GameObject) {
	for _, hc := range components.CollidersUnder(holder) {
		for _, bc := range components.CollidersUnder(held) {
			a, b := hc.ColliderID(), bc.ColliderID()
			if e.physics.PairIgnored(a, b) {
				continue
			}
			e.physics.SetPairIgnored(a, b, true)
			e.pairs = append(e.pairs, physics.MakePairKey(a, b))
		}
	}
}

// disable reverses every exclusion this session added and clears the record.
func (e *exclusionSet) disable() {
	for _, p := range e.pairs {
		e.physics.SetPairIgnored(p.Lo, p.Hi, false)
	}
	e.pairs = nil
}

func (e *exclusionSet) size() int {
	return len(e.pairs)
}
