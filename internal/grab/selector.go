package grab

import (
	"gravgrab/internal/components"
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxProbeHits bounds how many intersections one selection pass collects.
const maxProbeHits = 16

// Highlighter is the presentation capability a candidate may expose; the
// selector only ever toggles it.
type Highlighter interface {
	SetHighlighted(bool)
}

// candidate is one scored probe hit. It lives only for the duration of a
// selection pass.
type candidate struct {
	object   *engine.GameObject
	body     *components.Rigidbody
	collider components.Collider
	point    rl.Vector3
	distance float32
	score    float32
}

// selector probes along the view ray, filters and scores candidates, and
// owns the hover-highlight transition.
type selector struct {
	physics     PhysicsOps
	tuning      *Tuning
	highlighted *engine.GameObject
}

// selectBest returns the highest-scoring eligible body along the view ray,
// or ok=false when nothing qualifies. Ties keep the earliest hit: probe
// order follows the world's object list, which is deterministic.
func (s *selector) selectBest(origin, dir rl.Vector3, maxRange float32, exclude *engine.GameObject) (candidate, bool) {
	hits := s.physics.SphereCastAll(origin, dir, s.tuning.ProbeRadius, maxRange, maxProbeHits)

	var best candidate
	found := false
	for _, hit := range hits {
		if hit.GameObject == exclude {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](hit.GameObject)
		if rb == nil || rb.IsKinematic || rb.Mass > s.tuning.MaxPickupMass {
			continue
		}

		c := candidate{
			object:   hit.GameObject,
			body:     rb,
			collider: hit.Collider,
			point:    hit.Point,
			distance: hit.Distance,
			score:    s.score(origin, dir, hit.Point, hit.Distance),
		}
		if !found || c.score > best.score {
			best = c
			found = true
		}
	}
	return best, found
}

// score prefers close hits that sit near the view axis: -distance plus the
// weighted cosine of the angle between the view direction and the hit.
func (s *selector) score(origin, dir, point rl.Vector3, distance float32) float32 {
	toHit := rl.Vector3Subtract(point, origin)
	alignment := float32(1) // hit at the eye itself counts as dead-on
	if rl.Vector3Length(toHit) > 1e-5 {
		alignment = rl.Vector3DotProduct(dir, rl.Vector3Normalize(toHit))
	}
	return -distance + s.tuning.AlignmentWeight*alignment
}

// updateHighlight moves the hover highlight from the previous best candidate
// to the current one. A no-change frame touches nothing; enter and exit only
// fire on actual transitions.
func (s *selector) updateHighlight(best *engine.GameObject) {
	if best == s.highlighted {
		return
	}
	if s.highlighted != nil {
		if h, ok := engine.FindComponent[Highlighter](s.highlighted); ok {
			h.SetHighlighted(false)
		}
	}
	if best != nil {
		if h, ok := engine.FindComponent[Highlighter](best); ok {
			h.SetHighlighted(true)
		}
	}
	s.highlighted = best
}

func (s *selector) clearHighlight() {
	s.updateHighlight(nil)
}
