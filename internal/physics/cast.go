package physics

import (
	"math"

	"gravgrab/internal/components"
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CastHit describes one intersection found by a ray or sphere cast.
type CastHit struct {
	GameObject *engine.GameObject
	Collider   components.Collider
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast checks all collidable objects and returns the closest hit along the
// ray. Boxes are treated as axis-aligned for casts.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (CastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	closest := CastHit{Distance: maxDistance}
	found := false

	for _, obj := range w.allObjects() {
		if hit, ok := castAgainst(obj, origin, direction, 0, maxDistance); ok && hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// SphereCastAll sweeps a sphere of the given radius along the ray out to
// maxDistance and collects up to maxHits intersections, in world list order.
// Geometry is conservatively inflated by the probe radius, which is what a
// volumetric pickup probe wants: near-misses along the view ray still count.
func (w *World) SphereCastAll(origin, direction rl.Vector3, radius, maxDistance float32, maxHits int) []CastHit {
	direction = rl.Vector3Normalize(direction)
	var hits []CastHit

	for _, obj := range w.allObjects() {
		if maxHits > 0 && len(hits) >= maxHits {
			break
		}
		if hit, ok := castAgainst(obj, origin, direction, radius, maxDistance); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

func (w *World) allObjects() []*engine.GameObject {
	all := make([]*engine.GameObject, 0, len(w.Objects)+len(w.Kinematics)+len(w.Statics))
	all = append(all, w.Objects...)
	all = append(all, w.Kinematics...)
	all = append(all, w.Statics...)
	return all
}

// castAgainst intersects the ray (inflated by the probe radius) with the
// object's collider, preferring spheres when an object carries both.
func castAgainst(obj *engine.GameObject, origin, dir rl.Vector3, inflate, maxDist float32) (CastHit, bool) {
	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		if hit, ok := castSphere(origin, dir, sphere.GetCenter(), sphere.Radius+inflate, maxDist); ok {
			hit.GameObject = obj
			hit.Collider = sphere
			return hit, true
		}
		return CastHit{}, false
	}
	if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
		size := box.GetWorldSize()
		grown := rl.Vector3{
			X: absf(size.X) + 2*inflate,
			Y: absf(size.Y) + 2*inflate,
			Z: absf(size.Z) + 2*inflate,
		}
		if hit, ok := castBox(origin, dir, box.GetCenter(), grown, maxDist); ok {
			hit.GameObject = obj
			hit.Collider = box
			return hit, true
		}
	}
	return CastHit{}, false
}

func castSphere(origin, dir, center rl.Vector3, radius, maxDist float32) (CastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := 2.0 * rl.Vector3DotProduct(oc, dir)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return CastHit{}, false
	}

	sq := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sq) / 2
	if t < 0 {
		t = (-b + sq) / 2
	}
	if t < 0 || t > maxDist {
		return CastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))
	return CastHit{Point: point, Normal: normal, Distance: t}, true
}

func castBox(origin, dir, center, size rl.Vector3, maxDist float32) (CastHit, bool) {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	min := rl.Vector3Subtract(center, half)
	max := rl.Vector3Add(center, half)

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	org := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if org[i] < lo[i] || org[i] > hi[i] {
				return CastHit{}, false
			}
			continue
		}
		t1 := (lo[i] - org[i]) / d[i]
		t2 := (hi[i] - org[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmin > tmax || tmax < 0 {
		return CastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDist {
		return CastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))

	// Face normal from whichever slab the entry point sits on
	var normal rl.Vector3
	const eps = 0.001
	switch {
	case absf(point.X-min.X) < eps:
		normal = rl.Vector3{X: -1}
	case absf(point.X-max.X) < eps:
		normal = rl.Vector3{X: 1}
	case absf(point.Y-min.Y) < eps:
		normal = rl.Vector3{Y: -1}
	case absf(point.Y-max.Y) < eps:
		normal = rl.Vector3{Y: 1}
	case absf(point.Z-min.Z) < eps:
		normal = rl.Vector3{Z: -1}
	default:
		normal = rl.Vector3{Z: 1}
	}

	return CastHit{Point: point, Normal: normal, Distance: t}, true
}
