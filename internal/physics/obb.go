package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB is an oriented bounding box: world-space center, half-extents along
// the box's own axes, and those axes rotated into world space.
type OBB struct {
	Center rl.Vector3
	Half   rl.Vector3
	Axes   [3]rl.Vector3
}

// NewOBB builds an OBB from a world center, full size, Euler rotation in
// degrees (X, then Y, then Z - the engine's convention) and a scale.
func NewOBB(center, size, rotationDeg, scale rl.Vector3) OBB {
	rx := rl.MatrixRotateX(rotationDeg.X * rl.Deg2rad)
	ry := rl.MatrixRotateY(rotationDeg.Y * rl.Deg2rad)
	rz := rl.MatrixRotateZ(rotationDeg.Z * rl.Deg2rad)
	m := rl.MatrixMultiply(rl.MatrixMultiply(rx, ry), rz)

	return OBB{
		Center: center,
		Half: rl.Vector3{
			X: absf(size.X*scale.X) / 2,
			Y: absf(size.Y*scale.Y) / 2,
			Z: absf(size.Z*scale.Z) / 2,
		},
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}),
			rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}),
			rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}),
		},
	}
}

// extentOn projects the box's half-size onto a unit axis.
func (o OBB) extentOn(axis rl.Vector3) float32 {
	return o.Half.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.Half.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.Half.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// satAxes yields the 15 separating-axis candidates for the pair: each box's
// face normals plus the cross products of their edges.
func satAxes(a, b OBB) []rl.Vector3 {
	axes := make([]rl.Vector3, 0, 15)
	axes = append(axes, a.Axes[0], a.Axes[1], a.Axes[2])
	axes = append(axes, b.Axes[0], b.Axes[1], b.Axes[2])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes = append(axes, rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
		}
	}
	return axes
}

// MTV returns the minimum translation vector that pushes a out of b, and
// whether the boxes overlap at all.
func (a OBB) MTV(b OBB) (rl.Vector3, bool) {
	t := rl.Vector3Subtract(b.Center, a.Center)
	minPen := float32(math.MaxFloat32)
	var mtv rl.Vector3

	for _, axis := range satAxes(a, b) {
		if rl.Vector3Length(axis) < 0.0001 {
			continue // parallel edges
		}
		axis = rl.Vector3Normalize(axis)

		dist := rl.Vector3DotProduct(t, axis)
		pen := a.extentOn(axis) + b.extentOn(axis) - absf(dist)
		if pen <= 0 {
			return rl.Vector3{}, false // separating axis found
		}
		if pen < minPen {
			minPen = pen
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, pen)
			} else {
				mtv = rl.Vector3Scale(axis, -pen)
			}
		}
	}

	return mtv, true
}

// ClosestPoint returns the point on (or in) the box nearest to p.
func (o OBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	result := o.Center
	half := [3]float32{o.Half.X, o.Half.Y, o.Half.Z}
	for i := 0; i < 3; i++ {
		dist := clampf(rl.Vector3DotProduct(d, o.Axes[i]), -half[i], half[i])
		result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[i], dist))
	}
	return result
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
