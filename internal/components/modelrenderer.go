package components

import (
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelRenderer draws a raylib model at the object's transform. It also
// carries the highlight toggle the targeting pass flips on hover candidates.
type ModelRenderer struct {
	engine.BaseComponent
	Model       rl.Model
	Color       rl.Color
	highlighted bool
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
	}
}

// SetHighlighted toggles the hover highlight.
func (m *ModelRenderer) SetHighlighted(on bool) {
	m.highlighted = on
}

func (m *ModelRenderer) Highlighted() bool {
	return m.highlighted
}

// Draw renders the model. blend is the fraction of the current physics tick
// already elapsed; bodies with InterpolateSmooth are drawn at a pose lerped
// between the previous and current tick so they never visibly teleport.
func (m *ModelRenderer) Draw(blend float32) {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.Transform.Position
	if rb := engine.GetComponent[*Rigidbody](g); rb != nil && rb.Interpolation == InterpolateSmooth {
		pos = rl.Vector3Lerp(rb.PrevPosition(), pos, clamp01(blend))
	}

	// Build scale matrix
	scale := g.Transform.Scale
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	rotMatrix := g.Transform.RotationMatrix()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// Combine: scale -> rotate -> translate
	m.Model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)

	if m.highlighted {
		rl.DrawModelWires(m.Model, rl.Vector3Zero(), 1.02, rl.Yellow)
	}
}

func (m *ModelRenderer) Unload() {
	rl.UnloadModel(m.Model)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
