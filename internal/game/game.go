package game

import (
	"fmt"
	"log"
	"time"

	"gravgrab/internal/components"
	"gravgrab/internal/engine"
	"gravgrab/internal/grab"
	"gravgrab/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Physics runs on a fixed step; rendering interpolates between the last two
// steps. 60 Hz matches the tuning defaults.
const fixedDeltaTime = float32(1.0 / 60.0)

// Frames longer than this are clamped so a debugger pause or window drag
// doesn't trigger a catch-up spiral.
const maxFrameTime = float32(0.25)

const configPath = "gravgrab.yaml"

type Game struct {
	Player  *engine.GameObject
	Scene   *engine.Scene
	Physics *physics.World
	Grabber *grab.Grabber
	Tuning  *grab.Tuning

	Paused    bool
	DebugMode bool

	watcher     *grab.TuningWatcher
	accumulator float32
	blend       float32
	propCounter int

	// Debug timing (ms)
	updateMs  float64
	physicsMs float64
	drawMs    float64

	tuningPanel tuningPanel
}

func New() *Game {
	tuning, err := grab.LoadTuning(configPath)
	if err != nil {
		log.Printf("game: %v, using built-in tuning", err)
	}

	g := &Game{
		Scene:   engine.NewScene("arena"),
		Physics: physics.NewWorld(),
		Tuning:  &tuning,
	}

	watcher, err := grab.WatchTuning(configPath)
	if err != nil {
		log.Printf("game: tuning hot reload unavailable: %v", err)
	} else {
		g.watcher = watcher
	}
	return g
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "Gravity Grab")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	// Models need the GL context, so the arena is built after InitWindow
	g.buildArena()
	g.createPlayer()
	g.Scene.Start()
	defer g.unload()

	if g.watcher != nil {
		defer g.watcher.Close()
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) createPlayer() {
	g.Player = engine.NewGameObject("Player")
	g.Player.Transform.Position = rl.Vector3{X: 0, Y: 0, Z: 12}

	fps := components.NewFPSController()
	g.Player.AddComponent(fps)
	g.Player.AddComponent(components.NewCamera())

	collider := components.NewBoxCollider(rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6})
	collider.Offset = rl.Vector3{Y: 0.9}
	g.Player.AddComponent(collider)

	// Kinematic body so the player pushes props around
	rb := components.NewRigidbody()
	rb.IsKinematic = true
	rb.UseGravity = false // FPSController handles gravity
	g.Player.AddComponent(rb)

	g.Grabber = grab.NewGrabber(g.Physics, g.Tuning)
	g.Player.AddComponent(g.Grabber)

	g.Scene.AddGameObject(g.Player)
	g.Physics.AddObject(g.Player)
	g.Player.Start()
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()
	if deltaTime > maxFrameTime {
		deltaTime = maxFrameTime
	}

	if g.watcher != nil {
		if tuning, ok := g.watcher.Poll(); ok {
			*g.Tuning = tuning
			log.Printf("game: tuning reloaded from %s", configPath)
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.tuningPanel.visible = !g.tuningPanel.visible
	}

	if !g.Paused {
		g.handleGrabInput()
		g.Player.Update(deltaTime)
		g.syncPlayer()
		g.Scene.Update(deltaTime)
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0

	physicsStart := time.Now()
	if !g.Paused {
		g.accumulator += deltaTime
		for g.accumulator >= fixedDeltaTime {
			// Anchor and hold forces are queued before the step integrates them
			g.Scene.FixedUpdate(fixedDeltaTime)
			g.Physics.Step(fixedDeltaTime)
			g.accumulator -= fixedDeltaTime
		}
		g.blend = g.accumulator / fixedDeltaTime
	}
	g.physicsMs = float64(time.Since(physicsStart).Microseconds()) / 1000.0
}

// handleGrabInput forwards input edges to the grabber. Never called while
// paused, so the pause menu doubles as the interaction gate.
func (g *Game) handleGrabInput() {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		g.Grabber.PrimaryAction()
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		g.Grabber.SecondaryAction()
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.Grabber.AdjustHoldDistance(wheel)
	}
}

// syncPlayer keeps the kinematic body moving with the controller and clamps
// the player to the floor plane.
func (g *Game) syncPlayer() {
	fps := engine.GetComponent[*components.FPSController](g.Player)
	rb := engine.GetComponent[*components.Rigidbody](g.Player)
	if fps == nil {
		return
	}
	if rb != nil {
		rb.Velocity = fps.Velocity
	}

	if g.Player.Transform.Position.Y <= 0 {
		g.Player.Transform.Position.Y = 0
		fps.Velocity.Y = 0
		fps.Grounded = true
	} else {
		fps.Grounded = false
	}
}

func (g *Game) togglePause() {
	g.Paused = !g.Paused
	if g.Paused {
		// Held objects never survive the menu
		g.Grabber.Deactivate()
		rl.EnableCursor()
	} else {
		rl.DisableCursor()
	}
}

func (g *Game) Draw() {
	cam := engine.GetComponent[*components.Camera](g.Player)
	if cam == nil {
		return
	}
	camera := cam.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 26, 34, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)

	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: 60, Y: 60}, rl.NewColor(52, 56, 64, 255))
	rl.DrawGrid(30, 2)

	for _, obj := range g.Scene.GameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](obj); renderer != nil {
			renderer.Draw(g.blend)
		}
	}

	if start, end, ok := g.Grabber.BeamSegment(); ok {
		rl.DrawCylinderEx(start, end, 0.015, 0.015, 6, rl.NewColor(255, 170, 40, 200))
		rl.DrawSphere(end, 0.06, rl.NewColor(255, 200, 80, 255))
	}

	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	g.drawCrosshair()

	rl.DrawText("WASD move, Space jump, RMB grab/drop, LMB throw/punt, wheel push/pull", 10, 10, 20, rl.DarkGray)
	rl.DrawText("Tab pause, F1 debug, F2 tuning", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	if held := g.Grabber.HeldObject(); held != nil {
		rl.DrawText(fmt.Sprintf("Holding: %s (%.1fm)", held.Name, g.Grabber.HoldDistance()), 10, 90, 20, rl.Orange)
	}

	if g.DebugMode {
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), 10, 120, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Physics: %.2f ms", g.physicsMs), 10, 140, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), 10, 160, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Force:   %.1f N", g.Grabber.LastForce), 10, 185, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Torque:  %.1f Nm", g.Grabber.LastTorque), 10, 205, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Ignored pairs: %d", g.Physics.IgnoredPairCount()), 10, 225, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Bodies: %d", len(g.Physics.Objects)), 10, 245, 16, rl.Yellow)
	}

	if g.Paused {
		w := int32(rl.GetScreenWidth())
		h := int32(rl.GetScreenHeight())
		rl.DrawRectangle(0, 0, w, h, rl.NewColor(0, 0, 0, 120))
		rl.DrawText("PAUSED", w/2-rl.MeasureText("PAUSED", 40)/2, h/2-20, 40, rl.RayWhite)
		rl.DrawText("Tab to resume", w/2-rl.MeasureText("Tab to resume", 20)/2, h/2+30, 20, rl.LightGray)
	}

	g.tuningPanel.draw(g.Tuning)
}

func (g *Game) drawCrosshair() {
	cx := int32(rl.GetScreenWidth()) / 2
	cy := int32(rl.GetScreenHeight()) / 2
	color := rl.NewColor(220, 220, 220, 200)
	if g.Grabber.Holding() {
		color = rl.Orange
	}
	rl.DrawLine(cx-8, cy, cx+8, cy, color)
	rl.DrawLine(cx, cy-8, cx, cy+8, color)
}

func (g *Game) buildArena() {
	// Light crates, easy to carry
	g.spawnCrate(rl.Vector3{X: -4, Y: 0.5, Z: 0}, 1.0, 40, rl.NewColor(200, 140, 80, 255))
	g.spawnCrate(rl.Vector3{X: -2, Y: 0.5, Z: -3}, 1.0, 40, rl.NewColor(200, 140, 80, 255))
	g.spawnCrate(rl.Vector3{X: 3, Y: 0.75, Z: -2}, 1.5, 80, rl.NewColor(170, 110, 60, 255))

	// Over the pickup mass limit, punt-only
	g.spawnCrate(rl.Vector3{X: 6, Y: 1, Z: 2}, 2.0, 200, rl.NewColor(90, 90, 100, 255))

	// A stack to knock over
	for i := 0; i < 4; i++ {
		g.spawnCrate(rl.Vector3{X: 0, Y: 0.4 + float32(i)*0.85, Z: -8}, 0.8, 25, rl.NewColor(120, 160, 200, 255))
	}

	g.spawnBall(rl.Vector3{X: -6, Y: 0.5, Z: -5}, 0.5, 15)
	g.spawnBall(rl.Vector3{X: 5, Y: 0.4, Z: -6}, 0.4, 10)

	// Invisible floor slab under the drawn plane
	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -1}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 60, Y: 2, Z: 60}))
	g.Scene.AddGameObject(floor)
	g.Physics.AddObject(floor)
}

func (g *Game) spawnCrate(pos rl.Vector3, size, mass float32, color rl.Color) {
	g.propCounter++

	crate := engine.NewGameObject(fmt.Sprintf("Crate_%d", g.propCounter))
	crate.Transform.Position = pos
	crate.Tags = append(crate.Tags, "prop")

	mesh := rl.GenMeshCube(size, size, size)
	model := rl.LoadModelFromMesh(mesh)
	crate.AddComponent(components.NewModelRenderer(model, color))

	crate.AddComponent(components.NewBoxCollider(rl.Vector3{X: size, Y: size, Z: size}))

	rb := components.NewRigidbody()
	rb.Mass = mass
	rb.Bounciness = 0.2
	rb.Friction = 0.4
	crate.AddComponent(rb)

	g.Scene.AddGameObject(crate)
	g.Physics.AddObject(crate)
}

func (g *Game) spawnBall(pos rl.Vector3, radius, mass float32) {
	g.propCounter++

	ball := engine.NewGameObject(fmt.Sprintf("Ball_%d", g.propCounter))
	ball.Transform.Position = pos
	ball.Tags = append(ball.Tags, "prop")

	mesh := rl.GenMeshSphere(radius, 16, 16)
	model := rl.LoadModelFromMesh(mesh)
	ball.AddComponent(components.NewModelRenderer(model, rl.NewColor(220, 90, 70, 255)))

	ball.AddComponent(components.NewSphereCollider(radius))

	rb := components.NewRigidbody()
	rb.Mass = mass
	rb.Bounciness = 0.6
	rb.Friction = 0.15
	ball.AddComponent(rb)

	g.Scene.AddGameObject(ball)
	g.Physics.AddObject(ball)
}

func (g *Game) unload() {
	for _, obj := range g.Scene.GameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](obj); renderer != nil {
			renderer.Unload()
		}
	}
}
