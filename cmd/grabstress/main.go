// Headless stress run for the grab controller: scripted pickup/hold/throw
// cycles over growing body counts, reporting tick cost and peak actuation.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"gravgrab/internal/components"
	"gravgrab/internal/engine"
	"gravgrab/internal/grab"
	"gravgrab/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const fixedDeltaTime = float32(1.0 / 60.0)

// fixedLook is a scriptable look provider so the grabber can run without a
// window or mouse.
type fixedLook struct {
	engine.BaseComponent
	Dir       rl.Vector3
	EyeHeight float32
}

func (f *fixedLook) GetLookDirection() (x, y, z float32) {
	d := rl.Vector3Normalize(f.Dir)
	return d.X, d.Y, d.Z
}

func (f *fixedLook) GetEyeHeight() float32 {
	return f.EyeHeight
}

func main() {
	for _, count := range []int{10, 50, 100, 250, 500} {
		runScenario(count)
	}
}

func runScenario(count int) {
	rand.Seed(42)

	scene := engine.NewScene("stress")
	world := physics.NewWorld()

	// Floor
	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -1}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 200, Y: 2, Z: 200}))
	scene.AddGameObject(floor)
	world.AddObject(floor)

	// Crates scattered in a disc ahead of the player
	for i := 0; i < count; i++ {
		crate := engine.NewGameObject(fmt.Sprintf("Crate_%d", i))
		crate.Transform.Position = rl.Vector3{
			X: rand.Float32()*30 - 15,
			Y: 0.5,
			Z: -(2 + rand.Float32()*20),
		}
		crate.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
		rb := components.NewRigidbody()
		rb.Mass = 20 + rand.Float32()*60
		crate.AddComponent(rb)
		scene.AddGameObject(crate)
		world.AddObject(crate)
	}

	// Player with a scriptable look direction
	player := engine.NewGameObject("Player")
	player.Transform.Position = rl.Vector3{Z: 5}
	look := &fixedLook{Dir: rl.Vector3{Z: -1}, EyeHeight: 1.7}
	player.AddComponent(look)
	playerRb := components.NewRigidbody()
	playerRb.IsKinematic = true
	playerRb.UseGravity = false
	player.AddComponent(playerRb)
	player.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6}))

	tuning := grab.DefaultTuning()
	grabber := grab.NewGrabber(world, &tuning)
	player.AddComponent(grabber)
	scene.AddGameObject(player)
	world.AddObject(player)
	scene.Start()

	step := func() time.Duration {
		start := time.Now()
		scene.FixedUpdate(fixedDeltaTime)
		world.Step(fixedDeltaTime)
		return time.Since(start)
	}

	// Settle the pile first
	for i := 0; i < 60; i++ {
		step()
	}

	const cycles = 20
	const holdTicks = 90
	const settleTicks = 30

	var totalTicks int
	var totalTime time.Duration
	var maxForce, maxTorque float32
	pickups := 0
	throws := 0

	for c := 0; c < cycles; c++ {
		// Sweep the aim across the pile between cycles
		angle := float64(c) / float64(cycles) * 1.2
		look.Dir = rl.Vector3{
			X: float32(angle - 0.6),
			Y: -0.15,
			Z: -1,
		}

		grabber.SecondaryAction()
		if !grabber.Holding() {
			continue
		}
		pickups++

		for i := 0; i < holdTicks; i++ {
			totalTime += step()
			totalTicks++
			if grabber.LastForce > maxForce {
				maxForce = grabber.LastForce
			}
			if grabber.LastTorque > maxTorque {
				maxTorque = grabber.LastTorque
			}
		}

		grabber.PrimaryAction()
		throws++

		for i := 0; i < settleTicks; i++ {
			totalTime += step()
			totalTicks++
		}
	}

	if totalTicks == 0 {
		fmt.Printf("%4d bodies: no pickups landed\n", count)
		return
	}

	avgTick := totalTime / time.Duration(totalTicks)
	fmt.Printf("%4d bodies: %2d pickups, %2d throws | %8v/tick | peak force %7.1f N | peak torque %6.1f Nm | %d excluded pairs live\n",
		count, pickups, throws, avgTick.Round(time.Microsecond), maxForce, maxTorque, world.IgnoredPairCount())
}
