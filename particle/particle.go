// Package particle holds the per-particle state record and the deterministic
// operations an emitter applies to it every simulation step.
//
// Nothing here allocates, logs, or fails. Malformed input (a slice that is not
// exactly three components long) is ignored. Operations on distinct particles
// may run concurrently; operations on the same particle may not.
package particle

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Particle is one simulated element. Position is in world units, Rotation in
// degrees and AngularVelocity in degrees per second.
//
// The *Init fields are baselines. They are written only by the Init* and
// MultiplyInit* operations and read back by Reset and the lifetime queries.
type Particle struct {
	Position        mgl32.Vec3
	Velocity        mgl32.Vec3
	Rotation        mgl32.Vec3
	AngularVelocity mgl32.Vec3

	Color     mgl32.Vec3
	ColorInit mgl32.Vec3

	Alpha     float32
	AlphaInit float32

	Size     float32
	SizeInit float32

	// Lifetime counts down and may go negative.
	Lifetime     float32
	LifetimeInit float32
}

// Move translates the particle by (dx, dy, dz).
func (p *Particle) Move(dx, dy, dz float32) {
	p.Position = p.Position.Add(mgl32.Vec3{dx, dy, dz})
}

// MoveTo places the particle at (x, y, z).
func (p *Particle) MoveTo(x, y, z float32) {
	p.Position = mgl32.Vec3{x, y, z}
}

// MoveToNegZ keeps the particle on the non-positive side of the z=0 plane.
func (p *Particle) MoveToNegZ() {
	p.Position[2] = -mgl32.Abs(p.Position[2])
}

// MoveByTime integrates position over t seconds (explicit Euler).
func (p *Particle) MoveByTime(t float32) {
	p.Move(p.Velocity[0]*t, p.Velocity[1]*t, p.Velocity[2]*t)
}

// MoveApplySign forces each coordinate to carry the sign of the matching
// argument while keeping its magnitude. A zero argument leaves that axis as is.
func (p *Particle) MoveApplySign(sx, sy, sz int32) {
	for i, s := range [3]int32{sx, sy, sz} {
		if s != 0 {
			p.Position[i] = mgl32.Abs(p.Position[i]) * float32(s)
		}
	}
}

// RotatePos rotates the position vector about the world origin. Angles are in
// degrees and composed as Rx·Ry·Rz. This orients spawn geometry; it does not
// touch Rotation.
func (p *Particle) RotatePos(rx, ry, rz float32) {
	m := mgl32.HomogRotate3DX(mgl32.DegToRad(rx)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(ry))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rz)))
	p.Position = m.Mul4x1(p.Position.Vec4(1)).Vec3()
}

// InitColor sets the current color and captures it as the baseline.
func (p *Particle) InitColor(r, g, b float32) {
	p.Color = mgl32.Vec3{r, g, b}
	p.ColorInit = p.Color
}

// ChangeColor adds to the current color. The baseline is untouched.
func (p *Particle) ChangeColor(dr, dg, db float32) {
	p.Color = p.Color.Add(mgl32.Vec3{dr, dg, db})
}

// MultiplyColor scales the current color per channel.
func (p *Particle) MultiplyColor(mr, mg, mb float32) {
	p.Color[0] *= mr
	p.Color[1] *= mg
	p.Color[2] *= mb
}

// MultiplyInitColor scales the current color and makes the result the new
// baseline.
func (p *Particle) MultiplyInitColor(mr, mg, mb float32) {
	p.MultiplyColor(mr, mg, mb)
	p.ColorInit = p.Color
}

// InitLifetime sets the remaining lifetime and its baseline to l seconds.
func (p *Particle) InitLifetime(l float32) {
	p.Lifetime = l
	p.LifetimeInit = l
}

// ChangeLifetime adds dl seconds to the remaining lifetime.
func (p *Particle) ChangeLifetime(dl float32) {
	p.Lifetime += dl
}

// MultiplyInitLifetime scales the remaining lifetime. Unlike the other
// MultiplyInit* operations the baseline stays at its spawn value, so
// LifetimePos jumps rather than restarting from zero.
func (p *Particle) MultiplyInitLifetime(m float32) {
	p.Lifetime *= m
}

// InitSize sets the current size and its baseline.
func (p *Particle) InitSize(s float32) {
	p.Size = s
	p.SizeInit = s
}

// MultiplySize scales the current size only.
func (p *Particle) MultiplySize(m float32) {
	p.Size *= m
}

// MultiplyInitSize scales the current size and makes it the new baseline.
func (p *Particle) MultiplyInitSize(m float32) {
	p.Size *= m
	p.SizeInit = p.Size
}

// InitAlpha sets the current alpha and its baseline.
func (p *Particle) InitAlpha(a float32) {
	p.Alpha = a
	p.AlphaInit = a
}

// MultiplyAlpha scales the current alpha only.
func (p *Particle) MultiplyAlpha(m float32) {
	p.Alpha *= m
}

// MultiplyInitAlpha scales the current alpha and makes it the new baseline.
func (p *Particle) MultiplyInitAlpha(m float32) {
	p.Alpha *= m
	p.AlphaInit = p.Alpha
}

// InitVelocity sets the velocity.
func (p *Particle) InitVelocity(x, y, z float32) {
	p.Velocity = mgl32.Vec3{x, y, z}
}

// ChangeVelocity adds to the velocity.
func (p *Particle) ChangeVelocity(dx, dy, dz float32) {
	p.Velocity = p.Velocity.Add(mgl32.Vec3{dx, dy, dz})
}

// MultiplyVelocity scales all three velocity components by m.
func (p *Particle) MultiplyVelocity(m float32) {
	p.Velocity = p.Velocity.Mul(m)
}

// Accelerate adds acc*t to the velocity.
func (p *Particle) Accelerate(acc mgl32.Vec3, t float32) {
	p.ChangeVelocity(acc[0]*t, acc[1]*t, acc[2]*t)
}

// AccelerateSlice is Accelerate for untyped input. It does nothing unless acc
// has exactly three components.
func (p *Particle) AccelerateSlice(acc []float32, t float32) {
	if len(acc) != 3 {
		return
	}
	p.Accelerate(mgl32.Vec3{acc[0], acc[1], acc[2]}, t)
}

// ChangeAngularVelocity adds to the angular velocity, in degrees per second.
func (p *Particle) ChangeAngularVelocity(dx, dy, dz float32) {
	p.AngularVelocity = p.AngularVelocity.Add(mgl32.Vec3{dx, dy, dz})
}

// AngularAccelerate adds acc*t to the angular velocity.
func (p *Particle) AngularAccelerate(acc mgl32.Vec3, t float32) {
	p.ChangeAngularVelocity(acc[0]*t, acc[1]*t, acc[2]*t)
}

// AngularAccelerateSlice does nothing unless acc has exactly three components.
func (p *Particle) AngularAccelerateSlice(acc []float32, t float32) {
	if len(acc) != 3 {
		return
	}
	p.AngularAccelerate(mgl32.Vec3{acc[0], acc[1], acc[2]}, t)
}

// Drag returns -Velocity*strength, ready to be passed to Accelerate.
func (p *Particle) Drag(strength float32) mgl32.Vec3 {
	return p.Velocity.Mul(-strength)
}

// AngularDrag returns -Rotation*strength. It opposes the accumulated
// rotation, not the angular velocity.
func (p *Particle) AngularDrag(strength float32) mgl32.Vec3 {
	return p.Rotation.Mul(-strength)
}

// Rotate adds (dx, dy, dz) degrees to the particle's own rotation.
func (p *Particle) Rotate(dx, dy, dz float32) {
	p.Rotation = p.Rotation.Add(mgl32.Vec3{dx, dy, dz})
}

// ChangeRotation is an alias of Rotate.
func (p *Particle) ChangeRotation(dx, dy, dz float32) {
	p.Rotate(dx, dy, dz)
}

// RotateByTime integrates rotation over t seconds (explicit Euler).
func (p *Particle) RotateByTime(t float32) {
	p.Rotate(p.AngularVelocity[0]*t, p.AngularVelocity[1]*t, p.AngularVelocity[2]*t)
}

// LifetimePos is the normalized progress through the particle's life: 0 at
// spawn, 1 at or past expiry. LifetimeInit must be non-zero.
func (p *Particle) LifetimePos() float32 {
	if p.Lifetime < 0 {
		return 1
	}
	return 1 - p.Lifetime/p.LifetimeInit
}

// LifetimePassed is the elapsed time since spawn.
func (p *Particle) LifetimePassed() float32 {
	return p.LifetimeInit - p.Lifetime
}

// LifetimeOk reports whether the particle is still alive.
func (p *Particle) LifetimeOk() bool {
	return p.Lifetime > 0
}

// Reset restores alpha, size and color to their baselines.
func (p *Particle) Reset() {
	p.Alpha = p.AlphaInit
	p.Size = p.SizeInit
	p.Color = p.ColorInit
}
