package particles

import (
	"github.com/gekko3d/particles/particle"
	"github.com/go-gl/mathgl/mgl32"
)

// Operator is one per-tick update step. Apply must only touch p, so a single
// operator can run across many particles at once.
type Operator interface {
	Apply(p *particle.Particle, dt float32)
}

type OperatorFunc func(p *particle.Particle, dt float32)

func (f OperatorFunc) Apply(p *particle.Particle, dt float32) { f(p, dt) }

// Movement applies linear drag and a constant acceleration, then integrates
// position.
type Movement struct {
	Gravity mgl32.Vec3
	Drag    float32
}

func (m Movement) Apply(p *particle.Particle, dt float32) {
	if m.Drag > 0 {
		p.Accelerate(p.Drag(m.Drag), dt)
	}
	p.Accelerate(m.Gravity, dt)
	p.MoveByTime(dt)
}

// AngularMovement is the rotational counterpart of Movement. Drag opposes the
// accumulated rotation.
type AngularMovement struct {
	Force mgl32.Vec3
	Drag  float32
}

func (m AngularMovement) Apply(p *particle.Particle, dt float32) {
	if m.Drag > 0 {
		p.AngularAccelerate(p.AngularDrag(m.Drag), dt)
	}
	p.AngularAccelerate(m.Force, dt)
	p.RotateByTime(dt)
}

// AlphaFade ramps alpha up over the first FadeInTime and down over the last
// FadeOutTime of a particle's life. Both are fractions of the lifetime.
type AlphaFade struct {
	FadeInTime  float32
	FadeOutTime float32
}

func (f AlphaFade) Apply(p *particle.Particle, dt float32) {
	pos := p.LifetimePos()
	fade := float32(1)
	if f.FadeInTime > 0 && pos < f.FadeInTime {
		fade = pos / f.FadeInTime
	}
	if f.FadeOutTime > 0 && pos > 1-f.FadeOutTime {
		fade = min(fade, (1-pos)/f.FadeOutTime)
	}
	p.Alpha = p.AlphaInit
	p.MultiplyAlpha(fade)
}

// window maps the lifetime position into [0,1] across [start,end].
func window(pos, start, end float32) float32 {
	if end <= start {
		if pos < start {
			return 0
		}
		return 1
	}
	return mgl32.Clamp((pos-start)/(end-start), 0, 1)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// SizeChange scales the spawn size from StartValue to EndValue between
// StartTime and EndTime.
type SizeChange struct {
	StartTime  float32
	EndTime    float32
	StartValue float32
	EndValue   float32
}

func (c SizeChange) Apply(p *particle.Particle, dt float32) {
	t := window(p.LifetimePos(), c.StartTime, c.EndTime)
	p.Size = p.SizeInit
	p.MultiplySize(lerp(c.StartValue, c.EndValue, t))
}

// ColorChange tints the spawn color from StartValue to EndValue between
// StartTime and EndTime.
type ColorChange struct {
	StartTime  float32
	EndTime    float32
	StartValue mgl32.Vec3
	EndValue   mgl32.Vec3
}

func (c ColorChange) Apply(p *particle.Particle, dt float32) {
	t := window(p.LifetimePos(), c.StartTime, c.EndTime)
	p.Color = p.ColorInit
	p.MultiplyColor(
		lerp(c.StartValue[0], c.EndValue[0], t),
		lerp(c.StartValue[1], c.EndValue[1], t),
		lerp(c.StartValue[2], c.EndValue[2], t),
	)
}
