package particles

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/gekko3d/particles/particle"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func spawn(n int, lifetime float32) []particle.Particle {
	ps := make([]particle.Particle, n)
	for i := range ps {
		p := &ps[i]
		p.InitLifetime(lifetime)
		p.InitVelocity(float32(i), 1, -float32(i))
		p.InitAlpha(1)
		p.InitSize(1)
		p.InitColor(1, 1, 1)
	}
	return ps
}

func TestNewBatch(t *testing.T) {
	a := NewBatch(spawn(3, 1))
	b := NewBatch(nil)

	assert.Equal(t, 3, a.Alive())
	assert.Len(t, a.Particles(), 3)
	assert.Equal(t, 0, b.Alive())
	assert.NotEmpty(t, a.Id)
	assert.NotEqual(t, a.Id, b.Id)
}

func TestBatch_UpdateRetiresExpired(t *testing.T) {
	ps := []particle.Particle{{}, {}, {}}
	ps[0].InitLifetime(0.05)
	ps[1].InitLifetime(1)
	ps[2].InitLifetime(2)

	b := NewBatch(ps, Movement{})
	expired, err := b.Update(context.Background(), 0.1, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, expired)
	require.Equal(t, 2, b.Alive())

	var lifetimes []float64
	for _, p := range b.Particles() {
		assert.True(t, p.LifetimeOk())
		lifetimes = append(lifetimes, float64(p.Lifetime))
	}
	sort.Float64s(lifetimes)
	assert.InDeltaSlice(t, []float64{0.9, 1.9}, lifetimes, 1e-6)
}

func TestBatch_UpdateRetiresDeadOnArrival(t *testing.T) {
	ps := spawn(4, 1)
	ps[1].Lifetime = 0
	ps[3].Lifetime = -2

	b := NewBatch(ps)
	expired, err := b.Update(context.Background(), 0.5, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, 2, b.Alive())

	expired, err = b.Update(context.Background(), 0.5, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, 0, b.Alive())
	assert.Empty(t, b.Particles())
}

func TestBatch_ParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	ops := []Operator{
		Movement{Gravity: mgl32.Vec3{0, -9.8, 0}, Drag: 0.3},
		AngularMovement{Force: mgl32.Vec3{0, 0, 45}},
		AlphaFade{FadeInTime: 0.1, FadeOutTime: 0.5},
		SizeChange{EndTime: 1, StartValue: 1, EndValue: 0.25},
	}

	seq := NewBatch(spawn(1000, 2), ops...)
	par := NewBatch(spawn(1000, 2), ops...)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := seq.Update(ctx, 1.0/60, 1, 0)
		require.NoError(t, err)
		_, err = par.Update(ctx, 1.0/60, 4, 16)
		require.NoError(t, err)
	}

	require.Equal(t, seq.Alive(), par.Alive())
	if diff := cmp.Diff(seq.Particles(), par.Particles()); diff != "" {
		t.Errorf("parallel update diverged (-seq +par):\n%s", diff)
	}
}

func TestBatch_UpdateCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ps := spawn(64, 1)
	before := append([]particle.Particle(nil), ps...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		b := NewBatch(ps, Movement{})
		_, err := b.Update(ctx, 0.1, workers, 8)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 64, b.Alive())
	}
	assert.Equal(t, before, ps)
}

func TestBatch_UpdateCanceledMidwayCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	stop := OperatorFunc(func(p *particle.Particle, dt float32) {
		once.Do(cancel)
	})

	b := NewBatch(spawn(8, 1), stop, Movement{})
	expired, err := b.Update(ctx, 0.1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	require.Equal(t, 8, b.Alive())
	for i, p := range b.Particles() {
		assert.InDelta(t, 0.9, p.Lifetime, 1e-6, "particle %d was not aged", i)
	}

	_, err = b.Update(ctx, 0.1, 2, 1)
	require.ErrorIs(t, err, context.Canceled)
	for _, p := range b.Particles() {
		assert.InDelta(t, 0.9, p.Lifetime, 1e-6)
	}
}
