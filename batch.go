package particles

import (
	"context"
	"fmt"

	"github.com/gekko3d/particles/particle"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type BatchId string

// Batch runs a fixed operator pipeline over a caller-owned slice of particles.
// Live particles are kept packed at the front of the slice.
type Batch struct {
	Id        BatchId
	Operators []Operator

	particles []particle.Particle
	alive     int
}

// NewBatch takes ownership of the records in particles for stepping. The
// records must already be initialized; any that are not alive are retired on
// the first Update.
func NewBatch(particles []particle.Particle, ops ...Operator) *Batch {
	return &Batch{
		Id:        BatchId(uuid.NewString()),
		Operators: ops,
		particles: particles,
		alive:     len(particles),
	}
}

func (b *Batch) Alive() int { return b.alive }

// Particles returns the live particles. The slice aliases the batch storage.
func (b *Batch) Particles() []particle.Particle { return b.particles[:b.alive] }

// Swap-remove one particle
func (b *Batch) killAt(i int) {
	last := b.alive - 1
	b.particles[i], b.particles[last] = b.particles[last], b.particles[i]
	b.alive--
}

func (b *Batch) step(from, to int, dt float32) {
	for i := from; i < to; i++ {
		p := &b.particles[i]
		for _, op := range b.Operators {
			op.Apply(p, dt)
		}
		p.ChangeLifetime(-dt)
	}
}

// Update applies every operator to every live particle, ages them by dt
// seconds and retires the ones whose lifetime ran out. Chunks of chunkSize
// particles are processed by up to workers goroutines. It returns how many
// particles were retired.
//
// ctx is checked once before any particle is touched. Once started, an update
// always runs over the whole batch.
func (b *Batch) Update(ctx context.Context, dt float32, workers, chunkSize int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("batch %s: %w", b.Id, err)
	}
	if workers <= 0 {
		workers = 1
	}
	if chunkSize <= 0 {
		chunkSize = b.alive
	}

	if b.alive <= chunkSize || workers == 1 {
		b.step(0, b.alive, dt)
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for from := 0; from < b.alive; from += chunkSize {
			from := from
			to := min(from+chunkSize, b.alive)
			g.Go(func() error {
				b.step(from, to, dt)
				return nil
			})
		}
		_ = g.Wait()
	}

	expired := 0
	i := 0
	for i < b.alive {
		if !b.particles[i].LifetimeOk() {
			b.killAt(i)
			expired++
			continue
		}
		i++
	}
	return expired, nil
}
