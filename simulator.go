// Package particles drives batches of particle records through per-tick
// operator pipelines built on the particle kernel.
package particles

import (
	"context"
	"fmt"
	"time"
)

const defaultStep = time.Second / 60

// Simulator steps a set of particle batches with a shared clock.
type Simulator struct {
	cfg     SimulatorConfig
	logger  Logger
	time    *Time
	batches []*Batch
}

func NewSimulator(cfg SimulatorConfig, logger Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Simulator{
		cfg:    cfg,
		logger: logger,
		time:   NewTime(time.Now()),
	}, nil
}

// NewSimulatorFromEnv builds a simulator from PARTICLES_* variables with a
// default logger.
func NewSimulatorFromEnv() (*Simulator, error) {
	cfg, err := LoadSimulatorConfig()
	if err != nil {
		return nil, err
	}
	return NewSimulator(cfg, NewDefaultLogger(cfg.LogPrefix, cfg.Debug))
}

func (s *Simulator) Logger() Logger { return s.logger }

func (s *Simulator) Time() *Time { return s.time }

func (s *Simulator) Batches() []*Batch { return s.batches }

func (s *Simulator) AddBatch(b *Batch) *Simulator {
	for _, existing := range s.batches {
		if existing == b || existing.Id == b.Id {
			panic(fmt.Sprintf("batch %s is already registered", b.Id))
		}
	}
	s.batches = append(s.batches, b)
	loggerForBatch(s.logger, b).Debugf("registered with %d particles", b.Alive())
	return s
}

// RemoveBatch drops b from the simulator. It reports whether b was registered.
func (s *Simulator) RemoveBatch(b *Batch) bool {
	for i, existing := range s.batches {
		if existing == b {
			s.batches = append(s.batches[:i], s.batches[i+1:]...)
			return true
		}
	}
	return false
}

// stepSeconds picks the step actually simulated for a measured frame time. A
// configured FixedStep is used as is; MaxStep only bounds measured steps.
func (s *Simulator) stepSeconds(dt time.Duration) float32 {
	if s.cfg.FixedStep > 0 {
		return float32(s.cfg.FixedStep.Seconds())
	}
	if dt <= 0 {
		dt = defaultStep
	}
	if s.cfg.MaxStep > 0 && dt > s.cfg.MaxStep {
		s.logger.Debugf("step %s clamped to %s", dt, s.cfg.MaxStep)
		dt = s.cfg.MaxStep
	}
	return float32(dt.Seconds())
}

// Step advances every batch by dt and returns the total number of particles
// retired. It stops at the first batch that fails.
func (s *Simulator) Step(ctx context.Context, dt time.Duration) (int, error) {
	seconds := s.stepSeconds(dt)

	expired := 0
	for _, b := range s.batches {
		log := loggerForBatch(s.logger, b)
		n, err := b.Update(ctx, seconds, s.cfg.Workers, s.cfg.ChunkSize)
		if err != nil {
			log.Errorf("update failed: %v", err)
			return expired, fmt.Errorf("step: %w", err)
		}
		if n > 0 {
			log.Debugf("%d expired, %d alive", n, b.Alive())
		}
		expired += n
	}
	return expired, nil
}

// Tick advances the shared clock to now and steps by the elapsed time.
func (s *Simulator) Tick(ctx context.Context, now time.Time) (int, error) {
	s.time.Advance(now)
	return s.Step(ctx, s.time.Dt)
}
