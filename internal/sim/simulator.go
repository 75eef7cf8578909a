// Package sim advances the capacitor charge level of a circuit on a
// fixed 50 ms tick using a first-order exponential-approach step.
//
// The stepper is a forward Euler discretization of
// dQ/dt = (Q_target - Q)/tau. With the tick interval well below the time
// constant it tracks the analytic charging and discharging curves
// closely; when tau shrinks toward the tick interval the discrete curve
// diverges from the analytic one. That is a known property of the
// approximation and is left as-is.
package sim

import (
	"context"
	"fmt"
	"time"

	"rcsim/internal/circuit"
)

// TickInterval is the nominal wall-clock cadence the host drives the
// simulator at. Each tick advances simulated time by exactly
// TickSeconds regardless of measured elapsed time, so host timer jitter
// does not change the trajectory.
const (
	TickInterval = 50 * time.Millisecond
	TickSeconds  = 0.05
)

// Snap thresholds. Once the charge crosses one of these it is forced to
// the exact target so the asymptotic curve converges in finitely many
// ticks. The one-decimal display rounding depends on these exact values.
const (
	fullCharge        = 100.0
	emptyCharge       = 0.0
	snapHighThreshold = 99.9
	snapLowThreshold  = 0.1
)

// Observer receives the state after each applied tick.
type Observer interface {
	OnTick(snap circuit.Snapshot, t float64)
}

// Simulator steps a circuit's charge level toward 100% while the switch
// is closed and toward 0% while it is open. It never stops on its own;
// the host drives Tick for the lifetime of the session.
//
// Simulator shares the single-threaded contract of circuit.State.
type Simulator struct {
	state     *circuit.State
	observers []Observer

	started    bool
	lastSwitch bool
	elapsed    float64
	steps      int
}

func New(state *circuit.State) *Simulator {
	return &Simulator{
		state:      state,
		lastSwitch: state.SwitchClosed,
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Started reports whether at least one tick has been applied or a switch
// transition has been observed.
func (s *Simulator) Started() bool { return s.started }

// Elapsed returns the simulated time in seconds, TickSeconds per applied
// tick.
func (s *Simulator) Elapsed() float64 { return s.elapsed }

// Steps returns the number of ticks applied so far.
func (s *Simulator) Steps() int { return s.steps }

// SwitchChanged compares the current switch position against the one
// recorded at the previous observation and reports whether it differs,
// recording the new position. A transition marks the simulator as
// started so an idle host knows to begin its periodic driver; it does
// not reset the charge level, which keeps the curve continuous across
// the toggle.
func (s *Simulator) SwitchChanged() bool {
	if s.state.SwitchClosed == s.lastSwitch {
		return false
	}
	s.lastSwitch = s.state.SwitchClosed
	s.started = true
	return true
}

// Tick applies one fixed-interval step. The time constant is recomputed
// from the live parameters, so edits made between ticks take effect
// immediately. A non-positive time constant is unreachable past
// SetParameters validation and is returned as a fatal
// InternalInvariantError; the host must abort its loop on it.
func (s *Simulator) Tick() error {
	tau := s.state.TimeConstant()
	if tau <= 0 {
		return &circuit.InternalInvariantError{
			Message: fmt.Sprintf("time constant %g is not positive", tau),
		}
	}

	q := s.state.ChargeLevel()
	if s.state.SwitchClosed {
		q += (fullCharge - q) * (TickSeconds / tau)
		if q >= snapHighThreshold {
			q = fullCharge
		}
	} else {
		q -= q * (TickSeconds / tau)
		if q <= snapLowThreshold {
			q = emptyCharge
		}
	}
	s.state.SetChargeLevel(q)

	s.started = true
	s.lastSwitch = s.state.SwitchClosed
	s.elapsed += TickSeconds
	s.steps++

	snap := s.state.Snapshot()
	for _, o := range s.observers {
		o.OnTick(snap, s.elapsed)
	}
	return nil
}

// Run drives the simulator for the given simulated duration, one tick
// per TickSeconds, in strict order. It is the headless counterpart of a
// UI timer: tests and the CLI use it with a plain loop instead of a real
// clock.
func (s *Simulator) Run(ctx context.Context, duration float64) error {
	if duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", duration)
	}
	steps := int(duration / TickSeconds)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}
