package storage

import "rcsim/internal/circuit"

// Recorder is a sim.Observer that accumulates the charge trace of a live
// run for a later Save.
type Recorder struct {
	trace []Sample
}

func NewRecorder() *Recorder {
	return &Recorder{trace: make([]Sample, 0, 256)}
}

func (r *Recorder) OnTick(snap circuit.Snapshot, t float64) {
	r.trace = append(r.trace, Sample{Time: t, Charge: snap.ChargeLevel})
}

func (r *Recorder) Trace() []Sample { return r.trace }

// Charges returns just the charge column, the shape the plotting
// surfaces want.
func (r *Recorder) Charges() []float64 {
	charges := make([]float64, len(r.trace))
	for i, s := range r.trace {
		charges[i] = s.Charge
	}
	return charges
}
