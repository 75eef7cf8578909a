package circuit

// Default parameter values applied at startup.
const (
	DefaultEMF         = 10.0   // Volts
	DefaultResistance  = 1000.0 // Ohms
	DefaultCapacitance = 100.0  // microfarads
)

// microfaradsToFarads converts the capacitance unit used at the input
// boundary to the SI unit used in the time-constant formula.
const microfaradsToFarads = 1e-6

// State is the canonical holder of circuit parameters and the simulated
// capacitor charge. Parameters are replaced wholesale by SetParameters;
// the charge level is mutated only by the simulator and survives
// parameter edits.
//
// State is not safe for concurrent use. A multi-threaded host must
// serialize all access with a single guard.
type State struct {
	EMF          float64 // Volts
	Resistance   float64 // Ohms
	Capacitance  float64 // microfarads
	SwitchClosed bool

	chargeLevel float64 // percent of full charge, always in [0, 100]
}

// Snapshot is a read-only copy of the circuit state, pulled by renderers
// on each redraw.
type Snapshot struct {
	EMF          float64
	Resistance   float64
	Capacitance  float64
	SwitchClosed bool
	ChargeLevel  float64
	TimeConstant float64
}

// New returns a circuit with default parameters, the switch open and the
// capacitor empty.
func New() *State {
	return &State{
		EMF:         DefaultEMF,
		Resistance:  DefaultResistance,
		Capacitance: DefaultCapacitance,
	}
}

// SetParameters replaces all four input parameters at once. On error the
// prior state is left fully intact; no partial update is ever observable.
func (s *State) SetParameters(emf, resistance, capacitance float64, switchClosed bool) error {
	if err := Validate(emf, resistance, capacitance); err != nil {
		return err
	}
	s.EMF = emf
	s.Resistance = resistance
	s.Capacitance = capacitance
	s.SwitchClosed = switchClosed
	return nil
}

// Validate checks the parameter invariants enforced at the set boundary:
// resistance and capacitance strictly positive, emf non-negative. Values
// beyond the advisory UI ranges are accepted here; clamping to those
// ranges belongs to the input controls.
func Validate(emf, resistance, capacitance float64) error {
	if resistance <= 0 {
		return &InvalidParameterError{Field: "resistance", Value: resistance, Reason: "must be > 0"}
	}
	if capacitance <= 0 {
		return &InvalidParameterError{Field: "capacitance", Value: capacitance, Reason: "must be > 0"}
	}
	if emf < 0 {
		return &InvalidParameterError{Field: "emf", Value: emf, Reason: "must be >= 0"}
	}
	return nil
}

// TimeConstant returns tau = R * C in seconds, computed from the live
// parameters on every call.
func (s *State) TimeConstant() float64 {
	return s.Resistance * s.Capacitance * microfaradsToFarads
}

// ChargeLevel returns the capacitor charge as a percentage in [0, 100].
func (s *State) ChargeLevel() float64 {
	return s.chargeLevel
}

// SetChargeLevel stores the charge percentage, clamped to [0, 100].
// Only the simulator calls this.
func (s *State) SetChargeLevel(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	s.chargeLevel = level
}

// Snapshot copies the current state for a renderer or recorder.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		EMF:          s.EMF,
		Resistance:   s.Resistance,
		Capacitance:  s.Capacitance,
		SwitchClosed: s.SwitchClosed,
		ChargeLevel:  s.chargeLevel,
		TimeConstant: s.TimeConstant(),
	}
}
