// Package display holds the unit-formatting conventions shared by every
// rendering surface: resistance in kΩ from 1000 Ω up, time constants in
// s/ms/µs bands, charge with one decimal.
package display

import "fmt"

// Resistance formats ohms, switching to kΩ at 1000 Ω.
func Resistance(ohms float64) string {
	if ohms >= 1000.0 {
		return fmt.Sprintf("%.1f kΩ", ohms/1000.0)
	}
	return fmt.Sprintf("%.1f Ω", ohms)
}

// Capacitance formats the microfarad input value.
func Capacitance(microfarads float64) string {
	return fmt.Sprintf("%.1f µF", microfarads)
}

// EMF formats volts.
func EMF(volts float64) string {
	return fmt.Sprintf("%.1f V", volts)
}

// TimeConstant formats tau in seconds, picking the largest unit that
// keeps the value at or above one.
func TimeConstant(seconds float64) string {
	switch {
	case seconds >= 1.0:
		return fmt.Sprintf("%.1f s", seconds)
	case seconds >= 0.001:
		return fmt.Sprintf("%.1f ms", seconds*1e3)
	default:
		return fmt.Sprintf("%.1f µs", seconds*1e6)
	}
}

// Charge formats a charge percentage with the single decimal the snap
// thresholds are tuned for.
func Charge(level float64) string {
	return fmt.Sprintf("%.1f%%", level)
}

// Switch formats the switch position as the front-panel label.
func Switch(closed bool) string {
	if closed {
		return "CLOSED"
	}
	return "OPEN"
}
