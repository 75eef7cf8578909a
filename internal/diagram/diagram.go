// Package diagram renders the two-loop RC schematic as text: EMF on the
// left leg, resistor on the top wire, capacitor on the right leg, switch
// on the bottom wire. The renderer pulls a read-only snapshot and owns
// no state.
package diagram

import (
	"fmt"

	"rcsim/internal/circuit"
	"rcsim/internal/display"
)

const (
	// MinWidth and MinHeight keep the component symbols from
	// overlapping; smaller requests are clamped.
	MinWidth  = 48
	MinHeight = 14

	chargeBarWidth = 20
)

// Render draws the schematic for the given snapshot into a width x
// height character area. The bottom-left return wire to the EMF is only
// drawn while the switch is closed, so the charging loop is visibly
// broken while the circuit discharges.
func Render(snap circuit.Snapshot, width, height int) string {
	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}

	c := NewCanvas(width, height)

	leftX := 3
	rightX := width - 16
	topY := 1
	bottomY := height - 4
	centerY := (topY + bottomY) / 2
	midX := (leftX + rightX) / 2

	drawTopWire(c, leftX, rightX, topY)
	drawResistor(c, midX, topY, snap.Resistance)
	drawEMF(c, leftX, topY, centerY, snap.EMF)
	drawCapacitor(c, rightX, topY, centerY, snap)
	drawBottomWire(c, leftX, rightX, bottomY, centerY, snap.SwitchClosed)

	drawStatus(c, leftX, bottomY+2, snap)
	drawChargeBar(c, leftX, height-1, snap.ChargeLevel)

	return c.String()
}

func drawTopWire(c *Canvas, leftX, rightX, topY int) {
	c.Set(leftX, topY, '┌')
	c.HLine(leftX+1, rightX-1, topY, '─')
	c.Set(rightX, topY, '┐')
}

func drawResistor(c *Canvas, midX, topY int, ohms float64) {
	c.Set(midX-5, topY, '[')
	c.HLine(midX-4, midX+4, topY, '▒')
	c.Set(midX+5, topY, ']')
	label := "R " + display.Resistance(ohms)
	c.Text(midX-len([]rune(label))/2, topY-1, label)
}

func drawEMF(c *Canvas, leftX, topY, centerY int, volts float64) {
	c.VLine(leftX, topY+1, centerY-2, '│')
	// Long and short plates with the gap between them.
	c.HLine(leftX-2, leftX+2, centerY-1, '─')
	c.HLine(leftX-1, leftX+1, centerY+1, '─')
	c.Set(leftX+4, centerY-1, '+')
	c.Set(leftX+4, centerY+1, '-')
	c.Text(leftX+6, centerY, "EMF "+display.EMF(volts))
}

func drawCapacitor(c *Canvas, rightX, topY, centerY int, snap circuit.Snapshot) {
	c.VLine(rightX, topY+1, centerY-2, '│')
	c.HLine(rightX-2, rightX+2, centerY-1, '─')
	c.HLine(rightX-2, rightX+2, centerY+1, '─')
	c.Text(rightX+4, centerY-1, "C "+display.Capacitance(snap.Capacitance))
	c.Text(rightX+4, centerY+1, display.Charge(snap.ChargeLevel))
}

func drawBottomWire(c *Canvas, leftX, rightX, bottomY, centerY int, closed bool) {
	// Switch contacts sit near the left end of the bottom wire.
	sx1 := leftX + 6
	sx2 := leftX + 12

	// Right leg down from the capacitor and along the bottom to the
	// right contact. Active in both loops.
	c.VLine(rightX, centerY+2, bottomY-1, '│')
	c.Set(rightX, bottomY, '┘')
	c.HLine(sx2+1, rightX-1, bottomY, '─')
	c.Set(sx1, bottomY, 'o')
	c.Set(sx2, bottomY, 'o')

	// EMF bottom lead.
	c.VLine(leftX, centerY+2, bottomY-1, '│')
	c.Set(leftX, bottomY, '└')

	if closed {
		c.HLine(sx1+1, sx2-1, bottomY, '─')
		c.HLine(leftX+1, sx1-1, bottomY, '─')
		return
	}

	// Open: arm raised off the left contact, and a gap in the return
	// wire to the EMF.
	c.Set(sx1+2, bottomY-1, '/')
	c.Set(sx1+3, bottomY-2, '/')
	c.HLine(leftX+1, leftX+2, bottomY, '─')
	c.HLine(sx1-2, sx1-1, bottomY, '─')
}

func drawStatus(c *Canvas, x, y int, snap circuit.Snapshot) {
	mode := "discharging"
	if snap.SwitchClosed {
		mode = "charging"
	}
	c.Text(x, y, fmt.Sprintf("switch %s  %s  τ = %s",
		display.Switch(snap.SwitchClosed), mode, display.TimeConstant(snap.TimeConstant)))
}

func drawChargeBar(c *Canvas, x, y int, level float64) {
	filled := int(level/100.0*chargeBarWidth + 0.5)
	if filled > chargeBarWidth {
		filled = chargeBarWidth
	}
	c.Text(x, y, "charge ")
	for i := 0; i < chargeBarWidth; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		c.Set(x+7+i, y, r)
	}
	c.Text(x+7+chargeBarWidth+1, y, display.Charge(level))
}
