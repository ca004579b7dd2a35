// Package render rasterizes the population grid for animation exports. The
// color coding follows the original visualization: susceptible dark blue,
// recovered green, quarantined orange, infected red, dead black.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/sim"
)

var (
	colorEmpty       = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorSusceptible = color.RGBA{0x00, 0x00, 0x8B, 0xFF}
	colorRecovered   = color.RGBA{0x00, 0x80, 0x00, 0xFF}
	colorQuarantine  = color.RGBA{0xFF, 0xA5, 0x00, 0xFF}
	colorInfected    = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	colorDead        = color.RGBA{0x00, 0x00, 0x00, 0xFF}
)

// agentColor picks the display color for one agent. Quarantine masks the
// plain infected color, matching the original draw order.
func agentColor(ag *sim.Agent) color.RGBA {
	switch {
	case ag.InfectionState() == sim.Clean:
		return colorSusceptible
	case ag.InfectionState() == sim.Recovered:
		return colorRecovered
	case ag.InfectionState() == sim.Dead:
		return colorDead
	case ag.QuarantineState() == sim.Quarantine:
		return colorQuarantine
	default:
		return colorInfected
	}
}

// Frame draws the current grid, one cellSize x cellSize square per cell.
func Frame(m *sim.Model, cellSize int) (image.Image, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size %d must be positive", cellSize)
	}
	g := m.Grid()
	img := image.NewRGBA(image.Rect(0, 0, g.Width()*cellSize, g.Height()*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorEmpty), image.Point{}, draw.Src)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			ag := g.At(sim.Position{X: x, Y: y})
			if ag == nil {
				continue
			}
			cell := image.Rect(x*cellSize, y*cellSize, (x+1)*cellSize, (y+1)*cellSize)
			draw.Draw(img, cell, image.NewUniform(agentColor(ag)), image.Point{}, draw.Src)
		}
	}
	return img, nil
}
