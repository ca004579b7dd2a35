// Package chart renders the collected series as PNG line charts: the classic
// epidemic curves and the behavior curves (aspiration vs. stay-in/go-out).
package chart

import (
	"fmt"
	"io"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/anjalinair012/b11-agent-based-modeling-of-social-dilemma-during-COVID-19/internal/collect"
)

// Series colors, matching the original visualization.
var (
	colorSusceptible = drawing.ColorFromHex("00008B")
	colorInfected    = drawing.ColorFromHex("FF0000")
	colorRecovered   = drawing.ColorFromHex("008000")
	colorAspiration  = drawing.ColorFromHex("9400D3")
	colorStayIn      = drawing.ColorFromHex("FFA500")
	colorGoOut       = drawing.ColorFromHex("E033FF")
)

func steps(series []collect.Snapshot) []float64 {
	xs := make([]float64, len(series))
	for i, s := range series {
		xs[i] = float64(s.Step)
	}
	return xs
}

func line(name string, c drawing.Color, xs, ys []float64) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		Style:   chart.Style{StrokeColor: c, StrokeWidth: 2},
		XValues: xs,
		YValues: ys,
	}
}

func render(title, yAxis string, series []chart.Series, w io.Writer) error {
	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis:  chart.XAxis{Name: "Tick"},
		YAxis:  chart.YAxis{Name: yAxis},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// Epidemic renders the susceptible/infected/recovered counts over time.
func Epidemic(series []collect.Snapshot, w io.Writer) error {
	if len(series) < 2 {
		return fmt.Errorf("need at least 2 ticks to chart, have %d", len(series))
	}
	xs := steps(series)
	sus := make([]float64, len(series))
	inf := make([]float64, len(series))
	rec := make([]float64, len(series))
	for i, s := range series {
		sus[i] = float64(s.Susceptible)
		inf[i] = float64(s.Infected)
		rec[i] = float64(s.Recovered)
	}
	return render("Infection model", "Agents", []chart.Series{
		line("Susceptible", colorSusceptible, xs, sus),
		line("Infected", colorInfected, xs, inf),
		line("Recovered", colorRecovered, xs, rec),
	}, w)
}

// Behavior renders the average aspiration against the average stay-in and
// go-out probabilities over time.
func Behavior(series []collect.Snapshot, w io.Writer) error {
	if len(series) < 2 {
		return fmt.Errorf("need at least 2 ticks to chart, have %d", len(series))
	}
	xs := steps(series)
	asp := make([]float64, len(series))
	stay := make([]float64, len(series))
	out := make([]float64, len(series))
	for i, s := range series {
		asp[i] = s.AvgAspiration
		stay[i] = s.AvgStayInProb
		out[i] = s.AvgGoOutProb
	}
	return render("Social dilemma", "Level", []chart.Series{
		line("Average Aspiration", colorAspiration, xs, asp),
		line("Average Stay In", colorStayIn, xs, stay),
		line("Average Go Out", colorGoOut, xs, out),
	}, w)
}

// SaveEpidemic writes the epidemic chart to a file.
func SaveEpidemic(path string, series []collect.Snapshot) error {
	return saveChart(path, series, Epidemic)
}

// SaveBehavior writes the behavior chart to a file.
func SaveBehavior(path string, series []collect.Snapshot) error {
	return saveChart(path, series, Behavior)
}

func saveChart(path string, series []collect.Snapshot, fn func([]collect.Snapshot, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := fn(series, f); err != nil {
		return err
	}
	return f.Close()
}
