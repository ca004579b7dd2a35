package collect

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{
	"step", "susceptible", "infected", "recovered", "dead",
	"stay_in", "go_out",
	"avg_aspiration", "avg_stay_in_prob", "avg_go_out_prob",
	"lockdown",
}

// WriteCSV writes the collected series as CSV, one row per tick.
func (c *Collector) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range c.series {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.Itoa(s.Susceptible),
			strconv.Itoa(s.Infected),
			strconv.Itoa(s.Recovered),
			strconv.Itoa(s.Dead),
			strconv.Itoa(s.StayIn),
			strconv.Itoa(s.GoOut),
			strconv.FormatFloat(s.AvgAspiration, 'f', 6, 64),
			strconv.FormatFloat(s.AvgStayInProb, 'f', 6, 64),
			strconv.FormatFloat(s.AvgGoOutProb, 'f', 6, 64),
			strconv.FormatBool(s.Lockdown),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to a file.
func (c *Collector) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := c.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}
