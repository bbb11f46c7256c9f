// Package export renders simulation results for the command line.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/solarsim/core/model"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or csv)", s)
	}
}

type plantOutput struct {
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	OutputInKwh json.Number `json:"outputInKwh"`
}

type plant struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type simulation struct {
	ProducedKwh json.Number `json:"producedKwh"`
	Network     []plant     `json:"network"`
}

// WriteState writes the projected network state to w.
func WriteState(w io.Writer, f Format, outs []model.PowerPlantOutput) error {
	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"name", "age", "output_kwh"}); err != nil {
			return err
		}
		for _, o := range outs {
			if err := cw.Write([]string{o.Name, strconv.Itoa(o.AgeAfterT), o.OutputKWh.String()}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		res := make([]plantOutput, len(outs))
		for i, o := range outs {
			res[i] = plantOutput{Name: o.Name, Age: o.AgeAfterT, OutputInKwh: json.Number(o.OutputKWh.String())}
		}
		return writeJSON(w, res)
	}
}

// WriteSimulation writes a simulation result to w. The CSV form lists the
// network followed by a produced_kwh row.
func WriteSimulation(w io.Writer, f Format, r model.SimulationResult) error {
	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"name", "age"}); err != nil {
			return err
		}
		for _, p := range r.Network {
			if err := cw.Write([]string{p.Name, strconv.Itoa(p.Age)}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"produced_kwh", r.ProducedKWh.String()}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	default:
		network := make([]plant, len(r.Network))
		for i, p := range r.Network {
			network[i] = plant{Name: p.Name, Age: p.Age}
		}
		return writeJSON(w, simulation{ProducedKwh: json.Number(r.ProducedKWh.String()), Network: network})
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
