package solar

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/solarsim/core/model"
)

type plantDTO struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type plantOutputDTO struct {
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	OutputInKwh json.Number `json:"outputInKwh"`
}

type networkOutputDTO struct {
	TotalOutputInKwh json.Number `json:"totalOutputInKwh"`
}

type simulationResultDTO struct {
	ProducedKwh json.Number `json:"producedKwh"`
	Network     []plantDTO  `json:"network"`
}

type errorDTO struct {
	Timestamp int64  `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
}

// number renders d as a JSON number without going through float64.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toPlantOutputs(outs []model.PowerPlantOutput) []plantOutputDTO {
	res := make([]plantOutputDTO, len(outs))
	for i, o := range outs {
		res[i] = plantOutputDTO{Name: o.Name, Age: o.AgeAfterT, OutputInKwh: number(o.OutputKWh)}
	}
	return res
}

func toSimulationResult(r model.SimulationResult) simulationResultDTO {
	network := make([]plantDTO, len(r.Network))
	for i, p := range r.Network {
		network[i] = plantDTO{Name: p.Name, Age: p.Age}
	}
	return simulationResultDTO{ProducedKwh: number(r.ProducedKWh), Network: network}
}
