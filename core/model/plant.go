package model

import "github.com/shopspring/decimal"

// PowerPlant is a solar plant of the network. Age is expressed in days.
type PowerPlant struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// PowerPlantOutput is the projected state of a plant after T days.
type PowerPlantOutput struct {
	Name      string
	AgeAfterT int
	OutputKWh decimal.Decimal
}

// NetworkOutput is the total output of the network over T days.
type NetworkOutput struct {
	TotalOutputKWh decimal.Decimal
}

// SimulationResult is the outcome of simulating an uploaded network. Network
// entries carry the age of each plant after T days.
type SimulationResult struct {
	ProducedKWh decimal.Decimal
	Network     []PowerPlant
}
