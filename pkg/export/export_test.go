package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solarsim/core/model"
)

var outs = []model.PowerPlantOutput{
	{Name: "A", AgeAfterT: 61, OutputKWh: decimal.RequireFromString("54.7487333459")},
	{Name: "B, north", AgeAfterT: 7, OutputKWh: decimal.Zero},
}

func TestWriteStateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteState(&buf, FormatJSON, outs))
	assert.JSONEq(t, `[{"name":"A","age":61,"outputInKwh":54.7487333459},{"name":"B, north","age":7,"outputInKwh":0}]`, buf.String())
}

func TestWriteStateCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteState(&buf, FormatCSV, outs))
	assert.Equal(t, "name,age,output_kwh\nA,61,54.7487333459\n\"B, north\",7,0\n", buf.String())
}

func TestWriteSimulation(t *testing.T) {
	res := model.SimulationResult{
		ProducedKWh: decimal.RequireFromString("54.7487333459"),
		Network:     []model.PowerPlant{{Name: "X", Age: 61}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSimulation(&buf, FormatJSON, res))
	assert.JSONEq(t, `{"producedKwh":54.7487333459,"network":[{"name":"X","age":61}]}`, buf.String())

	buf.Reset()
	require.NoError(t, WriteSimulation(&buf, FormatCSV, res))
	assert.Equal(t, "name,age\nX,61\nproduced_kwh,54.7487333459\n", buf.String())
}

func TestWriteSimulationEmptyNetwork(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSimulation(&buf, FormatJSON, model.SimulationResult{}))
	assert.JSONEq(t, `{"producedKwh":0,"network":[]}`, buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}
