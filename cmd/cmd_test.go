package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestNetworkSimulate(t *testing.T) {
	plants := writeFile(t, t.TempDir(), "plants.json", `[{"name":"X","age":60}]`)

	out, err := executeCommand(t, "network", "simulate", "-f", plants, "-t", "2", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"producedKwh":54.7487333459,"network":[{"name":"X","age":61}]}`, out)

	out, err = executeCommand(t, "network", "simulate", "-f", plants, "-t", "2", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "name,age\nX,61\nproduced_kwh,54.7487333459\n", out)
}

func TestNetworkSimulateErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{`)

	_, err := executeCommand(t, "network", "simulate", "-f", bad, "-t", "2", "--format", "json")
	assert.EqualError(t, err, "Invalid Json file format")

	good := writeFile(t, dir, "good.json", `[]`)
	_, err = executeCommand(t, "network", "simulate", "-f", good, "-t", "0", "--format", "json")
	assert.EqualError(t, err, "Invalid input value")

	_, err = executeCommand(t, "network", "simulate", "-f", good, "-t", "1", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestNetworkLoadAndState(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", `store:
  type: sqlite
  conf:
    dsn: "file:`+filepath.Join(dir, "plants.db")+`"
logging:
  level: error
  access_log: false
`)
	plants := writeFile(t, dir, "plants.json", `[{"name":"A","age":59},{"name":"B","age":6}]`)

	out, err := executeCommand(t, "-c", cfg, "network", "load", "-f", plants)
	require.NoError(t, err)
	assert.Equal(t, "loaded 2 plants into sqlite store\n", out)

	out, err = executeCommand(t, "-c", cfg, "network", "state", "-t", "1", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "name,age,output_kwh\nA,59,0\nB,6,0\n", out)
}

func TestNetworkLoadRejectsInvalidPlants(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.json", `{"logging":{"level":"error"}}`)
	plants := writeFile(t, dir, "plants.json", `[{"name":"A","age":-1}]`)

	_, err := executeCommand(t, "-c", cfg, "network", "load", "-f", plants)
	assert.EqualError(t, err, "Power plant age cannot be negative")
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := executeCommand(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "network", "state", "-t", "1", "--format", "json")
	assert.ErrorContains(t, err, "load config")
}

func TestCurve(t *testing.T) {
	out, err := executeCommand(t, "curve", "--age", "61")
	require.NoError(t, err)
	assert.Equal(t, "age=61 daily_kwh=19.98328767123 cumulative_kwh=19.98328767123\n", out)

	_, err = executeCommand(t, "curve", "--age", "-1")
	assert.Error(t, err)
}
