package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_LoadScenarioDefaults verifies an empty path yields the built-in
// scenario.
func Test_LoadScenarioDefaults(t *testing.T) {
	sc, err := loadScenario("")
	require.NoError(t, err)
	require.Equal(t, defaultScenario(), sc)
}

// Test_LoadScenarioHuJSON verifies scenario files may carry comments and
// trailing commas, and that omitted fields keep their defaults.
func Test_LoadScenarioHuJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "churn.hujson")
	content := `{
	// wide registry, few owners
	"slots": 64,
	"owners": 2, // trailing comma below is fine too
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sc, err := loadScenario(path)
	require.NoError(t, err)
	require.Equal(t, 64, sc.Slots)
	require.Equal(t, 2, sc.Owners)
	require.Equal(t, defaultScenario().Rounds, sc.Rounds, "omitted field keeps default")
}

// Test_LoadScenarioRejectsNonPositive verifies validation of scenario values.
func Test_LoadScenarioRejectsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hujson")
	require.NoError(t, os.WriteFile(path, []byte(`{"slots": 0}`), 0o644))

	_, err := loadScenario(path)
	require.Error(t, err)
}

// Test_RunBenchSmall runs a tiny scenario end to end and checks the
// accounting: every (owner, slot) pair destroys exactly rounds payloads.
func Test_RunBenchSmall(t *testing.T) {
	sc := benchScenario{Slots: 4, Owners: 3, Rounds: 5}

	report, err := runBench(sc)
	require.NoError(t, err)

	require.Equal(t, int64(3*4*5), report.Sets)
	require.Equal(t, int64(3*4*5), report.Destroyed)
	require.Equal(t, 4, report.Allocator.TableLen)
	require.Equal(t, 4, report.Allocator.InUse)
	require.Equal(t, 4, report.Allocator.Grown)
}

// Test_WriteReportAtomic verifies the report lands on disk as valid JSON.
func Test_WriteReportAtomic(t *testing.T) {
	sc := benchScenario{Slots: 1, Owners: 1, Rounds: 1}
	report, err := runBench(sc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, writeReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back benchReport
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, report.Scenario, back.Scenario)
	require.Equal(t, report.Destroyed, back.Destroyed)
}
