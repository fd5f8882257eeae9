package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"

	"github.com/slotkit/slotkit/pkg/attach"
	"github.com/slotkit/slotkit/slot"
)

var (
	benchScenarioPath string
	benchOutPath      string
	benchSlots        int
	benchOwners       int
	benchRounds       int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVar(&benchScenarioPath, "scenario", "", "HuJSON scenario file")
	cmd.Flags().StringVar(&benchOutPath, "out", "", "Write the JSON report to this file (atomically)")
	cmd.Flags().IntVar(&benchSlots, "slots", 0, "Distinct slot IDs to allocate (overrides scenario)")
	cmd.Flags().IntVar(&benchOwners, "owners", 0, "Concurrent owner stores (overrides scenario)")
	cmd.Flags().IntVar(&benchRounds, "rounds", 0, "Attach rounds per owner (overrides scenario)")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Benchmark slot churn across concurrent owners",
		Long: `The bench command allocates a set of slot IDs from one shared registry
and drives concurrent owner stores through attach/replace/teardown rounds
against them, then reports timing and allocator statistics.

The scenario file is HuJSON (comments and trailing commas allowed):

  {
    "slots": 16,   // distinct slot IDs
    "owners": 8,   // concurrent owner stores
    "rounds": 1000 // attach rounds per owner
  }

Example:
  slotctl bench
  slotctl bench --scenario churn.hujson --json
  slotctl bench --owners 32 --out report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(benchScenarioPath)
			if err != nil {
				return err
			}
			// Flag overrides win over the scenario file.
			if benchSlots > 0 {
				sc.Slots = benchSlots
			}
			if benchOwners > 0 {
				sc.Owners = benchOwners
			}
			if benchRounds > 0 {
				sc.Rounds = benchRounds
			}

			report, err := runBench(sc)
			if err != nil {
				return err
			}

			if benchOutPath != "" {
				if err := writeReport(benchOutPath, report); err != nil {
					return err
				}
				printVerbose("report written to %s\n", benchOutPath)
			}

			if jsonOut {
				return printJSON(report)
			}
			printReport(report)
			return nil
		},
	}
}

// benchScenario is the workload shape for the bench command.
type benchScenario struct {
	Slots  int `json:"slots"`
	Owners int `json:"owners"`
	Rounds int `json:"rounds"`
}

func defaultScenario() benchScenario {
	return benchScenario{
		Slots:  16,
		Owners: 8,
		Rounds: 1000,
	}
}

// loadScenario reads a HuJSON scenario file over the defaults. An empty path
// returns the defaults unchanged.
func loadScenario(path string) (benchScenario, error) {
	sc := defaultScenario()
	if path == "" {
		return sc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return benchScenario{}, fmt.Errorf("read scenario: %w", err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return benchScenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := json.Unmarshal(standardized, &sc); err != nil {
		return benchScenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Slots <= 0 || sc.Owners <= 0 || sc.Rounds <= 0 {
		return benchScenario{}, fmt.Errorf("scenario %s: slots, owners and rounds must all be positive", path)
	}
	return sc, nil
}

// benchReport is what bench prints, and writes with --out.
type benchReport struct {
	Scenario   benchScenario       `json:"scenario"`
	ElapsedMS  float64             `json:"elapsed_ms"`
	Sets       int64               `json:"sets"`
	SetsPerSec float64             `json:"sets_per_sec"`
	Destroyed  int64               `json:"payloads_destroyed"`
	Allocator  slot.AllocatorStats `json:"allocator"`
}

// runBench allocates sc.Slots IDs from one registry and lets sc.Owners
// stores churn payloads under them concurrently. Every owner tears its store
// down at the end, so each (owner, slot) pair destroys exactly sc.Rounds
// payloads: rounds-1 replacements plus one at Close.
func runBench(sc benchScenario) (benchReport, error) {
	reg := slot.New()

	ids := make([]int, sc.Slots)
	for i := range ids {
		id, err := reg.Alloc()
		if err != nil {
			return benchReport{}, fmt.Errorf("alloc slot: %w", err)
		}
		ids[i] = id
	}

	destroyedPer := make([]int64, sc.Owners)
	var wg sync.WaitGroup
	start := time.Now()

	for o := 0; o < sc.Owners; o++ {
		o := o
		wg.Add(1)
		go func() {
			defer wg.Done()

			store := attach.NewStore(reg)
			destroy := func(any) { destroyedPer[o]++ }

			for r := 0; r < sc.Rounds; r++ {
				for _, id := range ids {
					_ = store.Set(id, r, destroy)
				}
			}
			for _, id := range ids {
				_ = store.Get(id)
			}
			store.Close()
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	stats := reg.Stats()
	for _, id := range ids {
		reg.Free(id)
	}
	reg.Close()

	var destroyed int64
	for _, n := range destroyedPer {
		destroyed += n
	}

	sets := int64(sc.Owners) * int64(sc.Slots) * int64(sc.Rounds)
	report := benchReport{
		Scenario:  sc,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000.0,
		Sets:      sets,
		Destroyed: destroyed,
		Allocator: stats,
	}
	if secs := elapsed.Seconds(); secs > 0 {
		report.SetsPerSec = float64(sets) / secs
	}
	return report, nil
}

func printReport(r benchReport) {
	printInfo("scenario: %d slots, %d owners, %d rounds\n",
		r.Scenario.Slots, r.Scenario.Owners, r.Scenario.Rounds)
	printInfo("elapsed: %.2f ms (%.0f sets/sec)\n", r.ElapsedMS, r.SetsPerSec)
	printInfo("sets: %d, payloads destroyed: %d\n", r.Sets, r.Destroyed)
	printInfo("allocator: table=%d in_use=%d allocs=%d (reused=%d grown=%d) frees=%d\n",
		r.Allocator.TableLen, r.Allocator.InUse, r.Allocator.AllocCalls,
		r.Allocator.Reused, r.Allocator.Grown, r.Allocator.FreeCalls)
}

// writeReport writes the JSON report atomically so a half-written file never
// replaces a previous one.
func writeReport(path string, r benchReport) error {
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	buf = append(buf, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(buf)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
