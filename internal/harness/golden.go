package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/beanline/beanline/internal/cafe"
)

// StateSnapshot captures a scenario execution for golden comparison:
// the full trace plus the final persisted state.
type StateSnapshot struct {
	ScenarioName string          `json:"scenario_name"`
	Trace        []TraceEvent    `json:"trace"`
	Cart         []cafe.CartLine `json:"cart"`
	Orders       []cafe.Order    `json:"orders"`
	Stats        StatsSummary    `json:"stats"`
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected store behavior; a
// diff means either a regression or an intentional semantic change.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares a result against the golden file for the given
// scenario name. Useful when the result is already in hand.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := StateSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Cart:         result.Cart,
		Orders:       result.Orders,
		Stats:        result.Stats,
	}

	// Plain UTF-8 output keeps catalog URLs readable in golden files.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return err
	}
	data := buf.Bytes()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
