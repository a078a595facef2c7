package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes scenario YAML to a temp file and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: espresso_run
description: "An espresso is added and checked out"
flow:
  - op: cart.add
    args:
      item: "1"
      qty: 2
  - op: order.place
    args:
      table: 4
assertions:
  - type: trace_contains
    op: cart.add
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "espresso_run", scenario.Name)
	assert.Equal(t, "An espresso is added and checked out", scenario.Description)
	assert.Len(t, scenario.Flow, 2)
	assert.Len(t, scenario.Assertions, 1)
	assert.Equal(t, "cart.add", scenario.Flow[0].Op)
	assert.Equal(t, "1", scenario.Flow[0].Args["item"])
	assert.Equal(t, 2, scenario.Flow[0].Args["qty"])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
description: "Missing name"
flow:
  - op: cart.add
    args: {}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MissingDescription(t *testing.T) {
	path := writeScenario(t, `
name: test
flow:
  - op: cart.add
    args: {}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestLoadScenario_EmptyFlow(t *testing.T) {
	path := writeScenario(t, `
name: test
description: "No flow"
assertions:
  - type: trace_contains
    op: cart.add
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flow list is required")
}

func TestLoadScenario_UnknownOp(t *testing.T) {
	path := writeScenario(t, `
name: test
description: "Unknown op"
flow:
  - op: cart.explode
    args: {}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "cart.explode"`)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	// Strict decoding catches typos like "assertion" for "assertions".
	path := writeScenario(t, `
name: test
description: "Typo in assertions key"
flow:
  - op: cart.add
    args: {}
assertion:
  - type: trace_contains
    op: cart.add
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_EmptyExpectRejected(t *testing.T) {
	path := writeScenario(t, `
name: test
description: "Expect clause with nothing in it"
flow:
  - op: cart.add
    args:
      item: "1"
    expect: {}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error or result is required")
}

func TestLoadScenario_BadAssertions(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing type",
			yaml: `
  - op: cart.add`,
			wantErr: "type is required",
		},
		{
			name: "trace_contains without op",
			yaml: `
  - type: trace_contains`,
			wantErr: "op is required for trace_contains",
		},
		{
			name: "trace_order without ops",
			yaml: `
  - type: trace_order`,
			wantErr: "ops list is required for trace_order",
		},
		{
			name: "final_state bad collection",
			yaml: `
  - type: final_state
    state: menu
    expect:
      price: 200`,
			wantErr: "state must be cart, orders, or stats",
		},
		{
			name: "final_state without expect",
			yaml: `
  - type: final_state
    state: cart`,
			wantErr: "expect is required for final_state",
		},
		{
			name: "unknown type",
			yaml: `
  - type: trace_magic`,
			wantErr: `unknown assertion type "trace_magic"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenario(t, `
name: test
description: "Assertion validation"
flow:
  - op: cart.add
    args:
      item: "1"
assertions:`+tc.yaml+"\n")

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
