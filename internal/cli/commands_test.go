package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanline/beanline/internal/cafe"
)

// execute runs the CLI against the given database file and returns
// captured stdout, stderr, and the execution error.
func execute(t *testing.T, db string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// decodeData unmarshals the Data payload of a JSON CLIResponse.
func decodeData(t *testing.T, out string, target interface{}) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cafe.db")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRootCommand_RejectsBadFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "menu"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestMenuCommand(t *testing.T) {
	out, _, err := execute(t, testDB(t), "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee Classics")
	assert.Contains(t, out, "[1] Espresso  $180.00")
	assert.Contains(t, out, "Avocado Toast")
}

func TestAddCommand(t *testing.T) {
	db := testDB(t)

	out, _, err := execute(t, db, "add", "1", "--qty", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2x Espresso")
	assert.Contains(t, out, "Cart: 2 items, subtotal $360.00")
}

func TestAddCommand_UnknownItem(t *testing.T) {
	out, _, err := execute(t, testDB(t), "add", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestAddCommand_BadVariant(t *testing.T) {
	_, _, err := execute(t, testDB(t), "add", "1", "--variant", "large")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAddCommand_MergesAcrossInvocations(t *testing.T) {
	db := testDB(t)

	_, _, err := execute(t, db, "add", "1", "--qty", "1", "--variant", "size=large")
	require.NoError(t, err)
	_, _, err = execute(t, db, "add", "1", "--qty", "2", "--variant", "size=large")
	require.NoError(t, err)

	out, _, err := execute(t, db, "cart", "--format", "json")
	require.NoError(t, err)

	var view struct {
		Lines     []cafe.CartLine `json:"lines"`
		ItemCount int             `json:"itemCount"`
	}
	decodeData(t, out, &view)
	require.Len(t, view.Lines, 1, "same item + variants must stay one line across invocations")
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, 3, view.ItemCount)
}

func TestCartRemoveAndQty(t *testing.T) {
	db := testDB(t)

	_, _, err := execute(t, db, "add", "1", "--qty", "2")
	require.NoError(t, err)
	_, _, err = execute(t, db, "add", "3")
	require.NoError(t, err)

	out, _, err := execute(t, db, "cart", "--format", "json")
	require.NoError(t, err)
	var view struct {
		Lines []cafe.CartLine `json:"lines"`
	}
	decodeData(t, out, &view)
	require.Len(t, view.Lines, 2)
	espressoLine := view.Lines[0]

	// Clamp at 1 however negative the delta.
	out, _, err = execute(t, db, "cart", "qty", espressoLine.CartID, "--delta", "-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Espresso now 1x")

	out, _, err = execute(t, db, "cart", "remove", espressoLine.CartID)
	require.NoError(t, err)
	assert.Contains(t, out, "1 items left")

	// Removing again is NOT_FOUND.
	out, _, err = execute(t, db, "cart", "remove", espressoLine.CartID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestCheckoutCommand_EmptyCart(t *testing.T) {
	out, _, err := execute(t, testDB(t), "checkout")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [EMPTY_CART]")
}

func TestOrderLifecycle(t *testing.T) {
	db := testDB(t)

	_, _, err := execute(t, db, "add", "1", "--qty", "2")
	require.NoError(t, err)

	out, _, err := execute(t, db, "checkout", "--table", "5", "--format", "json")
	require.NoError(t, err)
	var order cafe.Order
	decodeData(t, out, &order)
	require.NotEmpty(t, order.ID)
	assert.Equal(t, 5, order.TableID)
	assert.Equal(t, cafe.StatusPending, order.Status)
	assert.Equal(t, float64(360), order.Total)

	// The cart is now empty.
	out, _, err = execute(t, db, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart is empty")

	// The board shows the new order.
	out, _, err = execute(t, db, "kitchen")
	require.NoError(t, err)
	assert.Contains(t, out, "Kitchen Display  |  1 active")
	assert.Contains(t, out, "New Orders (1)")
	assert.Contains(t, out, "2x Espresso")

	// Walk the forward chain.
	out, _, err = execute(t, db, "advance", order.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "now preparing")

	out, _, err = execute(t, db, "advance", order.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "now ready")

	out, _, err = execute(t, db, "advance", order.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "now completed")

	// Terminal orders cannot move.
	out, _, err = execute(t, db, "advance", order.ID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [INVALID_TRANSITION]")

	// Completed orders leave the board but stay in history and revenue.
	out, _, err = execute(t, db, "kitchen")
	require.NoError(t, err)
	assert.Contains(t, out, "Kitchen Display  |  0 active")

	out, _, err = execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Orders: 1 total, 0 active")
	assert.Contains(t, out, "Revenue (all orders)  $360.00")
	assert.Contains(t, out, "Realized (completed)  $360.00")
}

func TestCancelCommand(t *testing.T) {
	db := testDB(t)

	_, _, err := execute(t, db, "add", "6")
	require.NoError(t, err)
	out, _, err := execute(t, db, "checkout", "--format", "json")
	require.NoError(t, err)
	var order cafe.Order
	decodeData(t, out, &order)

	out, _, err = execute(t, db, "cancel", order.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	// Cancelled revenue still counts in the historical metric.
	out, _, err = execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Revenue (all orders)  $160.00")
	assert.Contains(t, out, "Realized (completed)  $0.00")

	// A cancelled order cannot be cancelled again.
	_, _, err = execute(t, db, "cancel", order.ID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestOrdersCommand_StatusFilter(t *testing.T) {
	db := testDB(t)

	_, _, err := execute(t, db, "add", "1")
	require.NoError(t, err)
	out, _, err := execute(t, db, "checkout", "--format", "json")
	require.NoError(t, err)
	var order cafe.Order
	decodeData(t, out, &order)

	out, _, err = execute(t, db, "orders", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, order.ID)

	out, _, err = execute(t, db, "orders", "--status", "ready")
	require.NoError(t, err)
	assert.Contains(t, out, "No orders")

	out, _, err = execute(t, db, "orders", "--status", "burnt")
	require.Error(t, err)
	assert.Contains(t, out, "Error [BAD_STATUS]")
}

func TestOrdersCommand_NewestFirst(t *testing.T) {
	db := testDB(t)

	_, _, err := execute(t, db, "add", "1")
	require.NoError(t, err)
	out, _, err := execute(t, db, "checkout", "--format", "json")
	require.NoError(t, err)
	var first cafe.Order
	decodeData(t, out, &first)

	_, _, err = execute(t, db, "add", "3")
	require.NoError(t, err)
	out, _, err = execute(t, db, "checkout", "--format", "json")
	require.NoError(t, err)
	var second cafe.Order
	decodeData(t, out, &second)

	out, _, err = execute(t, db, "orders", "--format", "json")
	require.NoError(t, err)
	var orders []cafe.Order
	decodeData(t, out, &orders)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestMenuSetCommand_NotPersisted(t *testing.T) {
	db := testDB(t)

	out, _, err := execute(t, db, "menu", "set", "--category", "cat_1", "--id", "1", "--price", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated [1] Espresso  $200.00")

	// The next invocation sees the built-in price again.
	out, _, err = execute(t, db, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Espresso  $180.00")
}

func TestMenuSetCommand_UnknownItem(t *testing.T) {
	out, _, err := execute(t, testDB(t), "menu", "set", "--category", "cat_1", "--id", "99", "--name", "X")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestCustomCatalogFlag(t *testing.T) {
	db := testDB(t)
	catalog := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, catalog, `
categories:
  - id: house
    name: House Specials
    items:
      - id: h1
        name: Flat White
        price: 230
        available: true
`)

	out, _, err := execute(t, db, "--menu", catalog, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "House Specials")
	assert.Contains(t, out, "[h1] Flat White  $230.00")

	out, _, err = execute(t, db, "--menu", catalog, "add", "h1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1x Flat White")
}

func TestEnvDatabasePath(t *testing.T) {
	db := testDB(t)
	t.Setenv("BEANLINE_DB", db)

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "1"})
	require.NoError(t, cmd.Execute())

	cmd = NewRootCommand()
	out = &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"cart"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1x Espresso")
}

func TestUnavailableItemWarnsButAdds(t *testing.T) {
	db := testDB(t)
	catalog := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, catalog, `
categories:
  - id: house
    name: House
    items:
      - id: h1
        name: Flat White
        price: 230
        available: false
`)

	out, errOut, err := execute(t, db, "--menu", catalog, "add", "h1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "marked unavailable")
	assert.Contains(t, out, "Added 1x Flat White")
}
