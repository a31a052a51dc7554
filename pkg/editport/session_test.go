package editport

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areif-dev/product-crossref/pkg/barcode"
	"github.com/areif-dev/product-crossref/pkg/catalog"
	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/errors"
	"github.com/areif-dev/product-crossref/pkg/export"
)

// scriptedPort records every operation and can fail on cue.
type scriptedPort struct {
	ops    []string
	fields map[int]string
	failOn string // op prefix that triggers a failure
}

func newScriptedPort() *scriptedPort {
	return &scriptedPort{fields: make(map[int]string)}
}

func (p *scriptedPort) record(op string) error {
	if p.failOn != "" && len(op) >= len(p.failOn) && op[:len(p.failOn)] == p.failOn {
		return errors.New("scripted failure at " + op)
	}
	p.ops = append(p.ops, op)
	return nil
}

func (p *scriptedPort) ClearBarcodes() error {
	return p.record("clear")
}

func (p *scriptedPort) AddBarcode(code barcode.Barcode) error {
	return p.record("add " + code.String())
}

func (p *scriptedPort) ReadField(index int) (string, error) {
	if err := p.record(fmt.Sprintf("read %d", index)); err != nil {
		return "", err
	}
	return p.fields[index], nil
}

func (p *scriptedPort) WriteField(index int, value string) error {
	if err := p.record(fmt.Sprintf("write %d %s", index, value)); err != nil {
		return err
	}
	p.fields[index] = value
	return nil
}

func mustBarcode(t *testing.T, raw string) barcode.Barcode {
	t.Helper()
	code, ok := barcode.Repair(raw)
	require.True(t, ok)
	return code
}

func match(t *testing.T, catalogCodes []string, vendorCode string) classify.Match {
	t.Helper()

	var codes []barcode.Barcode
	for _, raw := range catalogCodes {
		codes = append(codes, mustBarcode(t, raw))
	}

	list := decimal.RequireFromString("12.00")
	cost := decimal.RequireFromString("8.00")
	stock := 1.0
	catWeight := 1.0
	cp, err := catalog.NewProduct(catalog.ProductParams{
		SKU:         "CAT1",
		Description: "catalog item",
		Barcodes:    codes,
		List:        &list,
		Cost:        &cost,
		Stock:       &stock,
		Weight:      &catWeight,
	})
	require.NoError(t, err)

	weight := 1.5
	retail := decimal.RequireFromString("12.50")
	return classify.Match{
		Vendor: export.Product{
			SKU:         "VND1",
			UPC:         mustBarcode(t, vendorCode),
			Description: "vendor item",
			Weight:      &weight,
			Cost:        decimal.RequireFromString("8.25"),
			Retail:      &retail,
		},
		Catalog: cp,
	}
}

func TestFixUpStepOrder(t *testing.T) {
	port := newScriptedPort()
	session := NewSession(port, Continue)

	m := match(t, []string{"4006381333931", "0123456789012"}, "0123456789012")

	applied, failures := session.FixUp([]classify.Match{m})
	assert.Equal(t, 1, applied)
	assert.Empty(t, failures)

	assert.Equal(t, []string{
		"clear",
		"add 4006381333931", // original barcode other than the vendor's
		"add 0123456789012", // vendor barcode added last, becomes primary
		"write 15 1.5",
		"write 26 8.25",
		"write 25 12.50",
		"write 39 Z",
		"read 35",
		"write 35 VND1",
	}, port.ops)
}

func TestFixUpSkipsAbsentOptionals(t *testing.T) {
	port := newScriptedPort()
	session := NewSession(port, Continue)

	m := match(t, nil, "4006381333931")
	m.Vendor.Weight = nil
	m.Vendor.Retail = nil

	applied, failures := session.FixUp([]classify.Match{m})
	assert.Equal(t, 1, applied)
	assert.Empty(t, failures)

	assert.Equal(t, []string{
		"clear",
		"add 4006381333931",
		"write 26 8.25",
		"write 39 Z",
		"read 35",
		"write 35 VND1",
	}, port.ops)
}

func TestFixUpAltSKUUsesFirstEmptySlot(t *testing.T) {
	port := newScriptedPort()
	port.fields[35] = "TAKEN"
	session := NewSession(port, Continue)

	_, failures := session.FixUp([]classify.Match{match(t, nil, "4006381333931")})
	require.Empty(t, failures)

	assert.Contains(t, port.ops, "read 35")
	assert.Contains(t, port.ops, "read 36")
	assert.Contains(t, port.ops, "write 36 VND1")
}

func TestFixUpAltSKUAllOccupiedIsNoOp(t *testing.T) {
	port := newScriptedPort()
	port.fields[35] = "A"
	port.fields[36] = "B"
	port.fields[37] = "C"
	session := NewSession(port, Continue)

	applied, failures := session.FixUp([]classify.Match{match(t, nil, "4006381333931")})
	assert.Equal(t, 1, applied)
	assert.Empty(t, failures)
	assert.NotContains(t, port.ops, "write 35 VND1")
	assert.NotContains(t, port.ops, "write 36 VND1")
	assert.NotContains(t, port.ops, "write 37 VND1")
}

func TestFixUpFailureIsScopedToItem(t *testing.T) {
	port := newScriptedPort()
	port.failOn = "write 26" // cost write fails for every item
	session := NewSession(port, Continue)

	items := []classify.Match{
		match(t, nil, "4006381333931"),
		match(t, nil, "0123456789012"),
	}

	applied, failures := session.FixUp(items)
	assert.Equal(t, 0, applied)
	require.Len(t, failures, 2, "continue policy processes every item")

	for _, err := range failures {
		assert.True(t, errors.IsAutomation(err))

		var autoErr *errors.AutomationError
		require.ErrorAs(t, err, &autoErr)
		assert.Equal(t, "VND1", autoErr.SKU)
		assert.Equal(t, "cost", autoErr.Step)
	}
}

func TestFixUpHaltPolicyStopsBatch(t *testing.T) {
	port := newScriptedPort()
	port.failOn = "clear"
	session := NewSession(port, Halt)

	items := []classify.Match{
		match(t, nil, "4006381333931"),
		match(t, nil, "0123456789012"),
	}

	applied, failures := session.FixUp(items)
	assert.Equal(t, 0, applied)
	require.Len(t, failures, 2)
	assert.True(t, errors.IsAutomation(failures[0]))
	assert.ErrorIs(t, failures[1], errors.ErrHalted)
}

func TestFixUpStepFailureAbortsRemainingSteps(t *testing.T) {
	port := newScriptedPort()
	port.failOn = "write 39"
	session := NewSession(port, Continue)

	_, failures := session.FixUp([]classify.Match{match(t, nil, "4006381333931")})
	require.Len(t, failures, 1)

	// The alternate-sku step never ran.
	assert.NotContains(t, port.ops, "read 35")
}
