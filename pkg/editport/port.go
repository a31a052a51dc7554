// Package editport defines the boundary to the external UI-automation
// collaborator that applies corrections to inventory records, and drives the
// ordered fix-up sequence for cleanly matched items.
package editport

import (
	"github.com/areif-dev/product-crossref/pkg/barcode"
)

// Screen field indices of the inventory edit screen.
const (
	FieldWeight = 15
	FieldRetail = 25
	FieldCost   = 26

	// FieldAltSKUFirst..FieldAltSKULast are the three alternate-sku slots.
	FieldAltSKUFirst = 35
	FieldAltSKULast  = 37

	FieldGroup = 39
)

// GroupMarker is the constant written to the classification marker field.
const GroupMarker = "Z"

// Port is the external collaborator contract. It addresses "the current
// screen" of one interactive session, so operations for different items must
// never interleave. Every operation may fail with a structured automation
// error from the collaborator.
type Port interface {
	// ClearBarcodes removes every barcode from the current record.
	ClearBarcodes() error
	// AddBarcode appends a barcode; the last-added becomes primary.
	AddBarcode(code barcode.Barcode) error
	// ReadField returns the text of a screen field.
	ReadField(index int) (string, error)
	// WriteField replaces the text of a screen field.
	WriteField(index int, value string) error
}
