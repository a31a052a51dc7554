package editport

import (
	"fmt"
	"io"

	"github.com/areif-dev/product-crossref/pkg/barcode"
)

// PlanPort renders every operation as one line of a plan file instead of
// driving a desktop session. It backs the CLI's default mode: the plan can
// be reviewed, or replayed later by the real automation collaborator.
//
// Alternate-sku slots read as empty, so a plan always shows the vendor sku
// landing in the first slot.
type PlanPort struct {
	w io.Writer
}

// NewPlanPort creates a PlanPort writing to w.
func NewPlanPort(w io.Writer) *PlanPort {
	return &PlanPort{w: w}
}

// ClearBarcodes implements Port.
func (p *PlanPort) ClearBarcodes() error {
	return p.emit("clear-barcodes")
}

// AddBarcode implements Port.
func (p *PlanPort) AddBarcode(code barcode.Barcode) error {
	return p.emit("add-barcode %s", code)
}

// ReadField implements Port. Plans have no screen to read from.
func (p *PlanPort) ReadField(_ int) (string, error) {
	return "", nil
}

// WriteField implements Port.
func (p *PlanPort) WriteField(index int, value string) error {
	return p.emit("write-field %d %s", index, value)
}

func (p *PlanPort) emit(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}
