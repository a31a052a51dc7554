package editport

import (
	"strconv"

	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/errors"
	"github.com/areif-dev/product-crossref/pkg/logging"
)

// ErrorPolicy decides what a step failure on one item means for the rest of
// the batch.
type ErrorPolicy string

const (
	// Continue records the failure and moves on to the next item.
	Continue ErrorPolicy = "continue"
	// Halt stops the batch at the first failed item.
	Halt ErrorPolicy = "halt"
)

// Session owns a Port exclusively for the duration of a batch. Construct it
// with NewSession and pass it by pointer; the port is not reachable through
// any other path, so fix-up sequences cannot interleave.
type Session struct {
	port   Port
	policy ErrorPolicy
}

// NewSession takes ownership of the port. An empty policy defaults to
// Continue.
func NewSession(port Port, policy ErrorPolicy) *Session {
	if policy == "" {
		policy = Continue
	}
	return &Session{port: port, policy: policy}
}

// FixUp applies the corrective sequence to every matched item, one item at a
// time, each sequence running to completion (success or failure) before the
// next begins. A step failure aborts the remaining steps for that item and
// is reported with the item's identity; whether it also halts the batch is
// the session's error policy. Returns the number of items fixed cleanly and
// the per-item automation failures (empty on a clean batch).
func (s *Session) FixUp(matches []classify.Match) (int, []error) {
	applied := 0
	var failures []error
	for _, m := range matches {
		if err := s.fixItem(m); err != nil {
			logging.Err(err).Str("sku", m.Vendor.SKU).Msg("fix-up failed")
			failures = append(failures, err)
			if s.policy == Halt {
				failures = append(failures, errors.ErrHalted)
				break
			}
			continue
		}
		applied++
		logging.Debug().Str("sku", m.Vendor.SKU).Msg("fix-up applied")
	}
	return applied, failures
}

// fixItem runs the ordered steps for one matched item.
func (s *Session) fixItem(m classify.Match) error {
	sku := m.Vendor.SKU

	if err := s.fixBarcodes(m); err != nil {
		return errors.WrapAutomation(sku, "barcodes", err)
	}
	if err := s.fixWeight(m); err != nil {
		return errors.WrapAutomation(sku, "weight", err)
	}
	if err := s.port.WriteField(FieldCost, m.Vendor.Cost.String()); err != nil {
		return errors.WrapAutomation(sku, "cost", err)
	}
	if err := s.fixRetail(m); err != nil {
		return errors.WrapAutomation(sku, "retail", err)
	}
	if err := s.port.WriteField(FieldGroup, GroupMarker); err != nil {
		return errors.WrapAutomation(sku, "group", err)
	}
	if err := s.fixAltSKU(m); err != nil {
		return errors.WrapAutomation(sku, "alt-sku", err)
	}
	return nil
}

// fixBarcodes clears the record's barcodes, re-adds every original barcode
// except the vendor's, then adds the vendor's barcode last so it becomes the
// primary entry.
func (s *Session) fixBarcodes(m classify.Match) error {
	if err := s.port.ClearBarcodes(); err != nil {
		return err
	}
	for _, code := range m.Catalog.Barcodes {
		if code == m.Vendor.UPC {
			continue
		}
		if err := s.port.AddBarcode(code); err != nil {
			return err
		}
	}
	return s.port.AddBarcode(m.Vendor.UPC)
}

func (s *Session) fixWeight(m classify.Match) error {
	if m.Vendor.Weight == nil {
		return nil
	}
	return s.port.WriteField(FieldWeight, strconv.FormatFloat(*m.Vendor.Weight, 'f', -1, 64))
}

func (s *Session) fixRetail(m classify.Match) error {
	if m.Vendor.Retail == nil {
		return nil
	}
	return s.port.WriteField(FieldRetail, m.Vendor.Retail.String())
}

// fixAltSKU writes the vendor sku into the first empty alternate-sku slot.
// All three occupied is a no-op, not an error.
func (s *Session) fixAltSKU(m classify.Match) error {
	for i := FieldAltSKUFirst; i <= FieldAltSKULast; i++ {
		current, err := s.port.ReadField(i)
		if err != nil {
			return err
		}
		if current == "" {
			return s.port.WriteField(i, m.Vendor.SKU)
		}
	}
	return nil
}
