// Package classify assigns every vendor product a disposition against the
// catalog: new-to-catalog, needs-human-review, or cleanly matched. Barcode
// collision groups are reported independently as a catalog-level concern.
package classify

import (
	"github.com/areif-dev/product-crossref/pkg/catalog"
	"github.com/areif-dev/product-crossref/pkg/export"
	"github.com/areif-dev/product-crossref/pkg/index"
	"github.com/areif-dev/product-crossref/pkg/logging"
)

// Match pairs a matched vendor product with its catalog representative, so
// the fix-up stage knows both sides.
type Match struct {
	Vendor  export.Product
	Catalog catalog.Product
}

// Result is the four-way partition. New, NeedsReview and Matched are total
// over the vendor products: every vendor product lands in exactly one.
// Duplicates is populated by scanning the index, independent of vendor
// items.
type Result struct {
	Duplicates  []index.DuplicateGroup
	New         []export.Product
	NeedsReview []export.Product
	Matched     []Match
}

// Total returns the number of vendor products partitioned.
func (r Result) Total() int {
	return len(r.New) + len(r.NeedsReview) + len(r.Matched)
}

// Classify partitions the vendor products. It never fails: classification is
// a total function over valid inputs.
func Classify(products []export.Product, idx *index.Index, policy PricePolicy) Result {
	result := Result{Duplicates: idx.Duplicates()}

	for _, vp := range products {
		entry, found := idx.Lookup(vp.UPC)
		if !found {
			result.New = append(result.New, vp)
			continue
		}

		rep := entry.Representative
		drifted := policy.Exceeds(rep.Cost, vp.Cost)
		if !drifted && vp.Retail != nil {
			drifted = policy.Exceeds(rep.List, *vp.Retail)
		}

		if drifted {
			result.NeedsReview = append(result.NeedsReview, vp)
		} else {
			result.Matched = append(result.Matched, Match{Vendor: vp, Catalog: rep})
		}
	}

	logging.Debug().
		Int("duplicates", len(result.Duplicates)).
		Int("new", len(result.New)).
		Int("needs_review", len(result.NeedsReview)).
		Int("matched", len(result.Matched)).
		Msg("classification complete")

	return result
}
