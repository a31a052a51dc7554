// Package index maps every catalog barcode to its owning product and
// surfaces cross-sku collisions. The index borrows from the catalog, is
// rebuilt per reconciliation run, and is immutable afterwards.
package index

import (
	"sort"

	"github.com/areif-dev/product-crossref/pkg/barcode"
	"github.com/areif-dev/product-crossref/pkg/catalog"
)

// DuplicateGroup is the set of catalog products with different skus that
// share one barcode. Each sku appears at most once; the group is sorted by
// sku ascending so reports are stable regardless of insertion order.
type DuplicateGroup struct {
	Barcode  barcode.Barcode
	Products []catalog.Product
}

// SKUs returns the colliding skus in ascending order.
func (g DuplicateGroup) SKUs() []string {
	skus := make([]string, 0, len(g.Products))
	for _, p := range g.Products {
		skus = append(skus, p.SKU)
	}
	return skus
}

// Entry is the index value for one barcode: the representative product plus
// any colliders. The representative is the product with the
// lexicographically lowest sku, a deterministic tie-break replacing the
// original last-inserted-wins behavior.
type Entry struct {
	Representative catalog.Product
	Group          DuplicateGroup // empty unless cross-sku collision
}

// Index is the immutable barcode lookup built by Build.
type Index struct {
	entries map[barcode.Barcode]Entry
}

// Build folds the catalog into an Index. Barcodes owned multiple times by
// the same sku record no duplicate; only cross-sku collisions count.
func Build(cat *catalog.Catalog) *Index {
	// owners accumulates every distinct sku seen per barcode.
	owners := make(map[barcode.Barcode]map[string]catalog.Product)
	for _, product := range cat.Products() {
		for _, code := range product.Barcodes {
			m, ok := owners[code]
			if !ok {
				m = make(map[string]catalog.Product)
				owners[code] = m
			}
			m[product.SKU] = product
		}
	}

	entries := make(map[barcode.Barcode]Entry, len(owners))
	for code, bySKU := range owners {
		skus := make([]string, 0, len(bySKU))
		for sku := range bySKU {
			skus = append(skus, sku)
		}
		sort.Strings(skus)

		entry := Entry{Representative: bySKU[skus[0]]}
		if len(skus) > 1 {
			group := DuplicateGroup{Barcode: code}
			for _, sku := range skus {
				group.Products = append(group.Products, bySKU[sku])
			}
			entry.Group = group
		}
		entries[code] = entry
	}

	return &Index{entries: entries}
}

// Lookup returns the entry for a barcode.
func (idx *Index) Lookup(code barcode.Barcode) (Entry, bool) {
	e, ok := idx.entries[code]
	return e, ok
}

// Len returns the number of distinct barcodes indexed.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Duplicates returns every non-empty collision group, sorted by barcode for
// stable reporting.
func (idx *Index) Duplicates() []DuplicateGroup {
	var groups []DuplicateGroup
	for _, entry := range idx.entries {
		if len(entry.Group.Products) > 0 {
			groups = append(groups, entry.Group)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Barcode < groups[j].Barcode
	})
	return groups
}
