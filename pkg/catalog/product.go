// Package catalog builds the in-memory inventory catalog from the two
// fixed-column legacy export files and exposes it read-only.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/areif-dev/product-crossref/pkg/barcode"
	"github.com/areif-dev/product-crossref/pkg/errors"
)

// Product is one reconciled inventory record. Money is exact decimal, never
// floating-point. Barcode order is meaningful: the last entry is the
// logically primary code.
type Product struct {
	SKU         string
	Description string
	Barcodes    []barcode.Barcode
	List        decimal.Decimal
	Cost        decimal.Decimal
	Stock       float64
	Weight      float64
	LastSold    *time.Time // absent unless a posted row supplied a parseable date
}

// ProductParams carries the attributes for constructing a Product. Required
// numeric attributes are pointers so "never supplied" is distinguishable
// from a legitimate zero.
type ProductParams struct {
	SKU         string
	Description string
	Barcodes    []barcode.Barcode
	List        *decimal.Decimal
	Cost        *decimal.Decimal
	Stock       *float64
	Weight      *float64
	LastSold    *time.Time
}

// NewProduct validates all required attributes at once and returns a
// structured incomplete-record error naming the first missing one. Barcodes
// may be empty; LastSold defaults to absent.
func NewProduct(p ProductParams) (Product, error) {
	switch {
	case p.SKU == "":
		return Product{}, errors.NewIncompleteRecordError("", "sku")
	case p.Description == "":
		return Product{}, errors.NewIncompleteRecordError(p.SKU, "description")
	case p.List == nil:
		return Product{}, errors.NewIncompleteRecordError(p.SKU, "list")
	case p.Cost == nil:
		return Product{}, errors.NewIncompleteRecordError(p.SKU, "cost")
	case p.Stock == nil:
		return Product{}, errors.NewIncompleteRecordError(p.SKU, "stock")
	case p.Weight == nil:
		return Product{}, errors.NewIncompleteRecordError(p.SKU, "weight")
	}

	return Product{
		SKU:         p.SKU,
		Description: p.Description,
		Barcodes:    append([]barcode.Barcode(nil), p.Barcodes...),
		List:        *p.List,
		Cost:        *p.Cost,
		Stock:       *p.Stock,
		Weight:      *p.Weight,
		LastSold:    p.LastSold,
	}, nil
}

// PrimaryBarcode returns the logically primary (last-added) barcode.
func (p Product) PrimaryBarcode() (barcode.Barcode, bool) {
	if len(p.Barcodes) == 0 {
		return "", false
	}
	return p.Barcodes[len(p.Barcodes)-1], true
}

// Catalog is the reconciled set of inventory records. It is built once and
// read-only thereafter; iteration follows insertion order.
type Catalog struct {
	order    []string
	products map[string]Product
}

// New builds an in-memory catalog from already-constructed products. Later
// products with a repeated sku replace earlier ones without disturbing
// insertion order.
func New(products ...Product) *Catalog {
	cat := &Catalog{products: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, exists := cat.products[p.SKU]; !exists {
			cat.order = append(cat.order, p.SKU)
		}
		cat.products[p.SKU] = p
	}
	return cat
}

// Get returns the product for a sku.
func (c *Catalog) Get(sku string) (Product, bool) {
	p, ok := c.products[sku]
	return p, ok
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Products returns the products in item-file order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, c.products[sku])
	}
	return out
}
