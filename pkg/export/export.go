// Package export parses the vendor-supplied product export. Vendor records
// are the source of truth for corrections applied to matched catalog items.
package export

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/areif-dev/product-crossref/pkg/barcode"
	"github.com/areif-dev/product-crossref/pkg/errors"
)

// Product is one vendor-exported product. Immutable once parsed.
type Product struct {
	SKU         string
	UPC         barcode.Barcode
	Description string
	Weight      *float64         // optional
	Cost        decimal.Decimal
	Retail      *decimal.Decimal // optional
}

// vendorFile labels vendor-export errors.
const vendorFile = "vendor"

// row mirrors one CSV record before validation. Cells stay raw strings so
// conversion failures can name the row and field.
type row struct {
	SKU    string `csv:"sku"`
	UPC    string `csv:"upc"`
	Desc   string `csv:"desc"`
	Weight string `csv:"weight"`
	Cost   string `csv:"cost"`
	Retail string `csv:"retail"`
}

// Load decodes a vendor export CSV (header row: sku,upc,desc,weight,cost,
// retail). The upc cell is repaired through the barcode codec; an
// unrepairable upc is an error here, unlike catalog ingestion, because a
// vendor record without a usable barcode can never be classified.
func Load(r io.Reader) ([]Product, error) {
	var rows []row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.NewMalformedValueError(vendorFile, 0, "csv", "", err)
	}

	products := make([]Product, 0, len(rows))
	for i, rec := range rows {
		rowNum := i + 2 // 1-indexed, after the header row

		p, err := convert(rec, rowNum)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func convert(rec row, rowNum int) (Product, error) {
	if strings.TrimSpace(rec.SKU) == "" {
		return Product{}, errors.NewMissingFieldError(vendorFile, rowNum, "sku")
	}
	if strings.TrimSpace(rec.Desc) == "" {
		return Product{}, errors.NewMissingFieldError(vendorFile, rowNum, "desc")
	}

	upc, ok := barcode.Repair(rec.UPC)
	if !ok {
		return Product{}, errors.NewMalformedValueError(vendorFile, rowNum, "upc", rec.UPC, errors.ErrInvalidInput)
	}

	cost, err := decimal.NewFromString(strings.TrimSpace(rec.Cost))
	if err != nil {
		return Product{}, errors.NewMalformedValueError(vendorFile, rowNum, "cost", rec.Cost, err)
	}

	p := Product{
		SKU:         strings.TrimSpace(rec.SKU),
		UPC:         upc,
		Description: strings.TrimSpace(rec.Desc),
		Cost:        cost,
	}

	if raw := strings.TrimSpace(rec.Weight); raw != "" {
		w, err := cast.ToFloat64E(raw)
		if err != nil {
			return Product{}, errors.NewMalformedValueError(vendorFile, rowNum, "weight", rec.Weight, err)
		}
		p.Weight = &w
	}
	if raw := strings.TrimSpace(rec.Retail); raw != "" {
		retail, err := decimal.NewFromString(raw)
		if err != nil {
			return Product{}, errors.NewMalformedValueError(vendorFile, rowNum, "retail", rec.Retail, err)
		}
		p.Retail = &retail
	}

	return p, nil
}
