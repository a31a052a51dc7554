package catalog

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/areif-dev/product-crossref/pkg/barcode"
	"github.com/areif-dev/product-crossref/pkg/errors"
	"github.com/areif-dev/product-crossref/pkg/logging"
)

// Fixed column offsets of the legacy tab-separated exports. Neither file
// carries a header row.
const (
	itemColSKU         = 0
	itemColDescription = 1
	itemColList        = 6
	itemColCost        = 8
	itemColBarcodes    = 43
	itemColWeight      = 45

	postedColSKU      = 0
	postedColLastSold = 1
	postedColStock    = 19
)

// Source file labels used in error context.
const (
	itemsFile  = "items"
	postedFile = "posted"
)

var upper = cases.Upper(language.Und)

// Ingest parses the item and posted sources and merges them by sku into a
// Catalog. Any error aborts the whole ingestion; a partial catalog is never
// returned. Row numbers in errors are 1-indexed per source file.
func Ingest(items io.Reader, posted io.Reader) (*Catalog, error) {
	cat, err := ingestItems(items)
	if err != nil {
		return nil, err
	}
	if err := mergePosted(cat, posted); err != nil {
		return nil, err
	}
	logging.Debug().Int("products", cat.Len()).Msg("catalog ingested")
	return cat, nil
}

// ingestItems reads the item source: one product per row at fixed offsets.
func ingestItems(r io.Reader) (*Catalog, error) {
	cat := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	row := 0
	for scanner.Scan() {
		row++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		sku, err := requireColumn(cols, itemColSKU, itemsFile, row, "sku")
		if err != nil {
			return nil, err
		}
		desc, err := requireColumn(cols, itemColDescription, itemsFile, row, "description")
		if err != nil {
			return nil, err
		}
		list, err := parseCurrency(cols, itemColList, itemsFile, row, "list")
		if err != nil {
			return nil, err
		}
		cost, err := parseCurrency(cols, itemColCost, itemsFile, row, "cost")
		if err != nil {
			return nil, err
		}
		weightRaw, err := requireColumn(cols, itemColWeight, itemsFile, row, "weight")
		if err != nil {
			return nil, err
		}
		weight, err := cast.ToFloat64E(strings.TrimSpace(weightRaw))
		if err != nil {
			return nil, errors.NewMalformedValueError(itemsFile, row, "weight", weightRaw, err)
		}

		// The barcode column may be absent or empty; unrepairable tokens
		// are dropped, not reported.
		var codes []barcode.Barcode
		if itemColBarcodes < len(cols) {
			codes = repairBarcodeList(cols[itemColBarcodes])
		}

		stock := 0.0
		product, err := NewProduct(ProductParams{
			SKU:         sku,
			Description: desc,
			Barcodes:    codes,
			List:        &list,
			Cost:        &cost,
			Stock:       &stock,
			Weight:      &weight,
		})
		if err != nil {
			return nil, err
		}

		if _, exists := cat.products[sku]; !exists {
			cat.order = append(cat.order, sku)
		}
		cat.products[sku] = product
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", itemsFile, err)
	}
	return cat, nil
}

// mergePosted overlays stock and last-sold data onto the catalog. Every
// posted row must reference a sku produced by the item source. The merged
// record's sku is upper-cased.
func mergePosted(cat *Catalog, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	row := 0
	for scanner.Scan() {
		row++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		sku, err := requireColumn(cols, postedColSKU, postedFile, row, "sku")
		if err != nil {
			return err
		}
		stockRaw, err := requireColumn(cols, postedColStock, postedFile, row, "stock")
		if err != nil {
			return err
		}
		stock, err := cast.ToFloat64E(strings.TrimSpace(stockRaw))
		if err != nil {
			return errors.NewMalformedValueError(postedFile, row, "stock", stockRaw, err)
		}

		product, ok := cat.products[sku]
		if !ok {
			return errors.NewMissingCrossReferenceError(sku, row)
		}

		product.Stock = stock
		if postedColLastSold < len(cols) {
			product.LastSold = parseLastSold(cols[postedColLastSold])
		}

		merged := upper.String(sku)
		if merged != sku {
			delete(cat.products, sku)
			for i, s := range cat.order {
				if s == sku {
					cat.order[i] = merged
					break
				}
			}
		}
		product.SKU = merged
		cat.products[merged] = product
	}
	if err := scanner.Err(); err != nil {
		return errors.WrapIO("read", postedFile, err)
	}
	return nil
}

// requireColumn returns the trimmed cell at idx, or a missing-field error
// naming the field and row when the column is absent or blank.
func requireColumn(cols []string, idx int, file string, row int, field string) (string, error) {
	if idx >= len(cols) {
		return "", errors.NewMissingFieldError(file, row, field)
	}
	val := strings.TrimSpace(cols[idx])
	if val == "" {
		return "", errors.NewMissingFieldError(file, row, field)
	}
	return val, nil
}

// parseCurrency canonicalizes noisy currency text by stripping everything
// that is not a digit or decimal point, then parses an exact decimal.
// Money must be exact or ingestion fails.
func parseCurrency(cols []string, idx int, file string, row int, field string) (decimal.Decimal, error) {
	raw, err := requireColumn(cols, idx, file, row, field)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	cleaned := sb.String()
	if cleaned == "" {
		return decimal.Decimal{}, errors.NewMalformedValueError(file, row, field, raw, errors.ErrInvalidInput)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, errors.NewMalformedValueError(file, row, field, raw, err)
	}
	return d, nil
}

// repairBarcodeList runs each comma-separated token through the codec.
// Unrepairable tokens are silently dropped.
func repairBarcodeList(field string) []barcode.Barcode {
	var codes []barcode.Barcode
	for _, token := range strings.Split(field, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if code, ok := barcode.Repair(token); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// parseLastSold parses the last-sold date permissively. Anything
// unparseable yields absent rather than an error.
func parseLastSold(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	return &t
}
