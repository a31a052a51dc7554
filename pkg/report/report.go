// Package report writes the four plain-text partition reports and a YAML
// run summary into an output directory, for manual follow-up.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/errors"
	"github.com/areif-dev/product-crossref/pkg/export"
	"github.com/areif-dev/product-crossref/pkg/index"
	"github.com/areif-dev/product-crossref/pkg/logging"
)

// Report file names within the output directory.
const (
	DuplicatesFile = "duplicate_products.txt"
	NewFile        = "new_products.txt"
	ReviewFile     = "double_check.txt"
	MatchedFile    = "matched_products.txt"
	SummaryFile    = "summary.yaml"
)

// Write renders every partition of the result into dir, creating it if
// needed.
func Write(dir string, result classify.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{DuplicatesFile, renderDuplicates(result.Duplicates)},
		{NewFile, renderProducts(
			"The following products are new to the catalog. Please enter them manually.",
			result.New)},
		{ReviewFile, renderProducts(
			"The following products seem to have changed wildly. Please double check that their listings are correct.",
			result.NeedsReview)},
		{MatchedFile, renderMatches(result.Matched)},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	logging.Info().Str("dir", dir).Msg("reports written")
	return nil
}

func renderDuplicates(groups []index.DuplicateGroup) string {
	var sb strings.Builder
	sb.WriteString("The following products all share the same UPC. You may want to fix that.\n\n")
	for _, g := range groups {
		fmt.Fprintf(&sb, "UPC %s:\n", g.Barcode)
		for _, p := range g.Products {
			fmt.Fprintf(&sb, "  %s  %s  (cost %s, list %s)\n", p.SKU, p.Description, p.Cost, p.List)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderProducts(preamble string, products []export.Product) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString("\n\n")
	for _, p := range products {
		writeVendorProduct(&sb, p)
	}
	return sb.String()
}

func renderMatches(matches []classify.Match) string {
	var sb strings.Builder
	sb.WriteString("The following products were successfully cross referenced.\n\n")
	for _, m := range matches {
		writeVendorProduct(&sb, m.Vendor)
	}
	return sb.String()
}

func writeVendorProduct(sb *strings.Builder, p export.Product) {
	fmt.Fprintf(sb, "%s  %s  upc %s  cost %s", p.SKU, p.Description, p.UPC, p.Cost)
	if p.Retail != nil {
		fmt.Fprintf(sb, "  retail %s", p.Retail)
	}
	if p.Weight != nil {
		fmt.Fprintf(sb, "  weight %g", *p.Weight)
	}
	sb.WriteString("\n")
}
