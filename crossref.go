// Package crossref reconciles a legacy fixed-column inventory export against
// a vendor-supplied product export. Items are matched by repaired EAN-13
// barcode, classified into four dispositions, reported to plain-text files,
// and matched items are forwarded to an inventory edit port as an ordered
// fix-up sequence.
//
// The pipeline is single-threaded and flows one way:
// files -> catalog -> barcode index -> per-vendor-item classification ->
// four partitions -> fix-up. No stage re-enters an earlier one.
package crossref

import (
	"context"
	"os"

	"github.com/areif-dev/product-crossref/pkg/catalog"
	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/editport"
	"github.com/areif-dev/product-crossref/pkg/errors"
	"github.com/areif-dev/product-crossref/pkg/export"
	"github.com/areif-dev/product-crossref/pkg/index"
	"github.com/areif-dev/product-crossref/pkg/logging"
	"github.com/areif-dev/product-crossref/pkg/report"
)

// Outcome is the result of one reconciliation run.
type Outcome struct {
	Result        classify.Result
	FixUpsApplied int
	FixUpFailures []error
}

// Reconcile runs the full pipeline. Any ingestion-time error aborts the run
// before classification begins; partial catalogs are never reconciled.
func Reconcile(ctx context.Context, opts ...Option) (*Outcome, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.itemsPath == "" {
		return nil, errors.New("no input files configured")
	}

	cat, err := ingestCatalog(cfg.itemsPath, cfg.postedPath)
	if err != nil {
		return nil, err
	}
	logging.Info().Int("products", cat.Len()).Msg("catalog ingested")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := index.Build(cat)

	vendorProducts, err := loadVendor(cfg.vendorPath)
	if err != nil {
		return nil, err
	}
	logging.Info().Int("products", len(vendorProducts)).Msg("vendor export loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := classify.Classify(vendorProducts, idx, cfg.policy)
	logging.Info().
		Int("duplicates", len(result.Duplicates)).
		Int("new", len(result.New)).
		Int("needs_review", len(result.NeedsReview)).
		Int("matched", len(result.Matched)).
		Msg("vendor products classified")

	if err := report.Write(cfg.outDir, result); err != nil {
		return nil, err
	}

	outcome := &Outcome{Result: result}

	port, closePort, err := cfg.resolvePort()
	if err != nil {
		return nil, err
	}
	if port != nil {
		session := editport.NewSession(port, cfg.errorPolicy)
		outcome.FixUpsApplied, outcome.FixUpFailures = session.FixUp(result.Matched)
		if closePort != nil {
			if cerr := closePort(); cerr != nil {
				return nil, cerr
			}
		}
	}

	summary := report.NewSummary(result)
	summary.ItemsFile = cfg.itemsPath
	summary.PostedFile = cfg.postedPath
	summary.VendorFile = cfg.vendorPath
	summary.CatalogProducts = cat.Len()
	summary.FixUpsApplied = outcome.FixUpsApplied
	for _, ferr := range outcome.FixUpFailures {
		summary.FixUpFailures = append(summary.FixUpFailures, ferr.Error())
	}
	if err := report.WriteSummary(cfg.outDir, summary); err != nil {
		return nil, err
	}

	return outcome, nil
}

// resolvePort returns the edit port to drive, if any. A custom port wins
// over a plan file; with neither, the fix-up stage is skipped.
func (c *config) resolvePort() (editport.Port, func() error, error) {
	if c.port != nil {
		return c.port, nil, nil
	}
	if c.planPath == "" {
		return nil, nil, nil
	}
	f, err := os.Create(c.planPath)
	if err != nil {
		return nil, nil, errors.WrapIO("create", c.planPath, err)
	}
	return editport.NewPlanPort(f), f.Close, nil
}

func ingestCatalog(itemsPath, postedPath string) (*catalog.Catalog, error) {
	items, err := os.Open(itemsPath)
	if err != nil {
		return nil, errors.WrapIO("open", itemsPath, err)
	}
	defer items.Close()

	posted, err := os.Open(postedPath)
	if err != nil {
		return nil, errors.WrapIO("open", postedPath, err)
	}
	defer posted.Close()

	return catalog.Ingest(items, posted)
}

func loadVendor(path string) ([]export.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	return export.Load(f)
}
