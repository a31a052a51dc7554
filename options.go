package crossref

import (
	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/editport"
	"github.com/areif-dev/product-crossref/pkg/errors"
)

// Option is a function that configures a reconciliation run
type Option func(*config) error

// config holds the resolved settings for one run.
type config struct {
	itemsPath  string
	postedPath string
	vendorPath string
	outDir     string
	planPath   string

	policy      classify.PricePolicy
	errorPolicy editport.ErrorPolicy
	port        editport.Port
}

func defaultConfig() *config {
	return &config{
		outDir:      ".",
		policy:      classify.DefaultPolicy(),
		errorPolicy: editport.Continue,
	}
}

// WithInputs sets the three input files: the legacy item export, the legacy
// posted export, and the vendor export.
func WithInputs(items, posted, vendor string) Option {
	return func(c *config) error {
		if items == "" || posted == "" || vendor == "" {
			return errors.New("items, posted and vendor paths are all required")
		}
		c.itemsPath = items
		c.postedPath = posted
		c.vendorPath = vendor
		return nil
	}
}

// WithOutputDir sets the directory the reports are written to.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		c.outDir = dir
		return nil
	}
}

// WithPlanFile routes matched-item fix-ups into a reviewable plan file
// instead of a live edit port.
func WithPlanFile(path string) Option {
	return func(c *config) error {
		c.planPath = path
		return nil
	}
}

// WithPort supplies the edit port the fix-up session drives. Overrides
// WithPlanFile.
func WithPort(port editport.Port) Option {
	return func(c *config) error {
		c.port = port
		return nil
	}
}

// WithPricePolicy sets the price-delta policy used by classification.
func WithPricePolicy(policy classify.PricePolicy) Option {
	return func(c *config) error {
		c.policy = policy
		return nil
	}
}

// WithErrorPolicy decides whether an automation failure on one matched item
// halts the batch or skips to the next item.
func WithErrorPolicy(policy editport.ErrorPolicy) Option {
	return func(c *config) error {
		c.errorPolicy = policy
		return nil
	}
}
