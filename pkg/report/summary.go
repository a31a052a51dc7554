package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/errors"
)

// Summary is the machine-readable record of one reconciliation run, written
// next to the text reports.
type Summary struct {
	RanAt      time.Time `yaml:"ran_at"`
	ItemsFile  string    `yaml:"items_file"`
	PostedFile string    `yaml:"posted_file"`
	VendorFile string    `yaml:"vendor_file"`

	CatalogProducts int `yaml:"catalog_products"`
	VendorProducts  int `yaml:"vendor_products"`

	Duplicates  int `yaml:"duplicates"`
	New         int `yaml:"new"`
	NeedsReview int `yaml:"needs_review"`
	Matched     int `yaml:"matched"`

	FixUpsApplied int      `yaml:"fixups_applied"`
	FixUpFailures []string `yaml:"fixup_failures,omitempty"`
}

// NewSummary seeds a summary from a classification result.
func NewSummary(result classify.Result) Summary {
	return Summary{
		RanAt:          time.Now(),
		VendorProducts: result.Total(),
		Duplicates:     len(result.Duplicates),
		New:            len(result.New),
		NeedsReview:    len(result.NeedsReview),
		Matched:        len(result.Matched),
	}
}

// WriteSummary marshals the summary as YAML into dir.
func WriteSummary(dir string, s Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, SummaryFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
