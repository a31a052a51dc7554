package app

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	crossref "github.com/areif-dev/product-crossref"
	"github.com/areif-dev/product-crossref/pkg/classify"
	"github.com/areif-dev/product-crossref/pkg/editport"
	"github.com/areif-dev/product-crossref/pkg/errors"
)

// NewReconcileCommand creates the reconcile command, the core of the CLI.
func (a *App) NewReconcileCommand() *cobra.Command {
	var (
		itemsPath     string
		postedPath    string
		vendorPath    string
		outDir        string
		planPath      string
		costThreshold string
		relative      bool
		onError       string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile the legacy inventory export against a vendor export",
		Long: `Reconcile ingests the item and posted legacy files, builds a barcode
index over the catalog, classifies every vendor product, writes the four
partition reports plus a run summary, and emits a fix-up plan for the
cleanly matched items.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := a.buildPolicy(costThreshold, relative)
			if err != nil {
				return err
			}
			errPolicy, err := parseErrorPolicy(pickString(onError, a.config.OnError))
			if err != nil {
				return err
			}

			opts := []crossref.Option{
				crossref.WithInputs(itemsPath, postedPath, vendorPath),
				crossref.WithOutputDir(pickString(outDir, a.config.OutputDir)),
				crossref.WithPricePolicy(policy),
				crossref.WithErrorPolicy(errPolicy),
			}
			if planPath != "" {
				opts = append(opts, crossref.WithPlanFile(planPath))
			}

			outcome, err := crossref.Reconcile(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "duplicate barcode groups: %d\n", len(outcome.Result.Duplicates))
			fmt.Fprintf(out, "new to catalog:           %d\n", len(outcome.Result.New))
			fmt.Fprintf(out, "needs review:             %d\n", len(outcome.Result.NeedsReview))
			fmt.Fprintf(out, "matched:                  %d\n", len(outcome.Result.Matched))
			if planPath != "" {
				fmt.Fprintf(out, "fix-ups planned:          %d\n", outcome.FixUpsApplied)
			}
			for _, ferr := range outcome.FixUpFailures {
				fmt.Fprintf(out, "fix-up failure: %v\n", ferr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&itemsPath, "items", "", "legacy item export file (fixed-column TSV)")
	cmd.Flags().StringVar(&postedPath, "posted", "", "legacy posted export file (fixed-column TSV)")
	cmd.Flags().StringVar(&vendorPath, "vendor", "", "vendor product export file (CSV)")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for the report files (default current directory)")
	cmd.Flags().StringVar(&planPath, "plan", "", "write the matched-item fix-up plan to this file")
	cmd.Flags().StringVar(&costThreshold, "cost-threshold", "", "price drift allowed before an item needs review (decimal)")
	cmd.Flags().BoolVar(&relative, "relative", false, "treat the threshold as a ratio of the catalog price")
	cmd.Flags().StringVar(&onError, "on-error", "", "fix-up failure policy: continue or halt (default continue)")

	_ = cmd.MarkFlagRequired("items")
	_ = cmd.MarkFlagRequired("posted")
	_ = cmd.MarkFlagRequired("vendor")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crossref %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}

// buildPolicy resolves the price policy from a flag value falling back to
// the configured default.
func (a *App) buildPolicy(flagThreshold string, relative bool) (classify.PricePolicy, error) {
	policy := classify.DefaultPolicy()

	raw := pickString(flagThreshold, a.config.CostThreshold)
	if raw != "" {
		threshold, err := decimal.NewFromString(raw)
		if err != nil {
			return policy, fmt.Errorf("invalid cost threshold %q: %w", raw, err)
		}
		policy.Threshold = threshold
	}
	if relative || a.config.RelativeMode {
		policy.Mode = classify.Relative
	}
	return policy, nil
}

func parseErrorPolicy(raw string) (editport.ErrorPolicy, error) {
	switch raw {
	case "", string(editport.Continue):
		return editport.Continue, nil
	case string(editport.Halt):
		return editport.Halt, nil
	default:
		return "", errors.New("on-error must be continue or halt")
	}
}

// pickString returns the first non-empty value.
func pickString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
