package capture

import (
	"context"
	"sort"
	"strings"

	"github.com/pagoandino/capture-cli/internal/model"
)

// DefaultConfidenceThreshold is the confidence below which a single-valued
// field is surfaced for confirmation.
const DefaultConfidenceThreshold = 80

// Resolver confirms or overrides accepted values. Implementations may
// block on user input or apply a programmatic policy.
type Resolver interface {
	// ResolveLowConfidence presents a single low-confidence value and
	// returns the confirmed or replacement value.
	ResolveLowConfidence(ctx context.Context, field, value string, confidence int) (string, error)
	// ResolveConflict presents the conflicting candidates and returns the
	// chosen or newly supplied value.
	ResolveConflict(ctx context.Context, field string, values []string) (string, error)
}

// ResolveOptions tunes the resolution passes.
type ResolveOptions struct {
	Threshold              int
	ClearConflictOnResolve bool
}

// Resolve runs the low-confidence pass and then the multi-value pass over
// the result set, committing every resolution at confidence 100. A field
// is touched by at most one pass per call.
func Resolve(ctx context.Context, results model.ResultSet, r Resolver, opts ResolveOptions) error {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	for _, field := range findLowConfidence(results, threshold) {
		node := results[field]
		resolved, err := r.ResolveLowConfidence(ctx, field, node.Value.Single(), node.Confidence)
		if err != nil {
			return err
		}
		commit(results, field, resolved, opts.ClearConflictOnResolve)
	}

	for _, field := range findMultiValue(results) {
		node := results[field]
		resolved, err := r.ResolveConflict(ctx, field, node.Value.Values())
		if err != nil {
			return err
		}
		commit(results, field, resolved, opts.ClearConflictOnResolve)
	}

	return nil
}

// findLowConfidence selects matched single-valued fields below the
// threshold. Confidence 0 means the value never carried any evidence
// weight and is skipped; so are multi-value conflicts, which belong to
// the other pass.
func findLowConfidence(results model.ResultSet, threshold int) []string {
	var fields []string
	for name, node := range results {
		if !node.Match {
			continue
		}
		if node.Value.IsList() && node.Value.Len() > 1 {
			continue
		}
		if node.Confidence > 0 && node.Confidence < threshold {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// findMultiValue selects fields holding more than one candidate value,
// regardless of confidence.
func findMultiValue(results model.ResultSet) []string {
	var fields []string
	for name, node := range results {
		if node.Value.IsList() && node.Value.Len() > 1 {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

func commit(results model.ResultSet, field, value string, clearConflict bool) {
	node := results[field]
	node.Match = true
	node.Value = model.StringValue(strings.TrimSpace(value))
	node.Confidence = 100
	if clearConflict {
		node.HasConflict = false
	}
	results[field] = node
}
