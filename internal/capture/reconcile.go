package capture

import (
	"strings"

	"github.com/pagoandino/capture-cli/internal/model"
)

// DefaultCarryOverConfidence settles any field ever accepted with at least
// this confidence. It is deliberately low; quality is enforced by the
// resolver, not here.
const DefaultCarryOverConfidence = 10

// Reconcile merges per-document extraction outputs with the previously
// accepted results into a new consolidated result set. The previous set is
// never mutated.
//
// Per field: an already-settled node is carried over untouched. Otherwise
// hits (match=true nodes) are collected in document order; no hits keeps
// the prior node or synthesizes an empty one, one hit is adopted verbatim,
// unanimous hits average confidence, and conflicting hits produce an
// ordered value list at minimum confidence with the conflict flagged.
func Reconcile(prev model.ResultSet, fields model.FieldSet, extracted map[string]model.ResultSet, docOrder []string, carryOver int) model.ResultSet {
	next := make(model.ResultSet, len(fields))

	for _, f := range fields {
		prior, hasPrior := prev[f.Name]

		if hasPrior && prior.Match && !prior.HasConflict && prior.Confidence >= carryOver {
			next[f.Name] = prior
			continue
		}

		hits := collectHits(f.Name, extracted, docOrder)

		switch {
		case len(hits) == 0:
			if hasPrior {
				next[f.Name] = prior
			} else {
				next[f.Name] = model.EmptyNode()
			}
		case len(hits) == 1:
			next[f.Name] = hits[0]
		default:
			next[f.Name] = mergeHits(hits)
		}
	}

	return next
}

func collectHits(field string, extracted map[string]model.ResultSet, docOrder []string) []model.ExtractionNode {
	var hits []model.ExtractionNode
	for _, docID := range docOrder {
		nodes, ok := extracted[docID]
		if !ok {
			continue
		}
		if node, ok := nodes[field]; ok && node.Match {
			hits = append(hits, node)
		}
	}
	return hits
}

func mergeHits(hits []model.ExtractionNode) model.ExtractionNode {
	unanimous := true
	for _, h := range hits[1:] {
		if !h.Value.Equal(hits[0].Value) {
			unanimous = false
			break
		}
	}

	if unanimous {
		sum := 0
		explanations := make([]string, 0, len(hits))
		for _, h := range hits {
			sum += h.Confidence
			if !h.Explanation.IsNull() {
				explanations = append(explanations, h.Explanation.String())
			}
		}
		return model.ExtractionNode{
			Match:       true,
			Value:       hits[0].Value,
			Explanation: model.StringValue(strings.Join(explanations, ", ")),
			Confidence:  sum / len(hits),
		}
	}

	values := make([]string, 0, len(hits))
	explanations := make([]string, 0, len(hits))
	minConf := hits[0].Confidence
	for _, h := range hits {
		values = append(values, h.Value.String())
		explanations = append(explanations, h.Explanation.String())
		if h.Confidence < minConf {
			minConf = h.Confidence
		}
	}
	return model.ExtractionNode{
		Match:       true,
		Value:       model.ListValue(values),
		Explanation: model.ListValue(explanations),
		Confidence:  minConf,
		HasConflict: true,
	}
}
