package capture

import "github.com/pagoandino/capture-cli/internal/model"

// PendingFields returns the fields still worth extracting this iteration.
// A field is settled once a node holds a match; everything else, including
// fields with a failed prior attempt, goes back into the request.
func PendingFields(fields model.FieldSet, results model.ResultSet) model.FieldSet {
	pending := make(model.FieldSet, 0, len(fields))
	for _, f := range fields {
		node, ok := results[f.Name]
		if ok && node.Match {
			continue
		}
		pending = append(pending, f)
	}
	return pending
}
