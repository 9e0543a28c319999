package capture

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pagoandino/capture-cli/internal/model"
)

// ErrParse marks an extraction response that was not valid JSON after
// stripping markdown fences. Callers detect it with eris.Is.
var ErrParse = eris.New("capture: response is not valid JSON")

const unstructuredMarker = "Modelo retornó valor sin estructura, asumiremos baja confianza"

// CleanJSON removes markdown code fences that models often wrap around
// JSON output.
func CleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// ParseResponse parses the raw extraction response into a generic mapping.
// Returns ErrParse when the cleaned text is not a JSON object.
func ParseResponse(raw string) (map[string]any, error) {
	cleaned := CleanJSON(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, eris.Wrap(ErrParse, err.Error())
	}
	return parsed, nil
}

// NormalizeFields turns the raw per-field entries into canonical nodes,
// one per planned field. Missing or null entries become empty nodes,
// structured objects are coerced, and bare scalars become low-trust
// matches at confidence 30.
func NormalizeFields(fields model.FieldSet, parsed map[string]any) model.ResultSet {
	out := make(model.ResultSet, len(fields))
	for _, f := range fields {
		raw, ok := parsed[f.Name]
		if !ok || raw == nil {
			out[f.Name] = model.EmptyNode()
			continue
		}

		obj, ok := raw.(map[string]any)
		if !ok {
			out[f.Name] = model.ExtractionNode{
				Match:       true,
				Value:       model.ValueFrom(raw),
				Explanation: model.StringValue(unstructuredMarker),
				Confidence:  30,
			}
			continue
		}

		out[f.Name] = normalizeObject(obj)
	}
	return out
}

func normalizeObject(obj map[string]any) model.ExtractionNode {
	node := model.ExtractionNode{}

	if m, ok := obj["match"].(bool); ok {
		node.Match = m
	}
	node.Value = model.ValueFrom(obj["value"])
	node.Explanation = model.ValueFrom(obj["explanation"])
	if c, ok := obj["confidence"].(float64); ok {
		node.Confidence = int(c)
	}
	if hc, ok := obj["has_conflict"].(bool); ok {
		node.HasConflict = hc
	}
	return node
}
