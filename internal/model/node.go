package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
)

// Value is a field value that the extraction model may return as null, a
// single string, or an ordered list of candidate strings. Lists only appear
// after reconciliation flags a conflict.
type Value struct {
	vals []string
	list bool
}

// StringValue wraps a single string value.
func StringValue(s string) Value {
	return Value{vals: []string{s}}
}

// ListValue wraps an ordered list of candidate values.
func ListValue(vs []string) Value {
	return Value{vals: vs, list: true}
}

// IsNull reports whether no value is present.
func (v Value) IsNull() bool {
	return !v.list && len(v.vals) == 0
}

// IsList reports whether the value is a candidate list.
func (v Value) IsList() bool {
	return v.list
}

// Len returns the number of candidates (0 or 1 for scalar values).
func (v Value) Len() int {
	return len(v.vals)
}

// Single returns the scalar value, or the first candidate of a list. Empty
// string for null values.
func (v Value) Single() string {
	if len(v.vals) == 0 {
		return ""
	}
	return v.vals[0]
}

// Values returns all candidates in order.
func (v Value) Values() []string {
	return v.vals
}

// Equal compares two values by exact string equality, candidate by
// candidate. No normalization is applied.
func (v Value) Equal(o Value) bool {
	if v.list != o.list || len(v.vals) != len(o.vals) {
		return false
	}
	for i := range v.vals {
		if v.vals[i] != o.vals[i] {
			return false
		}
	}
	return true
}

// String renders the value for display: empty for null, the scalar, or a
// comma-joined candidate list.
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}
	if !v.list {
		return v.vals[0]
	}
	out := ""
	for i, s := range v.vals {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// MarshalJSON encodes null, a bare string, or a string array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	if v.list {
		return json.Marshal(v.vals)
	}
	return json.Marshal(v.vals[0])
}

// UnmarshalJSON accepts null, strings, string arrays, and bare scalars
// (numbers, booleans) which are stringified.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "model: unmarshal value")
	}
	*v = ValueFrom(raw)
	return nil
}

// ValueFrom converts a decoded JSON value into a Value. Non-string scalars
// are stringified; list elements are stringified individually.
func ValueFrom(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Value{}
	case string:
		return StringValue(t)
	case []any:
		vs := make([]string, 0, len(t))
		for _, e := range t {
			vs = append(vs, scalarString(e))
		}
		return ListValue(vs)
	case float64:
		return StringValue(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		return StringValue(strconv.FormatBool(t))
	default:
		return StringValue(fmt.Sprintf("%v", t))
	}
}

func scalarString(raw any) string {
	switch t := raw.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ExtractionNode is the atomic result for one field from one source: one
// document in one iteration, or the accepted merge of several.
type ExtractionNode struct {
	Match       bool  `json:"match"`
	Value       Value `json:"value"`
	Explanation Value `json:"explanation"`
	Confidence  int   `json:"confidence"`
	HasConflict bool  `json:"has_conflict"`
}

// EmptyNode returns the canonical node for a field with no evidence.
func EmptyNode() ExtractionNode {
	return ExtractionNode{}
}

// ResultSet maps each field name to its single accepted node. It is the
// only state that survives across iterations.
type ResultSet map[string]ExtractionNode

// Clone returns a shallow copy. Nodes are value types, so the copy is
// independent of the original.
func (rs ResultSet) Clone() ResultSet {
	out := make(ResultSet, len(rs))
	for k, v := range rs {
		out[k] = v
	}
	return out
}

// Missing returns the tracked fields that still lack a matched node, in
// field order.
func (rs ResultSet) Missing(fields FieldSet) []string {
	var missing []string
	for _, f := range fields {
		if node, ok := rs[f.Name]; !ok || !node.Match {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Sufficient reports whether every tracked field has a matched node.
func (rs ResultSet) Sufficient(fields FieldSet) bool {
	return len(rs.Missing(fields)) == 0
}
