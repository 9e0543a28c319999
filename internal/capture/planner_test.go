package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagoandino/capture-cli/internal/model"
)

func TestPendingFieldsExcludesMatched(t *testing.T) {
	fields := fieldSet("a", "b")
	results := model.ResultSet{
		"a": {Match: true, Value: model.StringValue("x"), Confidence: 50},
	}

	pending := PendingFields(fields, results)

	assert.Equal(t, []string{"b"}, pending.Names())
}

func TestPendingFieldsRetriesUnmatched(t *testing.T) {
	fields := fieldSet("a", "b")
	results := model.ResultSet{
		"a": {Match: false},
	}

	pending := PendingFields(fields, results)

	assert.Equal(t, []string{"a", "b"}, pending.Names())
}

func TestPendingFieldsKeepsLowConfidenceMatches(t *testing.T) {
	fields := fieldSet("a")
	results := model.ResultSet{
		"a": {Match: true, Value: model.StringValue("x"), Confidence: 5},
	}

	// Matched fields are never re-queried; correction happens at resolution.
	pending := PendingFields(fields, results)

	assert.Empty(t, pending)
}

func TestPendingFieldsEmptyResultSetReturnsAll(t *testing.T) {
	fields := fieldSet("a", "b", "c")
	pending := PendingFields(fields, model.ResultSet{})
	assert.Equal(t, fields.Names(), pending.Names())
}
