package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagoandino/capture-cli/internal/model"
)

func fieldSet(names ...string) model.FieldSet {
	fs := make(model.FieldSet, 0, len(names))
	for _, n := range names {
		fs = append(fs, model.FieldDescriptor{Name: n, Description: n})
	}
	return fs
}

func hit(value string, confidence int) model.ExtractionNode {
	return model.ExtractionNode{
		Match:       true,
		Value:       model.StringValue(value),
		Explanation: model.StringValue("encontrado en " + value),
		Confidence:  confidence,
	}
}

func TestReconcileCarryOverIsIdempotent(t *testing.T) {
	prev := model.ResultSet{
		"banco": {
			Match:      true,
			Value:      model.StringValue("Bci"),
			Confidence: 80,
		},
	}
	extracted := map[string]model.ResultSet{
		"doc_b": {"banco": hit("Santander", 95)},
	}

	next := Reconcile(prev, fieldSet("banco"), extracted, []string{"doc_b"}, DefaultCarryOverConfidence)

	assert.Equal(t, prev["banco"], next["banco"])
}

func TestReconcileUnanimousAveragesConfidence(t *testing.T) {
	extracted := map[string]model.ResultSet{
		"doc_a": {"banco": hit("X", 80)},
		"doc_b": {"banco": hit("X", 90)},
	}

	next := Reconcile(model.ResultSet{}, fieldSet("banco"), extracted, []string{"doc_a", "doc_b"}, DefaultCarryOverConfidence)

	node := next["banco"]
	assert.True(t, node.Match)
	assert.Equal(t, "X", node.Value.Single())
	assert.Equal(t, 85, node.Confidence)
	assert.False(t, node.HasConflict)
	assert.Equal(t, "encontrado en X, encontrado en X", node.Explanation.String())
}

func TestReconcileConflictUsesMinimumConfidence(t *testing.T) {
	extracted := map[string]model.ResultSet{
		"doc_a": {"banco": hit("A", 90)},
		"doc_b": {"banco": hit("B", 60)},
	}

	next := Reconcile(model.ResultSet{}, fieldSet("banco"), extracted, []string{"doc_a", "doc_b"}, DefaultCarryOverConfidence)

	node := next["banco"]
	assert.True(t, node.Match)
	assert.Equal(t, []string{"A", "B"}, node.Value.Values())
	assert.Equal(t, 60, node.Confidence)
	assert.True(t, node.HasConflict)
}

func TestReconcileHitOrderFollowsDocumentOrder(t *testing.T) {
	extracted := map[string]model.ResultSet{
		"doc_b": {"banco": hit("B", 60)},
		"doc_a": {"banco": hit("A", 90)},
	}

	next := Reconcile(model.ResultSet{}, fieldSet("banco"), extracted, []string{"doc_b", "doc_a"}, DefaultCarryOverConfidence)

	assert.Equal(t, []string{"B", "A"}, next["banco"].Value.Values())
}

func TestReconcileSingleHitAdoptedVerbatim(t *testing.T) {
	extracted := map[string]model.ResultSet{
		"doc_a": {"rut_comercio": hit("76123456-7", 95)},
	}

	next := Reconcile(model.ResultSet{}, fieldSet("rut_comercio"), extracted, []string{"doc_a"}, DefaultCarryOverConfidence)

	node := next["rut_comercio"]
	assert.True(t, node.Match)
	assert.Equal(t, "76123456-7", node.Value.Single())
	assert.Equal(t, 95, node.Confidence)
	assert.False(t, node.HasConflict)
}

func TestReconcileNoHitsSynthesizesEmptyNode(t *testing.T) {
	next := Reconcile(model.ResultSet{}, fieldSet("banco"), nil, nil, DefaultCarryOverConfidence)

	node := next["banco"]
	assert.False(t, node.Match)
	assert.True(t, node.Value.IsNull())
	assert.Zero(t, node.Confidence)
	assert.False(t, node.HasConflict)
}

func TestReconcileNoHitsKeepsPriorNode(t *testing.T) {
	prior := model.ExtractionNode{
		Match:       true,
		Value:       model.ListValue([]string{"A", "B"}),
		Confidence:  40,
		HasConflict: true,
	}
	prev := model.ResultSet{"banco": prior}

	// Conflicting nodes fail the carry-over check but survive a hitless pass.
	next := Reconcile(prev, fieldSet("banco"), nil, nil, DefaultCarryOverConfidence)

	assert.Equal(t, prior, next["banco"])
}

func TestReconcileLowConfidencePriorGetsRemerged(t *testing.T) {
	prev := model.ResultSet{
		"banco": {Match: true, Value: model.StringValue("Bci"), Confidence: 5},
	}
	extracted := map[string]model.ResultSet{
		"doc_b": {"banco": hit("Santander", 95)},
	}

	next := Reconcile(prev, fieldSet("banco"), extracted, []string{"doc_b"}, DefaultCarryOverConfidence)

	assert.Equal(t, "Santander", next["banco"].Value.Single())
	assert.Equal(t, 95, next["banco"].Confidence)
}

func TestReconcileDoesNotMutatePrevious(t *testing.T) {
	prev := model.ResultSet{
		"banco": {Match: true, Value: model.StringValue("Bci"), Confidence: 5},
	}
	extracted := map[string]model.ResultSet{
		"doc_a": {"banco": hit("Santander", 95)},
	}

	_ = Reconcile(prev, fieldSet("banco"), extracted, []string{"doc_a"}, DefaultCarryOverConfidence)

	assert.Equal(t, "Bci", prev["banco"].Value.Single())
}
