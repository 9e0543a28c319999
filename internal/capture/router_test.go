package capture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagoandino/capture-cli/internal/model"
)

type fakeSource struct {
	docs      []*model.Document
	onRefresh func(*fakeSource)
	refreshes int
}

func (f *fakeSource) Documents() []*model.Document { return f.docs }

func (f *fakeSource) Refresh(context.Context) error {
	f.refreshes++
	if f.onRefresh != nil {
		f.onRefresh(f)
	}
	return nil
}

func (f *fakeSource) Count() int { return len(f.docs) }

func sufficientState() *model.CaptureState {
	state := model.NewCaptureState(fieldSet("a"), 5)
	state.Results["a"] = model.ExtractionNode{Match: true, Value: model.StringValue("x"), Confidence: 90}
	return state
}

func insufficientState() *model.CaptureState {
	state := model.NewCaptureState(fieldSet("a", "b"), 5)
	state.Results["a"] = model.ExtractionNode{Match: true, Value: model.StringValue("x"), Confidence: 90}
	state.Results["b"] = model.EmptyNode()
	return state
}

func TestRouteSufficientTerminates(t *testing.T) {
	state := sufficientState()
	source := &fakeSource{}

	outcome, err := Route(context.Background(), state, source)
	require.NoError(t, err)

	assert.Equal(t, OutcomeFinish, outcome)
	assert.True(t, state.SufficientInfo)
	assert.Equal(t, 1, state.Iteration)
	assert.Zero(t, source.refreshes, "no refresh poll when results are sufficient")
}

func TestRouteForcesTerminationWithoutNewDocuments(t *testing.T) {
	state := insufficientState()
	source := &fakeSource{docs: []*model.Document{{ID: "doc_1"}}}

	outcome, err := Route(context.Background(), state, source)
	require.NoError(t, err)

	assert.Equal(t, OutcomeFinish, outcome)
	assert.False(t, state.SufficientInfo)
	assert.Equal(t, 1, source.refreshes)
}

func TestRouteContinuesWhenDocumentsGrow(t *testing.T) {
	state := insufficientState()
	source := &fakeSource{
		docs: []*model.Document{{ID: "doc_1"}},
		onRefresh: func(f *fakeSource) {
			f.docs = append(f.docs, &model.Document{ID: "doc_2", State: model.DocumentPending})
		},
	}

	outcome, err := Route(context.Background(), state, source)
	require.NoError(t, err)

	assert.Equal(t, OutcomeContinue, outcome)
}

func TestRouteIncrementsIterationExactlyOncePerPass(t *testing.T) {
	state := insufficientState()
	source := &fakeSource{}

	_, err := Route(context.Background(), state, source)
	require.NoError(t, err)
	_, err = Route(context.Background(), state, source)
	require.NoError(t, err)

	assert.Equal(t, 2, state.Iteration)
}
