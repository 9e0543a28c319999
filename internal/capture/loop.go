package capture

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pagoandino/capture-cli/internal/model"
)

// Phase names the loop's states.
type Phase string

const (
	PhaseExtracting  Phase = "extracting"
	PhaseReconciling Phase = "reconciling"
	PhaseResolving   Phase = "resolving"
	PhaseRouting     Phase = "routing"
	PhaseTerminated  Phase = "terminated"
)

// Engine drives the plan, extract, reconcile, resolve, route loop over a
// document source until results are sufficient or no new evidence exists.
type Engine struct {
	extractor *Extractor
	resolver  Resolver
	source    Source

	carryOver   int
	resolveOpts ResolveOptions
}

// EngineConfig tunes the loop thresholds.
type EngineConfig struct {
	CarryOverConfidence    int
	ConfidenceThreshold    int
	ClearConflictOnResolve bool
}

// NewEngine wires the loop collaborators together.
func NewEngine(extractor *Extractor, resolver Resolver, source Source, cfg EngineConfig) *Engine {
	carryOver := cfg.CarryOverConfidence
	if carryOver <= 0 {
		carryOver = DefaultCarryOverConfidence
	}
	return &Engine{
		extractor: extractor,
		resolver:  resolver,
		source:    source,
		carryOver: carryOver,
		resolveOpts: ResolveOptions{
			Threshold:              cfg.ConfidenceThreshold,
			ClearConflictOnResolve: cfg.ClearConflictOnResolve,
		},
	}
}

// Run executes the capture loop to termination and returns the final state.
// All work is sequential; the context cancels between calls and inside the
// extraction pass.
func (e *Engine) Run(ctx context.Context, state *model.CaptureState) (*model.CaptureState, error) {
	phase := PhaseExtracting

	var extracted map[string]model.ResultSet
	var docOrder []string

	for phase != PhaseTerminated {
		if err := ctx.Err(); err != nil {
			return state, eris.Wrap(err, "capture: loop interrupted")
		}

		switch phase {
		case PhaseExtracting:
			pending := PendingFields(state.Fields, state.Results)
			zap.L().Info("planificando iteración",
				zap.Int("iteration", state.Iteration),
				zap.Int("pending_fields", len(pending)),
			)

			var usage model.TokenUsage
			var err error
			extracted, docOrder, usage, err = e.extractor.ExtractPending(ctx, e.source.Documents(), pending)
			if err != nil {
				return state, err
			}
			state.TokenUsage.Add(usage)
			phase = PhaseReconciling

		case PhaseReconciling:
			state.Results = Reconcile(state.Results, state.Fields, extracted, docOrder, e.carryOver)
			phase = PhaseResolving

		case PhaseResolving:
			if err := Resolve(ctx, state.Results, e.resolver, e.resolveOpts); err != nil {
				return state, err
			}
			phase = PhaseRouting

		case PhaseRouting:
			outcome, err := Route(ctx, state, e.source)
			if err != nil {
				return state, err
			}
			if outcome == OutcomeFinish {
				phase = PhaseTerminated
			} else {
				phase = PhaseExtracting
			}
		}
	}

	return state, nil
}
