package capture

import (
	"context"

	"go.uber.org/zap"

	"github.com/pagoandino/capture-cli/internal/model"
)

// Outcome is the routing decision after each iteration.
type Outcome int

const (
	// OutcomeContinue loops back to planning with new evidence available.
	OutcomeContinue Outcome = iota
	// OutcomeFinish terminates the loop, either because every field matched
	// or because no new documents can arrive.
	OutcomeFinish
)

// Source supplies documents to the loop. Refresh polls the underlying
// directory for new arrivals between iterations.
type Source interface {
	Documents() []*model.Document
	Refresh(ctx context.Context) error
	Count() int
}

// Route recomputes sufficiency, advances the iteration counter, and decides
// whether another pass is worthwhile. When results are insufficient it polls
// the source once; if the document count did not grow, it forces termination
// rather than spin on evidence that will never appear.
func Route(ctx context.Context, state *model.CaptureState, source Source) (Outcome, error) {
	state.Iteration++

	missing := state.Results.Missing(state.Fields)
	state.SufficientInfo = len(missing) == 0

	if state.SufficientInfo {
		zap.L().Info("información suficiente, terminando captura",
			zap.Int("iteration", state.Iteration),
		)
		return OutcomeFinish, nil
	}

	zap.L().Info("información insuficiente",
		zap.Int("iteration", state.Iteration),
		zap.Strings("missing_fields", missing),
	)

	before := source.Count()
	if err := source.Refresh(ctx); err != nil {
		return OutcomeFinish, err
	}

	if source.Count() == before {
		zap.L().Info("sin documentos nuevos, forzando término de la captura")
		return OutcomeFinish, nil
	}

	zap.L().Info("documentos nuevos detectados, iterando nuevamente",
		zap.Int("documents", source.Count()),
	)
	return OutcomeContinue, nil
}
