package capture

import (
	"context"

	"go.uber.org/zap"
)

// AutoResolver applies a non-interactive policy: low-confidence values are
// kept as is, conflicts settle on the first candidate in document order.
// Per-hit confidences are gone after merging, so first-seen is the only
// deterministic choice left.
type AutoResolver struct{}

func (AutoResolver) ResolveLowConfidence(_ context.Context, field, value string, confidence int) (string, error) {
	zap.L().Info("confirmando valor de baja confianza automáticamente",
		zap.String("field", field),
		zap.Int("confidence", confidence),
	)
	return value, nil
}

func (AutoResolver) ResolveConflict(_ context.Context, field string, values []string) (string, error) {
	zap.L().Info("resolviendo conflicto automáticamente con el primer valor",
		zap.String("field", field),
		zap.Int("candidates", len(values)),
	)
	return values[0], nil
}
