package bff

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultFuzzyCutoff is the minimum token-set score for a fuzzy activity
// match to be accepted.
const DefaultFuzzyCutoff = 80

// ComercioClient resolves economic activity labels to their codes and
// fetches the MCC and business-line mapping for an activity.
type ComercioClient struct {
	baseURL        string
	activitiesPath string
	mccPath        string
	fuzzyCutoff    int
	t              *transport

	activities []EconomicActivity
}

// EconomicActivity is one activity entry from the reference list.
type EconomicActivity struct {
	ID      int    `json:"id"`
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Enabled int    `json:"enabled"`
}

type activitiesResponse struct {
	Date    string             `json:"date"`
	Message string             `json:"message"`
	Data    []EconomicActivity `json:"data"`
}

type mccEntry struct {
	MCC    int `json:"mcc"`
	IDGiro int `json:"idGiro"`
}

// NewComercioClient creates a client for the commerce reference endpoints.
// fuzzyCutoff values at or below zero fall back to the default.
func NewComercioClient(baseURL, activitiesPath, mccPath, token string, fuzzyCutoff int, opts ...Option) *ComercioClient {
	if fuzzyCutoff <= 0 {
		fuzzyCutoff = DefaultFuzzyCutoff
	}
	return &ComercioClient{
		baseURL:        baseURL,
		activitiesPath: activitiesPath,
		mccPath:        mccPath,
		fuzzyCutoff:    fuzzyCutoff,
		t:              newTransport(token, opts...),
	}
}

// Load fetches the economic activity reference list. It must be called
// before ActivityCode.
func (c *ComercioClient) Load(ctx context.Context) error {
	var resp activitiesResponse
	if err := c.t.getJSON(ctx, c.baseURL+c.activitiesPath, &resp); err != nil {
		return eris.Wrap(err, "bff: fetch economic activities")
	}
	c.activities = resp.Data
	zap.L().Info("información de actividades económicas obtenida con éxito",
		zap.Int("activities", len(c.activities)),
	)
	return nil
}

// ActivityCode resolves a free-text activity label. Exact match on the
// standardized name wins; otherwise the best fuzzy token-set score above
// the cutoff does. Disabled activities never match.
func (c *ComercioClient) ActivityCode(activity string) (int, bool) {
	input := standardizeName(activity)
	if input == "" {
		return 0, false
	}

	for _, item := range c.activities {
		if standardizeName(item.Name) == input && item.Enabled == 1 {
			return item.Code, true
		}
	}

	zap.L().Info("no encontramos actividad económica idéntica, usaremos lógica difusa",
		zap.String("activity", activity),
	)

	bestScore := 0
	bestCode := 0
	for _, item := range c.activities {
		if item.Enabled != 1 {
			continue
		}
		score := tokenSetScore(input, standardizeName(item.Name))
		if score > bestScore {
			bestScore = score
			bestCode = item.Code
		}
		if bestScore > c.fuzzyCutoff {
			zap.L().Info("actividad económica resuelta con lógica difusa",
				zap.String("activity", activity),
				zap.Int("score", bestScore),
				zap.Int("code", bestCode),
			)
			return bestCode, true
		}
	}

	return 0, false
}

// GiroMCC fetches the MCC and business-line identifier for an activity
// code.
func (c *ComercioClient) GiroMCC(ctx context.Context, activityCode int) (mcc, giro int, err error) {
	url := fmt.Sprintf("%s%s%d", c.baseURL, c.mccPath, activityCode)

	var entries []mccEntry
	if err := c.t.getJSON(ctx, url, &entries); err != nil {
		return 0, 0, eris.Wrapf(err, "bff: fetch mcc info for activity %d", activityCode)
	}
	if len(entries) == 0 {
		return 0, 0, eris.Errorf("bff: no mcc entry for activity %d", activityCode)
	}
	return entries[0].MCC, entries[0].IDGiro, nil
}
