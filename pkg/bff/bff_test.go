package bff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagoandino/capture-cli/internal/resilience"
)

func noRetry() Option {
	return WithRetryConfig(resilience.RetryConfig{MaxAttempts: 1})
}

func accountServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		resp := accountReference{
			Banks: []ReferenceItem{
				{Code: 1, Name: "Banco de Chile"},
				{Code: 12, Name: "Banco Estado"},
				{Code: 16, Name: "Bci"},
			},
			AccountTypes: []ReferenceItem{
				{Code: 1, Name: "Corriente"},
				{Code: 2, Name: "Vista"},
				{Code: 3, Name: "Ahorro"},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestCuentaBankCodeExactMatch(t *testing.T) {
	srv := accountServer(t)
	defer srv.Close()

	c := NewCuentaClient(srv.URL, "test-token", noRetry())
	require.NoError(t, c.Load(context.Background()))

	code, ok := c.BankCode("banco estado")
	require.True(t, ok)
	assert.Equal(t, 12, code)
}

func TestCuentaBankCodeSubstringFallback(t *testing.T) {
	srv := accountServer(t)
	defer srv.Close()

	c := NewCuentaClient(srv.URL, "test-token", noRetry())
	require.NoError(t, c.Load(context.Background()))

	code, ok := c.BankCode("Estado")
	require.True(t, ok)
	assert.Equal(t, 12, code)
}

func TestCuentaBankCodeNoMatch(t *testing.T) {
	srv := accountServer(t)
	defer srv.Close()

	c := NewCuentaClient(srv.URL, "test-token", noRetry())
	require.NoError(t, c.Load(context.Background()))

	_, ok := c.BankCode("Banco Inexistente")
	assert.False(t, ok)
}

func TestCuentaAccountTypeCodeExactOnly(t *testing.T) {
	srv := accountServer(t)
	defer srv.Close()

	c := NewCuentaClient(srv.URL, "test-token", noRetry())
	require.NoError(t, c.Load(context.Background()))

	code, ok := c.AccountTypeCode("ahorro")
	require.True(t, ok)
	assert.Equal(t, 3, code)

	_, ok = c.AccountTypeCode("aho")
	assert.False(t, ok, "account types do not fall back to substring matching")
}

func TestCuentaLoadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewCuentaClient(srv.URL, "bad-token", noRetry())
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCuentaLoadRetriesTransientStatus(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(accountReference{}))
	}))
	defer srv.Close()

	c := NewCuentaClient(srv.URL, "test-token", WithRetryConfig(resilience.RetryConfig{
		MaxAttempts:    2,
		InitialBackoff: 1,
	}))
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 2, attempts)
}

func activitiesServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/activities", func(w http.ResponseWriter, _ *http.Request) {
		resp := activitiesResponse{
			Date:    "2026-09-01",
			Message: "ok",
			Data: []EconomicActivity{
				{ID: 1, Code: 471100, Name: "Venta al por menor en almacenes", Enabled: 1},
				{ID: 2, Code: 107100, Name: "Elaboración de pan, panadería", Enabled: 1},
				{ID: 3, Code: 561000, Name: "Restaurantes y servicios de comida", Enabled: 0},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	mux.HandleFunc("/mcc/", func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([]mccEntry{{MCC: 5411, IDGiro: 23}}))
	})
	return httptest.NewServer(mux)
}

func TestComercioActivityCodeExactMatchIgnoresAccents(t *testing.T) {
	srv := activitiesServer(t)
	defer srv.Close()

	c := NewComercioClient(srv.URL, "/activities", "/mcc/", "test-token", 0, noRetry())
	require.NoError(t, c.Load(context.Background()))

	code, ok := c.ActivityCode("elaboracion de pan, panaderia")
	require.True(t, ok)
	assert.Equal(t, 107100, code)
}

func TestComercioActivityCodeFuzzyMatch(t *testing.T) {
	srv := activitiesServer(t)
	defer srv.Close()

	c := NewComercioClient(srv.URL, "/activities", "/mcc/", "test-token", 0, noRetry())
	require.NoError(t, c.Load(context.Background()))

	code, ok := c.ActivityCode("panadería y elaboración de pan")
	require.True(t, ok)
	assert.Equal(t, 107100, code)
}

func TestComercioActivityCodeDisabledNeverMatches(t *testing.T) {
	srv := activitiesServer(t)
	defer srv.Close()

	c := NewComercioClient(srv.URL, "/activities", "/mcc/", "test-token", 0, noRetry())
	require.NoError(t, c.Load(context.Background()))

	_, ok := c.ActivityCode("Restaurantes y servicios de comida")
	assert.False(t, ok)
}

func TestComercioActivityCodeNoMatch(t *testing.T) {
	srv := activitiesServer(t)
	defer srv.Close()

	c := NewComercioClient(srv.URL, "/activities", "/mcc/", "test-token", 0, noRetry())
	require.NoError(t, c.Load(context.Background()))

	_, ok := c.ActivityCode("astronáutica")
	assert.False(t, ok)
}

func TestComercioGiroMCC(t *testing.T) {
	srv := activitiesServer(t)
	defer srv.Close()

	c := NewComercioClient(srv.URL, "/activities", "/mcc/", "test-token", 0, noRetry())

	mcc, giro, err := c.GiroMCC(context.Background(), 471100)
	require.NoError(t, err)
	assert.Equal(t, 5411, mcc)
	assert.Equal(t, 23, giro)
}

func TestStandardizeName(t *testing.T) {
	assert.Equal(t, "panaderia", standardizeName("  Panadería "))
	assert.Equal(t, "nandu", standardizeName("Ñandú"))
}

func TestTokenSetScore(t *testing.T) {
	assert.Equal(t, 100, tokenSetScore("venta de pan", "pan venta de"))
	assert.Greater(t, tokenSetScore("venta de pan", "venta al por menor de pan"), 80)
	assert.Less(t, tokenSetScore("astronautica", "venta al por menor"), 50)
}
