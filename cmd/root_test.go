package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagoandino/capture-cli/internal/model"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"capture", "publish", "runs", "fields", "lookup"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestCaptureFlags(t *testing.T) {
	for _, flag := range []string{"auto", "publish", "user", "source"} {
		require.NotNil(t, captureCmd.Flags().Lookup(flag), "missing flag %q", flag)
	}
}

func TestFormatRunsList(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	runs := []model.CaptureRun{
		{
			ID:        "run-1",
			SourceDir: "sources",
			Status:    model.RunStatusComplete,
			Result:    &model.RunResult{Iterations: 2, Sufficient: true},
			CreatedAt: created,
			UpdatedAt: created.Add(90 * time.Second),
		},
		{
			ID:        "run-2",
			SourceDir: "sources",
			Status:    model.RunStatusRunning,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "run-2")
	assert.Contains(t, out, "running")
}

func TestFormatFields(t *testing.T) {
	var buf bytes.Buffer
	formatFields(&buf, model.FieldSet{
		{Name: "rut_comercio", Description: "RUT del comercio"},
		{Name: "banco", Description: "Banco de la cuenta"},
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "rut_comercio")
	assert.Contains(t, out, "Banco de la cuenta")
}
