package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFields(t *testing.T) {
	fields := DefaultFields()
	require.Len(t, fields, 16)

	assert.True(t, fields.Contains("rut_comercio"))
	assert.True(t, fields.Contains("banco"))
	assert.False(t, fields.Contains("no_such_field"))

	names := fields.Names()
	assert.Equal(t, "rut_comercio", names[0])
	assert.Len(t, names, 16)
}

func TestLoadFieldsEmptyPathFallsBack(t *testing.T) {
	fields, err := LoadFields("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFields(), fields)
}

func TestLoadFieldsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	yaml := `
- name: rut
  description: RUT del comercio
- name: banco
  description: Banco de la cuenta
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	fields, err := LoadFields(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "rut", fields[0].Name)
	assert.Equal(t, "Banco de la cuenta", fields[1].Description)
}

func TestLoadFieldsErrors(t *testing.T) {
	_, err := LoadFields(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o644))
	_, err = LoadFields(empty)
	assert.Error(t, err)
}
