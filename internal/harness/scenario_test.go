package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/filter_shapes.yaml")
	require.NoError(t, err)

	assert.Equal(t, "filter_shapes", s.Name)
	assert.Equal(t, "https://diagnostics.example.org", s.Config.BaseURL)
	require.NotEmpty(t, s.Steps)

	first := s.Steps[0]
	assert.Equal(t, KindTable, first.Kind)
	assert.Equal(t, []string{"gender", "age", "country", "sample.origin", "group"}, first.Filters.Fields())
	age, ok := first.Filters.Get("age")
	require.True(t, ok)
	assert.Nil(t, age)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: disk
description: "loaded from disk"
steps:
  - kind: search
    entity: umdm_sample
    term: x
`), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", s.Name)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: a\ndescription: b\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: b\nsteps: [{kind: table, entity: umdm_sample}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: a\nsteps: [{kind: table, entity: umdm_sample}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: a\ndescription: b\n",
			wantErr: "steps list is required",
		},
		{
			name:    "missing kind",
			yaml:    "name: a\ndescription: b\nsteps: [{entity: umdm_sample}]\n",
			wantErr: "kind is required",
		},
		{
			name:    "unknown kind",
			yaml:    "name: a\ndescription: b\nsteps: [{kind: graph, entity: umdm_sample}]\n",
			wantErr: `unknown kind "graph"`,
		},
		{
			name:    "missing entity",
			yaml:    "name: a\ndescription: b\nsteps: [{kind: table}]\n",
			wantErr: "entity is required",
		},
		{
			name:    "term on table",
			yaml:    "name: a\ndescription: b\nsteps: [{kind: table, entity: umdm_sample, term: x}]\n",
			wantErr: "term is only valid",
		},
		{
			name:    "filters on search",
			yaml:    "name: a\ndescription: b\nsteps: [{kind: search, entity: umdm_sample, term: x, filters: {a: b}}]\n",
			wantErr: "filters are not valid",
		},
		{
			name:    "negative num",
			yaml:    "name: a\ndescription: b\nsteps: [{kind: rows, entity: umdm_sample, num: -1}]\n",
			wantErr: "num must be non-negative",
		},
		{
			name:    "error with url",
			yaml:    "name: a\ndescription: b\nsteps: [{kind: table, entity: umdm_sample, expect: {error: X, url: /y}}]\n",
			wantErr: "error excludes url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
