package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dxlink/internal/filter"
)

const samplePresets = `
presets:
  female-samples:
    entity: umdm_sample
    filters:
      gender: female
      country: Australia, New Zealand
      sample.origin: [blood, saliva]
      notes: ~
  variant-search:
    entity: variantdb_variant
    search: BRCA1
`

func TestParsePresets(t *testing.T) {
	p, err := ParsePresets(strings.NewReader(samplePresets))
	require.NoError(t, err)

	assert.Equal(t, []string{"female-samples", "variant-search"}, p.Names())

	female, err := p.Get("female-samples")
	require.NoError(t, err)
	assert.Equal(t, "female-samples", female.Name)
	assert.Equal(t, "umdm_sample", female.Entity)
	assert.Equal(t, []string{"gender", "country", "sample.origin", "notes"}, female.Filters.Fields())

	origin, ok := female.Filters.Get("sample.origin")
	require.True(t, ok)
	assert.Equal(t, "blood,saliva", *origin)

	notes, ok := female.Filters.Get("notes")
	require.True(t, ok)
	assert.Nil(t, notes)

	search, err := p.Get("variant-search")
	require.NoError(t, err)
	assert.Equal(t, "BRCA1", search.Search)
	assert.Equal(t, 0, search.Filters.Len())
}

func TestParsePresets_FiltersBuild(t *testing.T) {
	p, err := ParsePresets(strings.NewReader(samplePresets))
	require.NoError(t, err)

	female, err := p.Get("female-samples")
	require.NoError(t, err)

	fragments, err := filter.BuildFrom(&female.Filters)
	require.NoError(t, err)
	assert.Len(t, fragments, 3)
}

func TestParsePresets_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown preset key",
			doc:     "presets:\n  a:\n    entity: umdm_sample\n    colour: red\n",
			wantErr: "colour",
		},
		{
			name:    "unknown top-level key",
			doc:     "links: {}\n",
			wantErr: "links",
		},
		{
			name:    "invalid entity",
			doc:     "presets:\n  a:\n    entity: sample\n",
			wantErr: "INVALID_ENTITY",
		},
		{
			name:    "filters not a mapping",
			doc:     "presets:\n  a:\n    entity: umdm_sample\n    filters:\n      - gender\n",
			wantErr: "mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePresets(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParsePresets_Empty(t *testing.T) {
	p, err := ParsePresets(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestPresets_GetUnknown(t *testing.T) {
	_, err := Presets{}.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "presets.yaml", samplePresets)

	p, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Len(t, p, 2)

	none, err := LoadPresets("")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = LoadPresets(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
