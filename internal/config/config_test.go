package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/rsql"
)

// clearEnv unsets every variable Load reads so ambient settings cannot leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigFile,
		"DXLINK_BASE_URL",
		"MOLGENIS_APPS_HOST",
		"MOLGENIS_APPS_SCHEMA",
		"DXLINK_MEMBERSHIP_PARENS",
		"DXLINK_UNICODE_FORM",
		"DXLINK_HISTORY_DB",
		"DXLINK_LISTEN",
		"DXLINK_PRESETS",
		"DXLINK_HTTP_TIMEOUT",
		"DXLINK_HTTP_RETRIES",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadWith(Options{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "", c.BaseURL)
	assert.Equal(t, "https://diagnostics-acc.molgeniscloud.org", c.Host)
	assert.Equal(t, "umdm", c.Schema)
	assert.Equal(t, "literal", c.MembershipParens)
	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, 30*time.Second, c.HTTP.Timeout)
	assert.Equal(t, 0, c.HTTP.Retries)
	assert.NotEmpty(t, c.HistoryDB)
	assert.Equal(t, rsql.ParensLiteral, c.ParenStyle())
	assert.Equal(t, filter.UnicodeAsIs, c.Unicode())
	assert.Equal(t, "https://diagnostics-acc.molgeniscloud.org/umdm", c.SchemaURL())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", `
base_url: https://diagnostics.example.org
host: https://backend.example.org
schema: rare
membership_parens: encoded
unicode_form: nfc
history_db: /tmp/dxlink-test.db
listen: 127.0.0.1:9000
presets: presets.yaml
http:
  timeout: 5s
  retries: 2
`)

	c, err := LoadWith(Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "https://diagnostics.example.org", c.BaseURL)
	assert.Equal(t, "https://backend.example.org", c.Host)
	assert.Equal(t, "rare", c.Schema)
	assert.Equal(t, rsql.ParensEncoded, c.ParenStyle())
	assert.Equal(t, filter.UnicodeNFC, c.Unicode())
	assert.Equal(t, "/tmp/dxlink-test.db", c.HistoryDB)
	assert.Equal(t, "127.0.0.1:9000", c.Listen)
	assert.Equal(t, "presets.yaml", c.Presets)
	assert.Equal(t, 5*time.Second, c.HTTP.Timeout)
	assert.Equal(t, 2, c.HTTP.Retries)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "dxlink.yaml", "schema: rare\n")
	t.Setenv("MOLGENIS_APPS_SCHEMA", "umdm2")

	c, err := LoadWith(Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "umdm2", c.Schema)
}

func TestLoad_DefaultFileInDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, DefaultFile, "listen: :9999\n")

	c, err := LoadWith(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, ":9999", c.Listen)
}

func TestLoad_ConfigFromEnvVariable(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "elsewhere.yaml", "schema: fromenv\n")
	t.Setenv(EnvConfigFile, path)

	c, err := LoadWith(Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "fromenv", c.Schema)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "DXLINK_BASE_URL=https://dotenv.example.org\n")
	t.Cleanup(func() { os.Unsetenv("DXLINK_BASE_URL") })

	c, err := LoadWith(Options{Dir: dir, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.org", c.BaseURL)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := LoadWith(Options{Dir: dir, EnvFile: filepath.Join(dir, ".env")})
	assert.NoError(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadWith(Options{Path: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad parens", "membership_parens: curly\n", "membership_parens"},
		{"bad unicode form", "unicode_form: nfkc\n", "unicode_form"},
		{"relative host", "host: diagnostics.example.org\n", "host must be an absolute URL"},
		{"host with path", "host: https://example.org/umdm\n", "host must not carry a path"},
		{"base with query", "base_url: https://example.org/?x=1\n", "query"},
		{"negative retries", "http:\n  retries: -1\n", "http.retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeFile(t, t.TempDir(), "dxlink.yaml", tt.content)

			_, err := LoadWith(Options{Path: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_BaseURLWithPath(t *testing.T) {
	c := Config{
		BaseURL:          "https://example.org/molgenis/",
		Host:             "https://example.org",
		Schema:           "umdm",
		MembershipParens: "literal",
		HTTP:             HTTP{Timeout: time.Second},
	}
	assert.NoError(t, c.Validate())
}

func TestValidate_ZeroTimeout(t *testing.T) {
	c := Config{Host: "https://example.org", Schema: "umdm"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http.timeout")
}
