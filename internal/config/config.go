package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/rsql"
)

// DefaultFile is read from the working directory when no config path is
// given.
const DefaultFile = "dxlink.yaml"

// EnvConfigFile names the environment variable holding the config path.
const EnvConfigFile = "DXLINK_CONFIG"

// Config is the dxlink configuration, read from YAML with environment
// overrides.
type Config struct {
	// BaseURL prefixes generated links. Empty gives host-relative links.
	BaseURL string `yaml:"base_url" json:"base_url" env:"DXLINK_BASE_URL"`
	// Host is the backend origin used by the proxy and the rows client.
	Host string `yaml:"host" json:"host" env:"MOLGENIS_APPS_HOST" env-default:"https://diagnostics-acc.molgeniscloud.org"`
	// Schema scopes /graphql and /theme.css below Host.
	Schema string `yaml:"schema" json:"schema" env:"MOLGENIS_APPS_SCHEMA" env-default:"umdm"`

	MembershipParens string `yaml:"membership_parens" json:"membership_parens" env:"DXLINK_MEMBERSHIP_PARENS" env-default:"literal"`
	// UnicodeForm normalizes filter values (none, nfc or nfd).
	UnicodeForm string `yaml:"unicode_form" json:"unicode_form" env:"DXLINK_UNICODE_FORM" env-default:"none"`

	HistoryDB string `yaml:"history_db" json:"history_db" env:"DXLINK_HISTORY_DB"`
	Listen    string `yaml:"listen" json:"listen" env:"DXLINK_LISTEN" env-default:":8080"`
	Presets   string `yaml:"presets" json:"presets" env:"DXLINK_PRESETS"`

	HTTP HTTP `yaml:"http" json:"http"`
}

// HTTP configures the REST API client.
type HTTP struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"DXLINK_HTTP_TIMEOUT" env-default:"30s"`
	Retries int           `yaml:"retries" json:"retries" env:"DXLINK_HTTP_RETRIES" env-default:"0"`
}

// Options controls where Load looks for its inputs.
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// EnvFile is a dotenv file loaded before the environment is read.
	// Missing files are skipped.
	EnvFile string
	// Dir is searched for DefaultFile when neither Path nor DXLINK_CONFIG
	// is set. Empty means the working directory.
	Dir string
}

// Load reads configuration from path (or the default locations) with
// environment overrides. See LoadWith.
func Load(path string) (Config, error) {
	return LoadWith(Options{Path: path, EnvFile: ".env"})
}

// LoadWith resolves the config file, applies environment overrides and
// defaults, then validates the result.
//
// Resolution order: opts.Path, $DXLINK_CONFIG, <opts.Dir>/dxlink.yaml.
// When none exists only the environment is read.
func LoadWith(opts Options) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	fileName, err := resolveFile(opts)
	if err != nil {
		return Config{}, err
	}

	var c Config
	if fileName == "" {
		err = cleanenv.ReadEnv(&c)
	} else {
		err = cleanenv.ReadConfig(fileName, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	c = c.defaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func resolveFile(opts Options) (string, error) {
	explicit := opts.Path
	if explicit == "" {
		explicit = os.Getenv(EnvConfigFile)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	candidate := filepath.Join(opts.Dir, DefaultFile)
	if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("config file: %w", err)
	}
	return candidate, nil
}

func (c Config) defaults() Config {
	if c.HistoryDB == "" {
		c.HistoryDB = DefaultHistoryPath()
	}
	return c
}

// Validate checks the values that cleanenv cannot.
func (c Config) Validate() error {
	if c.BaseURL != "" {
		if err := checkAbsolute("base_url", c.BaseURL, true); err != nil {
			return err
		}
	}
	if err := checkAbsolute("host", c.Host, false); err != nil {
		return err
	}
	if c.Schema == "" {
		return fmt.Errorf("config: schema is empty")
	}
	if _, err := rsql.ParseParenStyle(c.MembershipParens); err != nil {
		return fmt.Errorf("config: membership_parens: %w", err)
	}
	if _, err := filter.ParseUnicodeForm(c.UnicodeForm); err != nil {
		return fmt.Errorf("config: unicode_form: %w", err)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("config: http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("config: http.retries must not be negative, got %d", c.HTTP.Retries)
	}
	return nil
}

// ParenStyle returns the validated membership paren style.
func (c Config) ParenStyle() rsql.ParenStyle {
	style, err := rsql.ParseParenStyle(c.MembershipParens)
	if err != nil {
		return rsql.ParensLiteral
	}
	return style
}

// Unicode returns the validated filter value normalization.
func (c Config) Unicode() filter.UnicodeForm {
	form, err := filter.ParseUnicodeForm(c.UnicodeForm)
	if err != nil {
		return filter.UnicodeAsIs
	}
	return form
}

// SchemaURL returns <host>/<schema>, the upstream for schema-scoped paths.
func (c Config) SchemaURL() string {
	return strings.TrimRight(c.Host, "/") + "/" + c.Schema
}

// DefaultHistoryPath returns the history database location under the
// user's config directory, or a file in the working directory when that
// is unknown.
func DefaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dxlink-history.db"
	}
	return filepath.Join(dir, "dxlink", "history.db")
}

func checkAbsolute(key, raw string, allowPath bool) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: %s must be an absolute URL, got %q", key, raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("config: %s must not carry a query or fragment, got %q", key, raw)
	}
	if !allowPath && strings.Trim(u.Path, "/") != "" {
		return fmt.Errorf("config: %s must not carry a path, got %q", key, raw)
	}
	return nil
}
