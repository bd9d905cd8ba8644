package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvDefaultsPath names the environment variable holding the path of the
// optional host defaults file.
const EnvDefaultsPath = "ERLCALL_CONFIG"

// Name domains for the ephemeral node, mirroring erl's -sname/-name split.
const (
	NameDomainAuto  = "auto"
	NameDomainShort = "short"
	NameDomainLong  = "long"
)

// Defaults holds host-level settings read from the yaml file named by
// $ERLCALL_CONFIG. Everything here is a fallback: module arguments from
// the play always win.
type Defaults struct {
	// Erl is the Erlang runtime binary to execute. Defaults to "erl"
	// resolved via PATH.
	Erl string `yaml:"erl"`

	// NameDomain selects -sname or -name for the ephemeral node:
	// "short", "long", or "auto" (derive from the target's host part).
	NameDomain string `yaml:"name_domain"`

	// Cookie is used when the play does not pass cookie=.
	Cookie string `yaml:"cookie"`

	// TimeoutMillis is used when the play does not pass timeout=.
	TimeoutMillis int64 `yaml:"timeout_ms"`

	// Journal is the path of the SQLite invocation journal. Empty
	// disables journaling.
	Journal string `yaml:"journal"`
}

// LoadDefaults reads the defaults file named by getenv(EnvDefaultsPath).
// An unset variable or a missing file yields zero-value defaults; an
// unreadable or malformed file is an error, since a host that configures
// a defaults file expects it to be honored.
func LoadDefaults(getenv func(string) string) (Defaults, error) {
	var d Defaults
	path := getenv(EnvDefaultsPath)
	if path == "" {
		return d.normalize(), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d.normalize(), nil
	}
	if err != nil {
		return d, fmt.Errorf("read defaults file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults file %s: %w", path, err)
	}

	switch d.NameDomain {
	case "", NameDomainAuto, NameDomainShort, NameDomainLong:
	default:
		return d, fmt.Errorf("defaults file %s: name_domain must be %q, %q or %q",
			path, NameDomainAuto, NameDomainShort, NameDomainLong)
	}
	if d.TimeoutMillis < 0 {
		return d, fmt.Errorf("defaults file %s: timeout_ms must be non-negative", path)
	}
	return d.normalize(), nil
}

func (d Defaults) normalize() Defaults {
	if d.Erl == "" {
		d.Erl = "erl"
	}
	if d.NameDomain == "" {
		d.NameDomain = NameDomainAuto
	}
	return d
}

// Apply fills cfg's optional fields from the defaults. Only fields the
// play left untouched are overwritten.
func (d Defaults) Apply(cfg *InvocationConfig) {
	if !cfg.cookieSet && d.Cookie != "" {
		cfg.Cookie = d.Cookie
	}
	if !cfg.timeoutSet && d.TimeoutMillis > 0 {
		cfg.Timeout = Timeout{Millis: d.TimeoutMillis}
	}
}
