// Package config loads the glassroom configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional config
// file (YAML, JSON or TOML), and GLASSROOM_* environment variables. An
// optional .env file is loaded into the environment first; variables that
// are already set win over it. The merged result is checked against an
// embedded CUE schema.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/roach88/glassroom/internal/cache"
	"github.com/roach88/glassroom/internal/rest"
	"github.com/roach88/glassroom/internal/session"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GLASSROOM"

// Redacted replaces secrets in rendered output.
const Redacted = "REDACTED"

//go:embed schema.cue
var schemaSource []byte

// Config is the effective configuration.
type Config struct {
	BaseURL          string        `mapstructure:"base_url" yaml:"base_url"`
	AccessToken      string        `mapstructure:"access_token" yaml:"access_token"`
	CacheDir         string        `mapstructure:"cache_dir" yaml:"cache_dir"`
	CacheBackend     cache.Backend `mapstructure:"cache_backend" yaml:"cache_backend"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	MaxRetries       int           `mapstructure:"max_retries" yaml:"max_retries"`
	RegistryCapacity int           `mapstructure:"registry_capacity" yaml:"registry_capacity"`
	LogLevel         string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat        string        `mapstructure:"log_format" yaml:"log_format"`
	Environment      string        `mapstructure:"environment" yaml:"environment"`
	RollbarToken     string        `mapstructure:"rollbar_token" yaml:"rollbar_token"`
}

// Load reads the configuration. configFile and envFile are both optional;
// a missing envFile is ignored, a missing configFile is an error.
func Load(configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load env file %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", rest.DefaultBaseURL)
	v.SetDefault("access_token", "")
	v.SetDefault("cache_dir", defaultCacheDir())
	v.SetDefault("cache_backend", string(cache.BackendFile))
	v.SetDefault("request_timeout", rest.DefaultTimeout)
	v.SetDefault("max_retries", rest.DefaultRetries)
	v.SetDefault("registry_capacity", session.DefaultCapacity)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("environment", "development")
	v.SetDefault("rollbar_token", "")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".glassroom-cache"
	}
	return filepath.Join(dir, "glassroom")
}

// ValidationError lists the fields rejected by the schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks c against the embedded schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(ctx.Encode(c.fields()))
	err := value.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	verr := &ValidationError{}
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := e.Path(); len(path) > 0 {
			msg = strings.Join(path, ".") + ": " + msg
		}
		verr.Problems = append(verr.Problems, msg)
	}
	if len(verr.Problems) == 0 {
		verr.Problems = []string{err.Error()}
	}
	return verr
}

// fields is the schema view of c. Durations are nanoseconds.
func (c *Config) fields() map[string]any {
	return map[string]any{
		"base_url":          c.BaseURL,
		"access_token":      c.AccessToken,
		"cache_dir":         c.CacheDir,
		"cache_backend":     string(c.CacheBackend),
		"request_timeout":   int64(c.RequestTimeout),
		"max_retries":       c.MaxRetries,
		"registry_capacity": c.RegistryCapacity,
		"log_level":         c.LogLevel,
		"log_format":        c.LogFormat,
		"environment":       c.Environment,
		"rollbar_token":     c.RollbarToken,
	}
}

// Redact returns a copy of c with secrets replaced by Redacted.
func (c Config) Redact() Config {
	if c.AccessToken != "" {
		c.AccessToken = Redacted
	}
	if c.RollbarToken != "" {
		c.RollbarToken = Redacted
	}
	return c
}

// YAML renders the redacted configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c.Redact())
}
