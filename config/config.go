// Package config loads bridge configuration from YAML, TOML or JSON files.
//
// Documents are checked against the JSON Schema reflected from Config before
// decoding, then the decoded struct is validated field by field.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
)

// Config holds the settings for building a bridge module.
type Config struct {
	// Filename is attributed to source text evaluated by the bridge.
	Filename string `json:"filename,omitempty" yaml:"filename" toml:"filename" validate:"required" jsonschema:"minLength=1,description=Name attributed to evaluated source text"`

	// EvaluatorName is the global never mirrored. Empty disables the filter.
	EvaluatorName string `json:"evaluator_name,omitempty" yaml:"evaluator_name" toml:"evaluator_name" validate:"omitempty,max=64" jsonschema:"description=Global treated as the evaluator entry point"`

	// PrivatePrefix marks globals that are never mirrored. Empty disables the filter.
	PrivatePrefix string `json:"private_prefix,omitempty" yaml:"private_prefix" toml:"private_prefix" validate:"omitempty,max=16" jsonschema:"description=Prefix of private globals"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// LogFormat is text or json.
	LogFormat string `json:"log_format,omitempty" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=text json" jsonschema:"enum=text,enum=json"`

	// Exclude lists globals that are never mirrored.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude" toml:"exclude" validate:"dive,required" jsonschema:"description=Globals never mirrored"`

	// Preload lists script files evaluated before the module is built.
	// Relative paths are resolved against the config file directory.
	Preload []string `json:"preload,omitempty" yaml:"preload" toml:"preload" validate:"dive,required,file" jsonschema:"description=Script files evaluated before mirroring"`

	// FromHost marks evaluations as issued by host code.
	FromHost bool `json:"from_host,omitempty" yaml:"from_host" toml:"from_host"`

	// BuiltinsOnly restricts mirroring to non-enumerable globals.
	BuiltinsOnly bool `json:"builtins_only,omitempty" yaml:"builtins_only" toml:"builtins_only"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Filename:      "<symbridge>",
		FromHost:      true,
		EvaluatorName: "eval",
		PrivatePrefix: "_",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// validate is a package-level singleton; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field of c.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &bridgeerrors.ConfigError{
				Field: verrs[0].Field(),
				Err:   fmt.Errorf("failed on the %q rule", verrs[0].Tag()),
			}
		}
		return &bridgeerrors.ConfigError{Err: err}
	}
	return nil
}

// Load reads the file at path, selecting the format by extension
// (.yaml, .yml, .toml or .json). Keys missing from the file keep their
// Default values.
func Load(path string) (Config, error) {
	raw, err := decodeFile(path)
	if err != nil {
		return Config{}, err
	}
	if raw == nil {
		raw = map[string]any{}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return Config{}, &bridgeerrors.ConfigError{Err: fmt.Errorf("failed to marshal config document: %w", err)}
	}
	if err := validateDocument(data); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &bridgeerrors.ConfigError{Err: fmt.Errorf("failed to unmarshal config into struct: %w", err)}
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.Preload {
		if p != "" && !filepath.IsAbs(p) {
			cfg.Preload[i] = filepath.Join(dir, p)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string) (map[string]any, error) {
	var raw map[string]any

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return nil, &bridgeerrors.ConfigError{Err: fmt.Errorf("load %s: %w", path, err)}
		}
		return raw, nil
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &bridgeerrors.ConfigError{Err: fmt.Errorf("load %s: %w", path, err)}
		}
		if ext == ".json" {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return nil, &bridgeerrors.ConfigError{Err: fmt.Errorf("parse %s: %w", path, err)}
		}
		return raw, nil
	default:
		return nil, &bridgeerrors.ConfigError{Err: fmt.Errorf("unsupported config format %q", ext)}
	}
}
