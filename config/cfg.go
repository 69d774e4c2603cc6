package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"pd6/layout"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	LayoutConfig struct {
		RootMarker string          `yaml:"root_marker" validate:"required,excludesall=/\\"`
		Module     string          `yaml:"module" validate:"required,excludesall=/\\"`
		Types      string          `yaml:"types" validate:"required,excludesall=/\\"`
		Contents   string          `yaml:"contents" validate:"required,excludesall=/\\"`
		Rendering  string          `yaml:"rendering" validate:"required,excludesall=/\\"`
		Collisions CollisionPolicy `yaml:"collisions" validate:"gte=0"`
	}

	BuildConfig struct {
		Output string      `yaml:"output" validate:"required"`
		Style  OutputStyle `yaml:"style" validate:"gte=0"`
	}

	RenderConfig struct {
		Output        string `yaml:"output" validate:"required"`
		Split         bool   `yaml:"split"`
		Transliterate bool   `yaml:"transliterate"`
	}

	ValidateConfig struct {
		ModuleSchema  string        `yaml:"module_schema"`
		Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
		MaxSchemaSize int64         `yaml:"max_schema_size" validate:"gt=0"`
		AuthToken     SecretString  `yaml:"auth_token,omitempty"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Layout    LayoutConfig   `yaml:"layout"`
		Build     BuildConfig    `yaml:"build"`
		Render    RenderConfig   `yaml:"render"`
		Validate  ValidateConfig `yaml:"validate"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Names converts configured layout into names resolver works with.
func (conf *LayoutConfig) Names() layout.Names {
	return layout.Names{
		Root:      conf.RootMarker,
		Module:    conf.Module,
		Types:     conf.Types,
		Contents:  conf.Contents,
		Rendering: conf.Rendering,
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return withEnvironment(cfg), nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return withEnvironment(cfg), nil
}

// SchemaTokenEnv names environment variable holding schema bearer token when
// configuration does not set one.
const SchemaTokenEnv = "PD6_SCHEMA_TOKEN"

func withEnvironment(cfg *Config) *Config {
	if len(cfg.Validate.AuthToken) == 0 {
		cfg.Validate.AuthToken = SecretString(os.Getenv(SchemaTokenEnv))
	}
	return cfg
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
