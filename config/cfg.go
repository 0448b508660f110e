package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

type DoubleQuoteString string

// MarshalYAML implements the yaml.Marshaler interface.
func (s DoubleQuoteString) MarshalYAML() (any, error) {
	node := yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: string(s),
	}
	return &node, nil
}

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// IntrospectionConfig bounds the fixed-point evaluate/layout loop (§9
	// Open Question 1: introspection iteration cap).
	IntrospectionConfig struct {
		MaxIterations int `yaml:"max_iterations" validate:"min=1"`
	}

	// LineBreakConfig carries the cost coefficients the paragraph
	// line-breaker weighs when choosing between competing break points
	// (§9 Open Question 3).
	LineBreakConfig struct {
		OrphanWeight     float64 `yaml:"orphan_weight" validate:"gte=0"`
		WidowWeight      float64 `yaml:"widow_weight" validate:"gte=0"`
		HyphenPenalty    float64 `yaml:"hyphen_penalty" validate:"gte=0"`
		StretchTolerance float64 `yaml:"stretch_tolerance" validate:"gte=0"`
	}

	// LayoutConfig configures the layout engine's worker pool and
	// line-breaking policy (§9 Open Question 2: multithreaded layout).
	LayoutConfig struct {
		Parallel  bool            `yaml:"parallel"`
		Workers   int             `yaml:"workers" validate:"gte=0"`
		LineBreak LineBreakConfig `yaml:"line_break"`
	}

	// MemoConfig bounds the tracked-input memoisation cache (component J).
	MemoConfig struct {
		MaxEntries             int `yaml:"max_entries" validate:"gte=0"`
		MaxGenerationsRetained int `yaml:"max_generations_retained" validate:"min=1"`
	}

	CompileConfig struct {
		Introspection IntrospectionConfig `yaml:"introspection"`
		Layout        LayoutConfig        `yaml:"layout"`
		Memo          MemoConfig          `yaml:"memo"`
	}

	Config struct {
		Version   int           `yaml:"version" validate:"eq=1"`
		Compile   CompileConfig `yaml:"compile"`
		Logging   LoggingConfig `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

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
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template to
// provide sane defaults, and performs validation.
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
		return cfg, nil
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
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
