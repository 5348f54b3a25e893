package config

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/schemaform/internal/validator"
)

// ConfigFile is the name of the configuration file looked for in the working directory.
const ConfigFile = ".schemaform.yml"

const DefaultConfigContent = `# schemaform configuration

# DEFAULT JSON SCHEMA VERSION
#
# Used for schemas that do not declare $schema. The supported versions are:
# - http://json-schema.org/draft-04/schema#
# - http://json-schema.org/draft-06/schema#
# - http://json-schema.org/draft-07/schema# (Default)
# - https://json-schema.org/draft/2019-09/schema
# - https://json-schema.org/draft/2020-12/schema
defaultDraft: "http://json-schema.org/draft-07/schema#"

# STRICT MODE
#
# When true, unknown keywords and unknown formats make a schema fail to compile.
# Leave this off if your schemas carry UI annotations next to validation keywords.
strict: false

# WORKERS
#
# The number of documents validated at once by 'sfv validate'. Defaults to the
# number of CPUs.
# workers: 4

# LOG FILE
#
# If set, debug logs are written to this file as JSON lines.
# The SFV_LOG_FILE environment variable takes precedence.
# logFile: sfv.log

# OUTPUT
#
# The default report format: text or json.
output: text
`

// Output is a report format.
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
)

// Config holds the settings read from a configuration file.
type Config struct {
	DefaultDraft validator.Draft `yaml:"defaultDraft"`
	Strict       bool            `yaml:"strict"`
	Workers      int             `yaml:"workers"`
	LogFile      string          `yaml:"logFile"`
	Output       Output          `yaml:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DefaultDraft: validator.DefaultDraft,
		Workers:      runtime.GOMAXPROCS(0),
		Output:       OutputText,
	}
}

// Load reads the configuration at path. If path does not exist and required
// is false, the defaults are returned instead.
func Load(path string, required bool, compiler validator.Compiler) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return nil, &MissingConfigError{Path: path}
		}
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}

	if vErr := config.Validate(compiler); vErr != nil {
		return nil, vErr
	}
	return &config, nil
}

// Validate checks the configuration and fills in defaults for unset values.
func (c *Config) Validate(compiler validator.Compiler) error {
	if c.DefaultDraft == "" {
		c.DefaultDraft = validator.DefaultDraft
	}

	supported := compiler.SupportedSchemaVersions()
	if !slices.Contains(supported, c.DefaultDraft) {
		return &InvalidDraftError{
			Value:     string(c.DefaultDraft),
			Supported: supported,
		}
	}

	switch {
	case c.Workers == 0:
		c.Workers = runtime.GOMAXPROCS(0)
	case c.Workers < 0:
		return &InvalidWorkersError{Value: c.Workers}
	}

	switch c.Output {
	case "":
		c.Output = OutputText
	case OutputText, OutputJSON:
	default:
		return &InvalidOutputError{Value: string(c.Output)}
	}

	return nil
}

// FactoryOptions returns the compiler options implied by the configuration.
func (c *Config) FactoryOptions() []validator.Option {
	return []validator.Option{
		validator.WithDraft(c.DefaultDraft),
		validator.WithStrict(c.Strict),
	}
}

// WriteDefault creates a commented default configuration file at path.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return &ConfigExistsError{Path: path}
	}
	if err != nil {
		return err
	}
	if _, err = f.WriteString(DefaultConfigContent); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
