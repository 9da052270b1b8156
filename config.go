package ippcode

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultLanguage is the language name used when no configuration overrides it.
const DefaultLanguage = "IPPcode22"

// DefaultIndent is the serializer indentation used when output.indent is not set.
const DefaultIndent = 2

var languageName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// Config represents the ippcode configuration
type Config struct {
	Language string       `yaml:"language"`
	Output   OutputConfig `yaml:"output"`
	Test     TestConfig   `yaml:"test"`
}

// OutputConfig represents XML serialization settings
type OutputConfig struct {
	Indent      *int  `yaml:"indent"`      // 0 writes compact XML
	Declaration *bool `yaml:"declaration"` // Pointer to distinguish between unset and false
}

// IndentWidth returns the number of spaces per nesting level.
func (o OutputConfig) IndentWidth() int {
	if o.Indent == nil {
		return DefaultIndent
	}

	return *o.Indent
}

// IncludeDeclaration reports whether the XML declaration is written. Defaults to true.
func (o OutputConfig) IncludeDeclaration() bool {
	return o.Declaration == nil || *o.Declaration
}

// TestConfig represents test suite settings
type TestConfig struct {
	Directory string `yaml:"directory"`
	Recursive bool   `yaml:"recursive"`
	Report    string `yaml:"report"`
	Run       string `yaml:"run"`
}

// Header returns the header literal a program must start with.
func (c *Config) Header() string {
	return "." + c.Language
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", ErrConfigValidation, err)
	}

	applyDefaults(&config)

	err = validateConfig(&config)
	if err != nil {
		return nil, err
	}

	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if !languageName.MatchString(config.Language) {
		return fmt.Errorf("%w: invalid language '%s': must be letters followed by letters or digits", ErrConfigValidation, config.Language)
	}

	if config.Output.IndentWidth() < 0 {
		return fmt.Errorf("%w: output.indent must be non-negative, got %d", ErrConfigValidation, config.Output.IndentWidth())
	}

	if config.Test.Run != "" {
		_, err := regexp.Compile(config.Test.Run)
		if err != nil {
			return fmt.Errorf("%w: test.run is not a valid regular expression: %w", ErrConfigValidation, err)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Language: DefaultLanguage,
		Test: TestConfig{
			Directory: ".",
		},
	}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return getDefaultConfig()
}

// applyDefaults fills in zero values that have a non-zero default
func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = DefaultLanguage
	}

	if config.Test.Directory == "" {
		config.Test.Directory = "."
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	_, err := os.Stat(".env")
	if err == nil {
		err = godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in path-valued settings
func expandConfigEnvVars(config *Config) {
	config.Test.Directory = expandEnvVars(config.Test.Directory)
	config.Test.Report = expandEnvVars(config.Test.Report)
}
