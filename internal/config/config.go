package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Results document location (relative to ProjectPath unless absolute)
	ResultsFile string
	ResultsDir  string

	// Marker settings
	Source              string
	FileErrorMessage    string
	UnknownErrorMessage string

	// Discovery settings
	TestSuffixes  []string
	PathsToIgnore []string

	LogFormat string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	Results     string
	ConfigFile  string
	Verbose     bool
	NameFilter  string
	JSON        bool
	Strict      bool
	From        string
}

// fileConfig models testmark.yaml. Zero values leave the defaults in place.
type fileConfig struct {
	Results       string   `yaml:"results"`
	Source        string   `yaml:"source"`
	TestSuffixes  []string `yaml:"test_suffixes"`
	PathsToIgnore []string `yaml:"paths_to_ignore"`
	LogFormat     string   `yaml:"log_format"`
	Messages      struct {
		FileError    string `yaml:"file_error"`
		UnknownError string `yaml:"unknown_error"`
	} `yaml:"messages"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:         DefaultProjectPath,
		ResultsFile:         DefaultResultsFile,
		ResultsDir:          DefaultResultsDir,
		Source:              DefaultSource,
		FileErrorMessage:    DefaultFileErrorMessage,
		UnknownErrorMessage: DefaultUnknownErrorMessage,
		LogFormat:           DefaultLogFormat,
	}
	cfg.TestSuffixes = append([]string(nil), DefaultTestSuffixes...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// Load creates a config and layers, lowest first: defaults, testmark.yaml,
// the environment (after loading the project's .env), and flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	if err := cfg.loadFile(flags.ConfigFile); err != nil {
		return nil, err
	}
	cfg.loadEnv()

	if flags.Results != "" {
		cfg.setResults(flags.Results)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(c.ProjectPath, DefaultConfigFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Results != "" {
		c.setResults(fc.Results)
	}
	if fc.Source != "" {
		c.Source = fc.Source
	}
	if len(fc.TestSuffixes) > 0 {
		c.TestSuffixes = fc.TestSuffixes
	}
	if len(fc.PathsToIgnore) > 0 {
		c.PathsToIgnore = fc.PathsToIgnore
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	if fc.Messages.FileError != "" {
		c.FileErrorMessage = fc.Messages.FileError
	}
	if fc.Messages.UnknownError != "" {
		c.UnknownErrorMessage = fc.Messages.UnknownError
	}
	return nil
}

func (c *Config) loadEnv() {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(c.ProjectPath, ".env"))

	if v := os.Getenv(EnvResults); v != "" {
		c.setResults(v)
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}

// setResults splits a results path into directory and file name.
func (c *Config) setResults(path string) {
	c.ResultsDir = filepath.Dir(path)
	c.ResultsFile = filepath.Base(path)
}

// GetResultsPath returns the absolute path of the results document.
func (c *Config) GetResultsPath() string {
	p := filepath.Join(c.ResultsDir, c.ResultsFile)
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetProjectRoot returns the absolute project path used to resolve file identities.
func (c *Config) GetProjectRoot() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}
