package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLogLevel    = "info"
	DefaultSheetName   = "Comments"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the comment extraction tool
type Config struct {
	// Input/output configuration
	InputPath  string
	OutputPath string
	SheetName  string

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SheetName:   DefaultSheetName,
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// The input file may also be given as the first positional argument
	if cfg.InputPath == "" && pflag.NArg() > 0 {
		cfg.InputPath = pflag.Arg(0)
	}

	// Expand paths if needed
	if cfg.InputPath != "" {
		if expandedPath, err := filepath.Abs(cfg.InputPath); err == nil {
			cfg.InputPath = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("PDF_COMMENTS")
	viper.AutomaticEnv()

	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("sheet", cfg.SheetName)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("input", cfg.InputPath, "Path to the annotated PDF file")
	pflag.String("output", cfg.OutputPath, "Path of the Excel workbook to write (default: comment_list_<input>.xlsx)")
	pflag.String("sheet", cfg.SheetName, "Worksheet name for the comment list")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("sheet", pflag.Lookup("sheet"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPDF Comment Extract - Export drawing review comments to an Excel workbook\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s plan.pdf                             # extract to comment_list_plan.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=plan.pdf --output=out.xlsx   # explicit output path\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s plan.pdf --sheet=Review              # custom worksheet name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_COMMENTS_INPUT       Input PDF path\n")
		fmt.Fprintf(os.Stderr, "  PDF_COMMENTS_OUTPUT      Output workbook path\n")
		fmt.Fprintf(os.Stderr, "  PDF_COMMENTS_SHEET       Worksheet name\n")
		fmt.Fprintf(os.Stderr, "  PDF_COMMENTS_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF_COMMENTS_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputPath = viper.GetString("input")
	cfg.OutputPath = viper.GetString("output")
	cfg.SheetName = viper.GetString("sheet")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input PDF path cannot be empty")
	}

	if c.SheetName == "" {
		return errors.New("worksheet name cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ResolvedOutputPath returns the output path, deriving a workbook name next
// to the input file when none was configured.
func (c *Config) ResolvedOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}

	base := filepath.Base(c.InputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(c.InputPath), fmt.Sprintf("comment_list_%s.xlsx", name))
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{InputPath: %s, OutputPath: %s, SheetName: %s, LogLevel: %s, MaxFileSize: %d}",
		c.InputPath, c.OutputPath, c.SheetName, c.LogLevel, c.MaxFileSize)
}
