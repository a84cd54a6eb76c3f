package config

import (
	"os"
	"strings"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "fixturegen.yml"

// Environment overrides applied after the file is loaded
const (
	EnvLogLevel    = "FIXTUREGEN_LOG_LEVEL"
	EnvS3AccessKey = "FIXTUREGEN_S3_ACCESS_KEY"
	EnvS3SecretKey = "FIXTUREGEN_S3_SECRET_KEY"
)

// Config represents the generator configuration
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	S3     S3Config     `yaml:"s3"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`      // "auto", "console" or "json"
	FilePath   string `yaml:"file_path"`   // optional log file
	MaxSize    int    `yaml:"max_size"`    // MB before rotation
	MaxBackups int    `yaml:"max_backups"` // rotated files kept
	MaxAge     int    `yaml:"max_age"`     // days rotated files are kept
	Cleanup    bool   `yaml:"cleanup"`     // truncate the log file on startup
}

// OutputConfig controls how fixtures are encoded
type OutputConfig struct {
	AvroCodec                string            `yaml:"avro_codec"`
	ParquetCompression       string            `yaml:"parquet_compression"`
	ParquetCompressionLevel  int               `yaml:"parquet_compression_level"`
	ParquetColumnCompression map[string]string `yaml:"parquet_column_compression"`
	// Fallback writes a placeholder when a codec is not compiled in.
	Fallback bool `yaml:"fallback"`
}

// S3Config configures the s3:// destination engine
type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UseSSL       bool   `yaml:"use_ssl"`
	CreateBucket bool   `yaml:"create_bucket"`
}

// Enabled reports whether an S3 endpoint is configured
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// LoadDefaultConfig returns a default configuration
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "auto",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Output: OutputConfig{
			AvroCodec:          "null",
			ParquetCompression: "snappy",
			Fallback:           true,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}

// LoadConfig loads configuration from a file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New(ErrConfigFileReadFailed, "failed to read config file", err).AddContext("path", filename)
	}

	config := LoadDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.New(ErrConfigFileParseFailed, "failed to parse config file", err).AddContext("path", filename)
	}

	config.ApplyEnv(os.LookupEnv)

	if err := config.Validate(); err != nil {
		return nil, errors.New(ErrConfigValidationFailed, "configuration validation failed", err).AddContext("path", filename)
	}

	return config, nil
}

// Load reads filename, or DefaultConfigFile when filename is empty. A missing
// default file yields the defaults; a missing explicit file is an error.
func Load(filename string) (*Config, error) {
	if filename != "" {
		return LoadConfig(filename)
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadConfig(DefaultConfigFile)
	}

	config := LoadDefaultConfig()
	config.ApplyEnv(os.LookupEnv)
	if err := config.Validate(); err != nil {
		return nil, errors.New(ErrConfigValidationFailed, "configuration validation failed", err)
	}
	return config, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvS3AccessKey); ok && v != "" {
		c.S3.AccessKey = v
	}
	if v, ok := lookup(EnvS3SecretKey); ok && v != "" {
		c.S3.SecretKey = v
	}
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.New(ErrConfigFileMarshalFailed, "failed to marshal config", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.New(ErrConfigFileWriteFailed, "failed to write config file", err).AddContext("path", filename)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return errors.New(ErrLogValidationFailed, "log validation failed", err)
	}
	if err := c.Output.Validate(); err != nil {
		return errors.New(ErrOutputValidationFailed, "output validation failed", err)
	}
	if err := c.S3.Validate(); err != nil {
		return errors.New(ErrS3ValidationFailed, "s3 validation failed", err)
	}
	return nil
}

// Validate validates the logging configuration
func (l *LogConfig) Validate() error {
	if l.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(l.Level)); err != nil {
			return errors.New(errors.CommonInvalidInput, "log level must be trace, debug, info, warn, error, fatal, panic or disabled", nil).AddContext("level", l.Level)
		}
	}
	switch strings.ToLower(l.Format) {
	case "", "auto", "console", "json":
	default:
		return errors.New(errors.CommonInvalidInput, "log format must be auto, console or json", nil).AddContext("format", l.Format)
	}
	if l.MaxSize < 0 || l.MaxBackups < 0 || l.MaxAge < 0 {
		return errors.New(errors.CommonInvalidInput, "log rotation limits must not be negative", nil)
	}
	return nil
}

// Validate checks the fields that do not depend on a codec being compiled
// in; codec names are checked when the codec registry is built.
func (o *OutputConfig) Validate() error {
	if o.ParquetCompressionLevel < 0 {
		return errors.New(errors.CommonInvalidInput, "parquet compression level must not be negative", nil)
	}
	return nil
}

// Validate validates the S3 configuration
func (s *S3Config) Validate() error {
	if !s.Enabled() {
		return nil
	}
	if strings.Contains(s.Endpoint, "://") {
		return errors.New(errors.CommonInvalidInput, "s3 endpoint must be host[:port] without a scheme", nil).AddContext("endpoint", s.Endpoint)
	}
	if (s.AccessKey == "") != (s.SecretKey == "") {
		return errors.New(errors.CommonInvalidInput, "s3 access_key and secret_key must be set together", nil)
	}
	return nil
}
