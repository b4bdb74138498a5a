package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. GETINSIGHTS_PATHS_RESULT.
const EnvPrefix = "GETINSIGHTS"

// ClientConfig names the insights-client binary, its rpm package and the per-run timeout.
type ClientConfig struct {
	Binary  string        `yaml:"binary" mapstructure:"binary"`
	Package string        `yaml:"package" mapstructure:"package"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // 0 = wait for the client to finish
}

// PathsConfig holds the marker files and the result file shared with insights-client.
type PathsConfig struct {
	Registered string `yaml:"registered" mapstructure:"registered"`
	LastUpload string `yaml:"last_upload" mapstructure:"last_upload"`
	Result     string `yaml:"result" mapstructure:"result"`
}

// LoggingConfig selects the zap level and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug|info|warn|error
	Format string `yaml:"format" mapstructure:"format"` // console|json
}

// MetricsConfig enables the Prometheus textfile export when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// Config is the full getinsights configuration.
type Config struct {
	Client  ClientConfig  `yaml:"client" mapstructure:"client"`
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// DefaultConfig returns the stock insights-client paths and names.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			Binary:  "insights-client",
			Package: "insights-client",
		},
		Paths: PathsConfig{
			Registered: "/etc/insights-client/.registered",
			LastUpload: "/etc/insights-client/.lastupload",
			Result:     "/tmp/insights-result",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// SearchPaths returns the config files tried when no explicit path is given, in order.
func SearchPaths() []string {
	paths := []string{"/etc/getinsights/config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".getinsights", "config.yaml"))
	}
	return paths
}

// LoadConfig layers defaults, the YAML file and GETINSIGHTS_* environment variables.
// An explicit path must exist; otherwise the first existing file from SearchPaths is used, if any.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := setDefaults(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	for section, values := range tree {
		m, ok := values.(map[string]interface{})
		if !ok {
			continue
		}
		for key, val := range m {
			v.SetDefault(section+"."+key, val)
		}
	}
	return nil
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Client.Binary == "" {
		errs = append(errs, errors.New("client.binary must not be empty"))
	}
	if c.Client.Package == "" {
		errs = append(errs, errors.New("client.package must not be empty"))
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, errors.New("client.timeout must not be negative"))
	}
	if c.Paths.Registered == "" || c.Paths.LastUpload == "" || c.Paths.Result == "" {
		errs = append(errs, errors.New("paths.registered, paths.last_upload and paths.result are required"))
	}
	return errors.Join(errs...)
}

// Marshal renders cfg as YAML
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveConfig writes cfg as YAML, creating the parent directory.
func SaveConfig(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
