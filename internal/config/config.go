package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/marksearch/internal/domain"
)

// Source drivers.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
)

// MCP transports.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds the marksearch configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Source  SourceConfig  `yaml:"source"`
	Ranking RankingConfig `yaml:"ranking"`
	MCP     MCPConfig     `yaml:"mcp"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SourceConfig selects where bookmarks come from.
type SourceConfig struct {
	Driver string      `yaml:"driver"` // file, redis (default: file)
	File   FileConfig  `yaml:"file"`
	Redis  RedisConfig `yaml:"redis"`
}

// FileConfig holds Chrome bookmarks file settings.
type FileConfig struct {
	Path       string `yaml:"path"`
	Watch      bool   `yaml:"watch"`
	DebounceMs int    `yaml:"debounce_ms"`
}

// RedisConfig holds Redis/Valkey connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RankingConfig holds ranker settings.
type RankingConfig struct {
	Workers int         `yaml:"workers"` // 1 = sequential (default: GOMAXPROCS)
	Cache   CacheConfig `yaml:"cache"`
}

// CacheConfig holds vocabulary cache settings.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// MCPConfig holds Model Context Protocol server settings.
type MCPConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Transport string `yaml:"transport"` // http, stdio (default: http)
	Path      string `yaml:"path"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML, substitutes ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Source.Driver == "" {
		c.Source.Driver = DriverFile
	}
	if c.Source.File.DebounceMs <= 0 {
		c.Source.File.DebounceMs = 500
	}
	if c.Source.Redis.KeyPrefix == "" {
		c.Source.Redis.KeyPrefix = domain.DefaultKeyPrefix
	}
	if c.Source.Redis.ReadinessTimeout <= 0 {
		c.Source.Redis.ReadinessTimeout = 10
	}
	if c.Ranking.Workers <= 0 {
		c.Ranking.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Ranking.Cache.MaxEntries <= 0 {
		c.Ranking.Cache.MaxEntries = 8
	}
	if c.MCP.Transport == "" {
		c.MCP.Transport = TransportHTTP
	}
	if c.MCP.Path == "" {
		c.MCP.Path = "/mcp"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Source.Driver {
	case DriverFile:
		if c.Source.File.Path == "" {
			return fmt.Errorf("source.file.path is required for the file driver")
		}
	case DriverRedis:
		if len(c.Source.Redis.Addrs) == 0 {
			return fmt.Errorf("source.redis.addrs is required for the redis driver")
		}
		if c.Source.Redis.DB < 0 {
			return fmt.Errorf("source.redis.db must not be negative, got %d", c.Source.Redis.DB)
		}
	default:
		return fmt.Errorf("source.driver must be %q or %q, got %q", DriverFile, DriverRedis, c.Source.Driver)
	}

	switch c.MCP.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("mcp.transport must be %q or %q, got %q", TransportHTTP, TransportStdio, c.MCP.Transport)
	}
	if !strings.HasPrefix(c.MCP.Path, "/") {
		return fmt.Errorf("mcp.path must start with /, got %q", c.MCP.Path)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to this source file, for tests and `go run` from subdirectories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
