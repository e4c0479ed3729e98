package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceFile  = "file"
	SourceMySQL = "mysql"
	SourceRedis = "redis"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http" toml:"http" envPrefix:"HTTP_"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics" envPrefix:"METRICS_"`
	T9        T9Config        `yaml:"t9" toml:"t9" envPrefix:"T9_"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	MySQL     MySQLConfig     `yaml:"mysql" toml:"mysql" envPrefix:"MYSQL_"`
	Redis     RedisConfig     `yaml:"redis" toml:"redis" envPrefix:"REDIS_"`
	Swagger   SwaggerConfig   `yaml:"swagger" toml:"swagger" envPrefix:"SWAGGER_"`
	Static    StaticConfig    `yaml:"static" toml:"static" envPrefix:"STATIC_"`
	CORS      CORSConfig      `yaml:"cors" toml:"cors" envPrefix:"CORS_"`
	Log       LogConfig       `yaml:"log" toml:"log" envPrefix:"LOG_"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" toml:"addr" env:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout" env:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout" env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" toml:"idle_timeout" env:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" env:"ENABLED" default:"true"`
	Addr    string `yaml:"addr" toml:"addr" env:"ADDR" default:":9090"`
}

type T9Config struct {
	Dictionary     DictionaryConfig `yaml:"dictionary" toml:"dictionary" envPrefix:"DICTIONARY_"`
	MaxInputLength int              `yaml:"max_input_length" toml:"max_input_length" env:"MAX_INPUT_LENGTH" default:"45"`
}

type DictionaryConfig struct {
	Source string `yaml:"source" toml:"source" env:"SOURCE" default:"file"`
	Path   string `yaml:"path" toml:"path" env:"PATH" default:"data/words.txt"`
}

type RateLimitConfig struct {
	Enabled             bool `yaml:"enabled" toml:"enabled" env:"ENABLED" default:"true"`
	RequestsPerWindow   int  `yaml:"requests_per_window" toml:"requests_per_window" env:"REQUESTS_PER_WINDOW" default:"100"`
	WindowSizeInSeconds int  `yaml:"window_size_seconds" toml:"window_size_seconds" env:"WINDOW_SIZE_SECONDS" default:"60"`
	TrustForwardedFor   bool `yaml:"trust_forwarded_for" toml:"trust_forwarded_for" env:"TRUST_FORWARDED_FOR" default:"true"`
}

type MySQLConfig struct {
	Host         string        `yaml:"host" toml:"host" env:"HOST" default:"localhost"`
	Port         int           `yaml:"port" toml:"port" env:"PORT" default:"3306"`
	DBName       string        `yaml:"db" toml:"db" env:"DB" default:"t9"`
	User         string        `yaml:"user" toml:"user" env:"USER" default:"root"`
	Password     string        `yaml:"pass" toml:"pass" env:"PASS" default:"root"`
	MaxOpenConns int           `yaml:"max_open" toml:"max_open" default:"4"`
	MaxIdleConns int           `yaml:"max_idle" toml:"max_idle" default:"2"`
	MaxLifetime  time.Duration `yaml:"max_lifetime" toml:"max_lifetime" default:"1h"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" toml:"addr" env:"ADDR" default:"localhost:6379"`
	Password string `yaml:"pass" toml:"pass" env:"PASS" default:""`
	DB       int    `yaml:"db" toml:"db" env:"DB" default:"0"`
	WordsKey string `yaml:"words_key" toml:"words_key" env:"WORDS_KEY" default:"t9:words"`
}

type SwaggerConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled" env:"ENABLED" default:"true"`
}

type StaticConfig struct {
	Dir string `yaml:"dir" toml:"dir" env:"DIR" default:"web"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins" env:"ALLOWED_ORIGINS" default:"[\"*\"]"`
}

type LogConfig struct {
	LevelStr string `yaml:"level" toml:"level" env:"LEVEL" default:"info"`
	Format   string `yaml:"format" toml:"format" env:"FORMAT" default:"json"`
}

// DSN returns the go-sql-driver/mysql connection string.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
	)
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSizeInSeconds) * time.Second
}

// LoadFromEnv loads the file named by CONFIG_PATH. A .env file in the
// working directory, if present, is read first and never overrides variables
// already set in the process environment.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/local.yaml"
	}
	return Load(path)
}

func New() (*Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a YAML or, for *.toml paths, TOML file. Defaults are applied
// first so values set explicitly in the file (including false and 0) win.
// Environment variables such as HTTP_ADDR or T9_DICTIONARY_SOURCE override
// the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns a Config populated from struct defaults only.
func Default() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	return cfg
}

func (c Config) Validate() error {
	var errs []error
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerWindow <= 0 {
			errs = append(errs, errors.New("rate_limit.requests_per_window must be positive"))
		}
		if c.RateLimit.WindowSizeInSeconds <= 0 {
			errs = append(errs, errors.New("rate_limit.window_size_seconds must be positive"))
		}
	}
	if c.T9.MaxInputLength <= 0 {
		errs = append(errs, errors.New("t9.max_input_length must be positive"))
	}
	switch c.T9.Dictionary.Source {
	case SourceFile:
		if c.T9.Dictionary.Path == "" {
			errs = append(errs, errors.New("t9.dictionary.path is required for file source"))
		}
	case SourceMySQL, SourceRedis:
	default:
		errs = append(errs, fmt.Errorf("t9.dictionary.source: unknown source %q", c.T9.Dictionary.Source))
	}
	return errors.Join(errs...)
}
