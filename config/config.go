package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	GraphQL GraphQLConfig `yaml:"graphql"`
	Auth    AuthConfig    `yaml:"auth"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Cache   CacheConfig   `yaml:"cache"`
	CORS    CORSConfig    `yaml:"cors"`
	App     AppConfig     `yaml:"app"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

type GraphQLConfig struct {
	Endpoint          string        `yaml:"endpoint"`
	AdminSecret       string        `yaml:"admin_secret"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Timeout           time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	Provider                string `yaml:"provider"`
	Domain                  string `yaml:"domain"`
	ClientID                string `yaml:"client_id"`
	ClientSecret            string `yaml:"client_secret"`
	Audience                string `yaml:"audience"`
	CallbackURL             string `yaml:"callback_url"`
	FirebaseCredentialsPath string `yaml:"firebase_credentials_path"`
}

type SessionConfig struct {
	Store      string        `yaml:"store"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepSchedule string        `yaml:"sweep_schedule"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type AppConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	Version     string `yaml:"version"`
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	AuthProviderAuth0 = "auth0"
	AuthProviderNone  = "none"
)

// Defaults returns the configuration used when neither a YAML file nor the
// environment overrides a value.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "3000",
			BaseURL: "http://localhost:3000",
		},
		GraphQL: GraphQLConfig{
			Endpoint:          "http://localhost:8080/v1/graphql",
			RequestsPerSecond: 20,
			Burst:             10,
			Timeout:           15 * time.Second,
		},
		Auth: AuthConfig{
			Provider: AuthProviderAuth0,
			Audience: "http://localhost:8081/",
		},
		Session: SessionConfig{
			Store:      SessionStoreMemory,
			CookieName: "pa_session",
			TTL:        12 * time.Hour,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Cache: CacheConfig{
			TTL:           30 * time.Second,
			SweepSchedule: "@every 1m",
		},
		App: AppConfig{
			Environment: "development",
			LogLevel:    "info",
			Version:     "1.0.0",
		},
	}
}

// Load reads .env (if present), then the optional YAML file at path, then the
// environment. Later sources win.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Defaults()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.BaseURL = getEnv("BASE_URL", c.Server.BaseURL)

	c.GraphQL.Endpoint = getEnv("GRAPHQL_ENDPOINT", c.GraphQL.Endpoint)
	c.GraphQL.AdminSecret = getEnv("GRAPHQL_ADMIN_SECRET", c.GraphQL.AdminSecret)
	c.GraphQL.RequestsPerSecond = getEnvAsFloat("GRAPHQL_RPS", c.GraphQL.RequestsPerSecond)
	c.GraphQL.Burst = getEnvAsInt("GRAPHQL_BURST", c.GraphQL.Burst)
	c.GraphQL.Timeout = getEnvAsDuration("GRAPHQL_TIMEOUT", c.GraphQL.Timeout)

	c.Auth.Provider = strings.ToLower(getEnv("AUTH_PROVIDER", c.Auth.Provider))
	c.Auth.Domain = getEnv("AUTH0_DOMAIN", c.Auth.Domain)
	c.Auth.ClientID = getEnv("AUTH0_CLIENT_ID", c.Auth.ClientID)
	c.Auth.ClientSecret = getEnv("AUTH0_CLIENT_SECRET", c.Auth.ClientSecret)
	c.Auth.Audience = getEnv("AUTH0_AUDIENCE", c.Auth.Audience)
	c.Auth.CallbackURL = getEnv("AUTH_CALLBACK_URL", c.Auth.CallbackURL)
	c.Auth.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", c.Auth.FirebaseCredentialsPath)

	c.Session.Store = strings.ToLower(getEnv("SESSION_STORE", c.Session.Store))
	c.Session.CookieName = getEnv("SESSION_COOKIE", c.Session.CookieName)
	c.Session.TTL = getEnvAsDuration("SESSION_TTL", c.Session.TTL)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)

	c.Cache.TTL = getEnvAsDuration("CACHE_TTL", c.Cache.TTL)
	c.Cache.SweepSchedule = getEnv("CACHE_SWEEP_SCHEDULE", c.Cache.SweepSchedule)

	if origins := getEnv("CORS_ALLOW_ORIGINS", ""); origins != "" {
		c.CORS.AllowOrigins = splitList(origins)
	}

	c.App.Environment = getEnv("APP_ENV", c.App.Environment)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.App.Version = getEnv("APP_VERSION", c.App.Version)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.GraphQL.Endpoint == "" {
		return fmt.Errorf("GRAPHQL_ENDPOINT is required")
	}

	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}

	switch c.Auth.Provider {
	case AuthProviderAuth0:
		if c.Auth.Domain == "" || c.Auth.ClientID == "" {
			return fmt.Errorf("AUTH0_DOMAIN and AUTH0_CLIENT_ID are required when AUTH_PROVIDER=auth0")
		}
	case AuthProviderNone:
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	if c.GraphQL.AdminSecret != "" && c.Auth.Provider != AuthProviderNone {
		return fmt.Errorf("GRAPHQL_ADMIN_SECRET is only allowed with AUTH_PROVIDER=none")
	}

	return nil
}

// CallbackURL falls back to BaseURL + /callback.
func (c *Config) CallbackURL() string {
	if c.Auth.CallbackURL != "" {
		return c.Auth.CallbackURL
	}
	return strings.TrimRight(c.Server.BaseURL, "/") + "/callback"
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
