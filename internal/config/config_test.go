package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testYAML = `server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
  rate_limit:
    enabled: true
    requests: 100
    window: "1m"
  cache:
    enabled: true
    ttl: "5m"
database:
  driver: "postgres"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "admin"
    password: "secret"
    dbname: "testdb"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
redis:
  addr: "localhost:6379"
  db: 1
storage:
  endpoint: "localhost:9000"
  access_key: "minioadmin"
  secret_key: "minioadmin"
  bucket: "carmarket"
  public_url: "http://localhost:9000/carmarket"
log:
  level: "info"
  format: "json"
auth:
  jwt_secret: "Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!"
  token_expiry: "24h"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_FullYAML(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want %q", cfg.Server.Mode, "release")
	}
	if !cfg.Server.RateLimit.Enabled || cfg.Server.RateLimit.Requests != 100 || cfg.Server.RateLimit.Window != "1m" {
		t.Errorf("RateLimit = %+v, want enabled 100/1m", cfg.Server.RateLimit)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.Postgres.Host != "db.example.com" {
		t.Errorf("Postgres.Host = %q, want %q", cfg.Database.Postgres.Host, "db.example.com")
	}
	if cfg.Database.Pool.MaxOpenConns != 50 {
		t.Errorf("Pool.MaxOpenConns = %d, want 50", cfg.Database.Pool.MaxOpenConns)
	}

	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 1 {
		t.Errorf("Redis = %+v, want localhost:6379 db 1", cfg.Redis)
	}

	if cfg.Storage.Endpoint != "localhost:9000" {
		t.Errorf("Storage.Endpoint = %q, want localhost:9000", cfg.Storage.Endpoint)
	}
	if cfg.Storage.Bucket != "carmarket" {
		t.Errorf("Storage.Bucket = %q, want carmarket", cfg.Storage.Bucket)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}

	if cfg.Auth.TokenExpiry != "24h" {
		t.Errorf("Auth.TokenExpiry = %q, want 24h", cfg.Auth.TokenExpiry)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__REDIS__ADDR", "redis.internal:6380")
	t.Setenv("APP__STORAGE__ACCESS_KEY", "override-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("Redis.Addr = %q, want env override", cfg.Redis.Addr)
	}
	if cfg.Storage.AccessKey != "override-key" {
		t.Errorf("Storage.AccessKey = %q, want env override with single underscore preserved", cfg.Storage.AccessKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_Errors(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Host: "localhost", Port: 8080, Mode: "debug"},
			Database: DatabaseConfig{
				Driver: "sqlite",
				SQLite: SQLiteConfig{Path: "data/app.db"},
			},
			Redis: RedisConfig{Addr: "localhost:6379"},
			Storage: StorageConfig{
				Endpoint: "localhost:9000",
				Bucket:   "carmarket",
			},
			Log: LogConfig{Level: "info", Format: "text"},
			Auth: AuthConfig{
				JWTSecret:   strings.Repeat("s", 32),
				TokenExpiry: "24h",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad mode", func(c *Config) { c.Server.Mode = "production" }, "server.mode"},
		{"port out of range", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"missing host", func(c *Config) { c.Server.Host = " " }, "server.host"},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"sqlite without path", func(c *Config) { c.Database.SQLite.Path = "" }, "database.sqlite.path"},
		{"rate limit without requests", func(c *Config) {
			c.Server.RateLimit = RateLimitConfig{Enabled: true, Requests: 0, Window: "1m"}
		}, "rate_limit.requests"},
		{"rate limit bad window", func(c *Config) {
			c.Server.RateLimit = RateLimitConfig{Enabled: true, Requests: 10, Window: "soon"}
		}, "rate_limit.window"},
		{"cache bad ttl", func(c *Config) {
			c.Server.Cache = CacheConfig{Enabled: true, TTL: "never"}
		}, "cache.ttl"},
		{"cache without redis", func(c *Config) {
			c.Server.Cache = CacheConfig{Enabled: true, TTL: "5m"}
			c.Redis.Addr = ""
		}, "redis.addr"},
		{"missing storage endpoint", func(c *Config) { c.Storage.Endpoint = "" }, "storage.endpoint"},
		{"storage endpoint with scheme", func(c *Config) { c.Storage.Endpoint = "http://localhost:9000" }, "storage.endpoint"},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }, "storage.bucket"},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "auth.jwt_secret"},
		{"weak secret in release", func(c *Config) {
			c.Server.Mode = "release"
			c.Database = DatabaseConfig{
				Driver: "postgres",
				Postgres: PostgresConfig{
					Host: "db", Port: 5432, User: "u", DBName: "d", SSLMode: "require",
				},
			}
			c.Auth.JWTSecret = strings.Repeat("a", 40)
		}, "character classes"},
		{"bad token expiry", func(c *Config) { c.Auth.TokenExpiry = "tomorrow" }, "auth.token_expiry"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestCountSecretClasses(t *testing.T) {
	tests := []struct {
		secret string
		want   int
	}{
		{"", 0},
		{"abc", 1},
		{"abcABC", 2},
		{"abcABC123", 3},
		{"abcABC123!@#", 4},
	}
	for _, tt := range tests {
		if got := CountSecretClasses(tt.secret); got != tt.want {
			t.Errorf("CountSecretClasses(%q) = %d, want %d", tt.secret, got, tt.want)
		}
	}
}
