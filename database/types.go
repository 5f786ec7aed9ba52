/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bretuobay/web-evolution/catalog/utils"
)

// Supported values of ConnectionConfig.Type.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
)

// MemoryDBName opens a private in-memory SQLite database.
const MemoryDBName = ":memory:"

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql stats of the store's pool.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

// ConnectionConfig describes how to reach the store and tune its pool.
// For sqlite, DBName is a file path (".db" is appended when it has no
// extension) or MemoryDBName; the pool is always pinned to one connection.
type ConnectionConfig struct {
	Type            string        `yaml:"type"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	EnableQueryLog  bool          `yaml:"enable_query_log"`
	SlowQueryTime   time.Duration `yaml:"slow_query_time"`
}

// BootstrapConfig controls what Open does after connecting.
type BootstrapConfig struct {
	CreateSchema bool   `yaml:"create_schema"`
	Seed         bool   `yaml:"seed"`
	SeedPath     string `yaml:"seed_path"`   // directory replacing the embedded seed scripts
	Environment  string `yaml:"environment"` // selects seed/environments/<name>
}

// Config aggregates connection and bootstrap settings.
type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
	Bootstrap  BootstrapConfig  `yaml:"bootstrap"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Type:            TypeSQLite,
		DBName:          MemoryDBName,
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute * 30,
		ConnectTimeout:  time.Second * 10,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		EnableQueryLog:  false,
		SlowQueryTime:   time.Second * 2,
	}
}

// DefaultConfig returns an in-memory SQLite config that creates the schema.
func DefaultConfig() *Config {
	return &Config{
		Connection: *DefaultConnectionConfig(),
		Bootstrap: BootstrapConfig{
			CreateSchema: true,
			Environment:  "development",
		},
	}
}

// MemoryConfig returns a config for an isolated in-memory store with the
// schema created and, when seed is true, the seed data loaded.
func MemoryConfig(seed bool) *Config {
	cfg := DefaultConfig()
	cfg.Connection.SlowQueryTime = 0
	cfg.Bootstrap.Seed = seed
	return cfg
}

// LoadConfig reads a YAML config file on top of DefaultConfig and then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the connection type.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("database configuration cannot be empty")
	}
	c.Connection.Type = normalizeType(c.Connection.Type)
	switch c.Connection.Type {
	case TypeSQLite, TypePostgres, TypeMySQL:
		return nil
	default:
		return fmt.Errorf("unsupported database type: %s, supported types: %v",
			c.Connection.Type, []string{TypeSQLite, TypePostgres, TypeMySQL})
	}
}

func normalizeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "", "sqlite", "sqlite3":
		return TypeSQLite
	case "postgres", "postgresql", "pg":
		return TypePostgres
	case "mysql":
		return TypeMySQL
	default:
		return t
	}
}

// ApplyEnv overrides configuration values from DB_* environment variables.
func ApplyEnv(cfg *Config) {
	conn := &cfg.Connection
	if v := os.Getenv("DB_TYPE"); v != "" {
		conn.Type = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		conn.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			conn.Port = p
		}
	}
	if v := os.Getenv("DB_USERNAME"); v != "" {
		conn.Username = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		conn.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		conn.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		conn.SSLMode = v
	}
	if v := os.Getenv("DB_MAX_IDLE_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			conn.MaxIdleConns = n
		}
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			conn.MaxOpenConns = n
		}
	}
	conn.ConnMaxLifetime = utils.EnvDefaultDuration("DB_CONN_MAX_LIFETIME", conn.ConnMaxLifetime)
	conn.SlowQueryTime = utils.EnvDefaultDuration("DB_SLOW_QUERY_TIME", conn.SlowQueryTime)
	conn.EnableQueryLog = utils.EnvDefaultBool("DB_ENABLE_QUERY_LOG", conn.EnableQueryLog)
	cfg.Bootstrap.CreateSchema = utils.EnvDefaultBool("DB_CREATE_SCHEMA", cfg.Bootstrap.CreateSchema)
	cfg.Bootstrap.Seed = utils.EnvDefaultBool("DB_SEED", cfg.Bootstrap.Seed)
	cfg.Bootstrap.SeedPath = utils.EnvDefaultString("DB_SEED_PATH", cfg.Bootstrap.SeedPath)
	cfg.Bootstrap.Environment = utils.EnvDefaultString("APP_ENV", cfg.Bootstrap.Environment)
}
