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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/uptrace/bun"
)

// ErrStoreClosed is returned by Store methods after Close.
var ErrStoreClosed = errors.New("database store is closed")

// Store owns one open database handle. It is created by Open and must be
// released by Close; nothing in this module keeps a package-level handle.
type Store struct {
	mu        sync.RWMutex
	config    ConnectionConfig
	bootstrap BootstrapConfig
	db        *bun.DB
	sqlDB     *sql.DB
	logger    Logger
	lastError error
}

// Option customizes a Store before it connects.
type Option func(*Store)

// WithLogger replaces the default "DATABASE" logger.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open connects to the configured database, verifies the connection and
// runs the configured bootstrap steps. On failure nothing is left open.
func Open(ctx context.Context, cfg *Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		config:    cfg.Connection,
		bootstrap: cfg.Bootstrap,
		logger:    GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.connect(ctx); err != nil {
		return nil, err
	}

	if err := s.runBootstrap(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) connect(ctx context.Context) error {
	sqlDB, db, err := createConnection(&s.config)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}
	configureConnectionPool(sqlDB, &s.config)

	ctxTimeout, cancel := context.WithTimeout(ctx, s.config.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctxTimeout); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if s.config.Type == TypeSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to enable WAL journal mode: %w", err)
		}
	}

	addQueryHooks(db, &s.config, s.logger)

	s.db = db
	s.sqlDB = sqlDB
	s.logger.Info("Database connected successfully", "type", s.config.Type, "name", s.config.DBName)
	return nil
}

func (s *Store) runBootstrap(ctx context.Context) error {
	if !s.bootstrap.CreateSchema && !s.bootstrap.Seed {
		return nil
	}
	b := NewBootstrapper(s.db, s.logger)
	if s.bootstrap.CreateSchema {
		if err := b.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	if s.bootstrap.Seed {
		if s.bootstrap.SeedPath != "" {
			b.SetSeedPath(s.bootstrap.SeedPath)
		}
		b.SetEnvironment(s.bootstrap.Environment)
		if err := b.Seed(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DB returns the bun handle, or nil after Close.
func (s *Store) DB() *bun.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Type returns the normalized database type of the store.
func (s *Store) Type() string {
	return s.config.Type
}

// Logger returns the logger used by the store and its hooks.
func (s *Store) Logger() Logger {
	return s.logger
}

// Close releases the underlying connection pool. Calling it twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	s.sqlDB = nil
	if err != nil {
		s.logger.Error("Failed to close database connection", "error", err)
	} else {
		s.logger.Info("Database connection closed")
	}
	return err
}

// Ping verifies the connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	db := s.DB()
	if db == nil {
		return ErrStoreClosed
	}
	return db.PingContext(ctx)
}

// HealthCheck pings the database and reports pool usage. It runs only when
// called; the store has no background checker.
func (s *Store) HealthCheck(ctx context.Context) *HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	status := &HealthStatus{LastCheckTime: start}

	if s.db == nil {
		status.LastError = ErrStoreClosed.Error()
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	err := s.db.PingContext(ctxTimeout)
	status.ResponseTime = time.Since(start)
	if err != nil {
		status.LastError = err.Error()
		s.lastError = err
	} else {
		status.Healthy = true
		status.Connected = true
		s.lastError = nil
	}

	stats := s.sqlDB.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	return status
}

// LastError returns the error of the most recent failed health check.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Stats returns connection pool statistics.
func (s *Store) Stats() *DBStats {
	s.mu.RLock()
	sqlDB := s.sqlDB
	s.mu.RUnlock()

	if sqlDB == nil {
		return &DBStats{}
	}

	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}
