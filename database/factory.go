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
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

func createConnection(config *ConnectionConfig) (*sql.DB, *bun.DB, error) {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30 * time.Second
	}

	switch config.Type {
	case TypeMySQL:
		return createMySQLConnection(config)
	case TypePostgres:
		return createPostgreSQLConnection(config)
	case TypeSQLite:
		return createSQLiteConnection(config)
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}
}

func addQueryHooks(db *bun.DB, config *ConnectionConfig, logger Logger) {
	if config.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	if config.SlowQueryTime > 0 {
		db.AddQueryHook(NewSlowQueryHook(config.SlowQueryTime, logger))
	}
}

// createMySQLConnection sets clientFoundRows so UPDATE reports matched rows,
// not changed rows, like the other drivers.
func createMySQLConnection(config *ConnectionConfig) (*sql.DB, *bun.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true&timeout=%s&readTimeout=%s&writeTimeout=%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.DBName,
		config.ConnectTimeout,
		config.ReadTimeout,
		config.WriteTimeout,
	)

	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}
	return sqlDB, bun.NewDB(sqlDB, mysqldialect.New()), nil
}

func createPostgreSQLConnection(config *ConnectionConfig) (*sql.DB, *bun.DB, error) {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.DBName,
		sslMode,
		int(config.ConnectTimeout.Seconds()),
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}
	return sqlDB, bun.NewDB(sqlDB, pgdialect.New()), nil
}

func createSQLiteConnection(config *ConnectionConfig) (*sql.DB, *bun.DB, error) {
	sqlDB, err := sql.Open(sqliteshim.ShimName, sqliteDSN(config.DBName))
	if err != nil {
		return nil, nil, err
	}
	return sqlDB, bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

// sqliteDSN maps a configured name to a data source. Empty and ":memory:"
// select an in-memory database; names without an extension get ".db".
func sqliteDSN(name string) string {
	switch {
	case name == "" || name == MemoryDBName:
		return MemoryDBName
	case filepath.Ext(name) == "":
		return name + ".db"
	default:
		return name
	}
}

// configureConnectionPool applies pool limits. SQLite is pinned to a single
// connection that is never recycled, so an in-memory database lives exactly
// as long as the store.
func configureConnectionPool(sqlDB *sql.DB, config *ConnectionConfig) {
	if config.Type == TypeSQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)
}
