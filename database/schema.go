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
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

//go:embed scripts
var scriptsFS embed.FS

const (
	schemaDir = "scripts/schema"
	seedDir   = "scripts/seed"
	commonEnv = "common"
)

var fileOrderPattern = regexp.MustCompile(`^(\d+)_`)

// SQLFileInfo describes a SQL file executed during bootstrap.
type SQLFileInfo struct {
	Path        string
	Name        string
	Order       int
	Environment string
}

// ExecutionResult contains the outcome of executing a single SQL file.
type ExecutionResult struct {
	File         string
	Duration     time.Duration
	RowsAffected int64
}

// Bootstrapper creates the catalog tables and loads seed data. The schema is
// idempotent (CREATE ... IF NOT EXISTS) and never versioned or altered.
type Bootstrapper struct {
	db          *bun.DB
	logger      Logger
	environment string
	seedFS      fs.FS
}

// NewBootstrapper returns a Bootstrapper reading the embedded seed scripts.
func NewBootstrapper(db *bun.DB, logger Logger) *Bootstrapper {
	seed, _ := fs.Sub(scriptsFS, seedDir)
	if logger == nil {
		logger = GetLogger()
	}
	return &Bootstrapper{
		db:          db,
		logger:      logger,
		environment: "development",
		seedFS:      seed,
	}
}

// SetEnvironment selects the seed/environments/<env> directory loaded after
// the common seed files.
func (b *Bootstrapper) SetEnvironment(env string) {
	if env != "" {
		b.environment = env
	}
}

// SetSeedPath replaces the embedded seed scripts with a directory on disk
// laid out the same way (common/ and environments/<env>/).
func (b *Bootstrapper) SetSeedPath(dir string) {
	b.seedFS = os.DirFS(dir)
}

// SetSeedFS replaces the seed scripts with an arbitrary file system.
func (b *Bootstrapper) SetSeedFS(fsys fs.FS) {
	b.seedFS = fsys
}

// SchemaFile returns the embedded schema script for the database dialect.
func SchemaFile(name dialect.Name) (string, error) {
	switch name {
	case dialect.SQLite:
		return path.Join(schemaDir, "sqlite.sql"), nil
	case dialect.PG:
		return path.Join(schemaDir, "postgres.sql"), nil
	case dialect.MySQL:
		return path.Join(schemaDir, "mysql.sql"), nil
	default:
		return "", fmt.Errorf("no schema script for dialect: %s", name)
	}
}

// EnsureSchema creates the products and categories tables when missing.
func (b *Bootstrapper) EnsureSchema(ctx context.Context) error {
	file, err := SchemaFile(b.db.Dialect().Name())
	if err != nil {
		return err
	}

	result, err := b.executeFile(ctx, scriptsFS, file)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	b.logger.Debug("Schema ensured", "file", result.File, "duration", result.Duration.String())
	return nil
}

// Seed loads the seed scripts unless the categories table already has rows,
// so reopening a file database does not duplicate data.
func (b *Bootstrapper) Seed(ctx context.Context) error {
	count, err := b.db.NewSelect().Table("categories").Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		b.logger.Info("Seed data already present, skipping", "categories", count)
		return nil
	}

	files, err := b.SeedFiles()
	if err != nil {
		return fmt.Errorf("failed to get SQL files: %w", err)
	}

	if len(files) == 0 {
		b.logger.Info("No SQL files found to execute")
		return nil
	}

	for _, file := range files {
		result, err := b.executeFile(ctx, b.seedFS, file.Path)
		if err != nil {
			b.logger.Error("SQL file execution failed", "file", file.Path, "error", err)
			return fmt.Errorf("SQL file execution failed %s: %w", file.Path, err)
		}

		b.logger.Debug("SQL file executed successfully",
			"file", result.File,
			"duration", result.Duration.String(),
			"rows_affected", result.RowsAffected,
		)
	}

	b.logger.Info("Seed data loaded", "total_files", len(files), "environment", b.environment)
	return nil
}

// SeedFiles lists the common seed files followed by the environment ones,
// each group ordered by numeric filename prefix.
func (b *Bootstrapper) SeedFiles() ([]SQLFileInfo, error) {
	files, err := getFilesFromDir(b.seedFS, commonEnv, commonEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to get common SQL files: %w", err)
	}

	envPath := path.Join("environments", b.environment)
	if _, err := fs.Stat(b.seedFS, envPath); err == nil {
		envFiles, err := getFilesFromDir(b.seedFS, envPath, b.environment)
		if err != nil {
			return nil, fmt.Errorf("failed to get environment SQL files: %w", err)
		}
		files = append(files, envFiles...)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Environment != files[j].Environment {
			return files[i].Environment == commonEnv
		}
		if files[i].Order != files[j].Order {
			return files[i].Order < files[j].Order
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func getFilesFromDir(fsys fs.FS, dir, environment string) ([]SQLFileInfo, error) {
	var files []SQLFileInfo

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == dir {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			return nil
		}

		files = append(files, SQLFileInfo{
			Path:        p,
			Name:        d.Name(),
			Order:       parseFileOrder(d.Name()),
			Environment: environment,
		})
		return nil
	})

	return files, err
}

func parseFileOrder(filename string) int {
	matches := fileOrderPattern.FindStringSubmatch(filename)
	if len(matches) > 1 {
		var order int
		_, _ = fmt.Sscanf(matches[1], "%d", &order)
		return order
	}
	return 999
}

// executeFile runs every statement of a script in one transaction.
func (b *Bootstrapper) executeFile(ctx context.Context, fsys fs.FS, file string) (*ExecutionResult, error) {
	start := time.Now()
	result := &ExecutionResult{File: file}

	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	statements := splitSQLStatements(string(content))
	if len(statements) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				b.logger.Error("Failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	for _, stmt := range statements {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("failed to execute SQL statement: %s, error: %w", stmt, err)
		}
		n, _ := res.RowsAffected()
		result.RowsAffected += n
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	result.Duration = time.Since(start)
	return result, nil
}

// splitSQLStatements splits a script on statements ending a line with ";".
// Blank lines and "--" comment lines are dropped.
func splitSQLStatements(content string) []string {
	var statements []string
	var current strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		current.WriteString(line)
		current.WriteString(" ")

		if strings.HasSuffix(line, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}
