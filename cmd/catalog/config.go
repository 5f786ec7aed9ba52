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

package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bretuobay/web-evolution/catalog/database"
)

// AppConfig holds the command's own settings. Database settings come from
// the YAML file named by ConfigPath plus DB_* variables.
type AppConfig struct {
	Env        string
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Seed       bool

	dbSeedSet bool
}

// loadEnvFiles reads .env.<APP_ENV> and .env when present. Variables already
// set in the environment win.
func loadEnvFiles(appEnv string) error {
	files := []string{".env"}
	if appEnv != "" {
		files = append([]string{".env." + appEnv}, files...)
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func loadAppConfig() *AppConfig {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CATALOG_CONFIG", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("CATALOG_SEED", true)

	return &AppConfig{
		Env:        v.GetString("APP_ENV"),
		ConfigPath: v.GetString("CATALOG_CONFIG"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		LogFormat:  v.GetString("LOG_FORMAT"),
		Seed:       v.GetBool("CATALOG_SEED"),
		dbSeedSet:  v.IsSet("DB_SEED"),
	}
}

// databaseConfig loads the store config and applies the app-level switches.
// An explicit DB_SEED overrides CATALOG_SEED.
func (c *AppConfig) databaseConfig() (*database.Config, error) {
	cfg, err := database.LoadConfig(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Bootstrap.CreateSchema = true
	if !c.dbSeedSet {
		cfg.Bootstrap.Seed = cfg.Bootstrap.Seed || c.Seed
	}
	if cfg.Bootstrap.Environment == "" {
		cfg.Bootstrap.Environment = c.Env
	}
	return cfg, nil
}
