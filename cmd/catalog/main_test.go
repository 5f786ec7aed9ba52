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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryApp() *AppConfig {
	return &AppConfig{Env: "test", LogLevel: "error", Seed: true}
}

func TestRunProducts(t *testing.T) {
	var out bytes.Buffer
	opts := options{pageSize: 5, category: 4}

	require.NoError(t, run(context.Background(), memoryApp(), opts, []string{"products"}, &out))

	var page struct {
		Data       []map[string]interface{} `json:"data"`
		Total      int                      `json:"total"`
		PageSize   int                      `json:"pageSize"`
		TotalPages int                      `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, 1, page.TotalPages)
	for _, p := range page.Data {
		assert.EqualValues(t, 4, p["categoryId"])
	}
}

func TestRunSearchAndGet(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), memoryApp(), options{limit: 2}, []string{"search", "laptop"}, &out))

	var found []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &found))
	assert.Len(t, found, 2)

	out.Reset()
	require.NoError(t, run(context.Background(), memoryApp(), options{}, []string{"get", "5"}, &out))
	var product map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &product))
	assert.Equal(t, "The Go Programming Language", product["name"])
}

func TestRunCategories(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), memoryApp(), options{}, []string{"categories"}, &out))

	var categories []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &categories))
	assert.Len(t, categories, 6)
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	assert.Error(t, run(ctx, memoryApp(), options{}, nil, &out))
	assert.Error(t, run(ctx, memoryApp(), options{}, []string{"export"}, &out))
	assert.Error(t, run(ctx, memoryApp(), options{}, []string{"get", "abc"}, &out))
	assert.Error(t, run(ctx, memoryApp(), options{}, []string{"get", "999"}, &out))
	assert.Error(t, run(ctx, memoryApp(), options{}, []string{"search"}, &out))
}

func TestLoadAppConfig(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CATALOG_SEED", "false")

	app := loadAppConfig()
	assert.Equal(t, "staging", app.Env)
	assert.Equal(t, "json", app.LogFormat)
	assert.Equal(t, "info", app.LogLevel)
	assert.False(t, app.Seed)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// missing files are fine
	require.NoError(t, loadEnvFiles("test"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("CATALOG_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("CATALOG_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("CATALOG_TEST_VALUE"))

	require.NoError(t, loadEnvFiles("test"))
	assert.Equal(t, "from-file", os.Getenv("CATALOG_TEST_VALUE"))
}
