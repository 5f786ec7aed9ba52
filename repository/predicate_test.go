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

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun/dialect"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildEmptyFilter(t *testing.T) {
	w := NewProductPredicateBuilder(dialect.SQLite).Build(Filter{})

	assert.True(t, w.IsEmpty())
	assert.Empty(t, w.Bindings)
	assert.Equal(t, "", w.String())
}

func TestBuildReferenceOnly(t *testing.T) {
	w := NewProductPredicateBuilder(dialect.SQLite).Build(Filter{Reference: int64Ptr(5)})

	assert.Equal(t, []Predicate{{Clause: "category_id = ?", Params: []string{"categoryId"}}}, w.Predicates)
	assert.Equal(t, map[string]interface{}{"categoryId": int64(5)}, w.Bindings)
}

func TestBuildSearchOnly(t *testing.T) {
	w := NewProductPredicateBuilder(dialect.SQLite).Build(Filter{Search: "lamp"})

	assert.Len(t, w.Predicates, 1)
	p := w.Predicates[0]
	assert.Equal(t, "(name LIKE ? OR description LIKE ?)", p.Clause)
	assert.Equal(t, []string{SearchBinding, SearchBinding}, p.Params)
	assert.Equal(t, []interface{}{"%lamp%", "%lamp%"}, w.Args(p))
	assert.Len(t, w.Bindings, 1)
}

func TestBuildReferenceBeforeSearch(t *testing.T) {
	w := NewProductPredicateBuilder(dialect.SQLite).Build(Filter{Search: "steel", Reference: int64Ptr(2)})

	assert.Equal(t, "category_id = ? AND (name LIKE ? OR description LIKE ?)", w.String())
	assert.Equal(t, map[string]interface{}{"categoryId": int64(2), "search": "%steel%"}, w.Bindings)
}

func TestBuildUsesILikeOnPostgres(t *testing.T) {
	w := NewProductPredicateBuilder(dialect.PG).Build(Filter{Search: "x"})
	assert.Equal(t, "(name ILIKE ? OR description ILIKE ?)", w.String())

	w = NewProductPredicateBuilder(dialect.MySQL).Build(Filter{Search: "x"})
	assert.Equal(t, "(name LIKE ? OR description LIKE ?)", w.String())
}

func TestBuildDoesNotEscapeWildcards(t *testing.T) {
	w := NewProductPredicateBuilder(dialect.SQLite).Build(Filter{Search: "50%_off"})
	assert.Equal(t, "%50%_off%", w.Bindings[SearchBinding])
}

func TestBuildCategoryFilter(t *testing.T) {
	w := NewCategoryPredicateBuilder(dialect.SQLite).Build(Filter{Reference: int64Ptr(1), Search: "top"})

	assert.Equal(t, "parent_id = ? AND (name LIKE ? OR description LIKE ?)", w.String())
	assert.Equal(t, int64(1), w.Bindings["parentId"])
}

func TestNilWhereClause(t *testing.T) {
	var w *WhereClause
	assert.True(t, w.IsEmpty())
	assert.Equal(t, "", w.String())
}
