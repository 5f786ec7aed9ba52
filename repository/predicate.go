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
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Binding names used by WhereClause.
const (
	SearchBinding = "search"
)

// Filter holds the optional list filters shared by products and categories.
// Reference is the category id for products and the parent id for categories.
type Filter struct {
	Reference *int64
	Search    string
}

// Predicate is one WHERE fragment with positional placeholders. Params names
// the binding consumed by each placeholder, in order.
type Predicate struct {
	Clause string
	Params []string
}

// WhereClause is an ordered list of predicates joined with AND plus the
// values they bind. A binding may be consumed by several placeholders.
type WhereClause struct {
	Predicates []Predicate
	Bindings   map[string]interface{}
}

func (w *WhereClause) IsEmpty() bool {
	return w == nil || len(w.Predicates) == 0
}

// Args resolves the placeholders of p against the bindings.
func (w *WhereClause) Args(p Predicate) []interface{} {
	args := make([]interface{}, len(p.Params))
	for i, name := range p.Params {
		args[i] = w.Bindings[name]
	}
	return args
}

// String renders the clause for logs and tests, e.g.
// "category_id = ? AND (name LIKE ? OR description LIKE ?)".
func (w *WhereClause) String() string {
	if w.IsEmpty() {
		return ""
	}
	parts := make([]string, len(w.Predicates))
	for i, p := range w.Predicates {
		parts[i] = p.Clause
	}
	return strings.Join(parts, " AND ")
}

// Apply adds every predicate to q.
func (w *WhereClause) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if w.IsEmpty() {
		return q
	}
	for _, p := range w.Predicates {
		q = q.Where(p.Clause, w.Args(p)...)
	}
	return q
}

// PredicateBuilder turns a Filter into a WhereClause for one entity.
type PredicateBuilder struct {
	referenceColumn  string
	referenceBinding string
	searchColumns    []string
	likeOperator     string
}

// NewPredicateBuilder configures a builder. PostgreSQL gets ILIKE so search
// is case-insensitive on every supported store.
func NewPredicateBuilder(name dialect.Name, referenceColumn, referenceBinding string, searchColumns ...string) *PredicateBuilder {
	op := "LIKE"
	if name == dialect.PG {
		op = "ILIKE"
	}
	return &PredicateBuilder{
		referenceColumn:  referenceColumn,
		referenceBinding: referenceBinding,
		searchColumns:    searchColumns,
		likeOperator:     op,
	}
}

// NewProductPredicateBuilder filters on category_id and searches name and
// description.
func NewProductPredicateBuilder(name dialect.Name) *PredicateBuilder {
	return NewPredicateBuilder(name, "category_id", "categoryId", "name", "description")
}

// NewCategoryPredicateBuilder filters on parent_id and searches name and
// description.
func NewCategoryPredicateBuilder(name dialect.Name) *PredicateBuilder {
	return NewPredicateBuilder(name, "parent_id", "parentId", "name", "description")
}

// Build returns the predicates for f. The reference predicate always comes
// first. Search text is wrapped in % without escaping, so % and _ typed by
// the user act as wildcards.
func (b *PredicateBuilder) Build(f Filter) *WhereClause {
	w := &WhereClause{Bindings: map[string]interface{}{}}

	if f.Reference != nil {
		w.Predicates = append(w.Predicates, Predicate{
			Clause: fmt.Sprintf("%s = ?", b.referenceColumn),
			Params: []string{b.referenceBinding},
		})
		w.Bindings[b.referenceBinding] = *f.Reference
	}

	if f.Search != "" && len(b.searchColumns) > 0 {
		terms := make([]string, len(b.searchColumns))
		params := make([]string, len(b.searchColumns))
		for i, col := range b.searchColumns {
			terms[i] = fmt.Sprintf("%s %s ?", col, b.likeOperator)
			params[i] = SearchBinding
		}
		w.Predicates = append(w.Predicates, Predicate{
			Clause: "(" + strings.Join(terms, " OR ") + ")",
			Params: params,
		})
		w.Bindings[SearchBinding] = "%" + f.Search + "%"
	}

	return w
}
