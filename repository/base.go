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
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"

	"github.com/bretuobay/web-evolution/catalog/types"
)

// baseRepository holds the statements shared by the entity repositories.
// T is a bun model whose table has an integer "id" primary key.
type baseRepository[T any] struct {
	db *bun.DB
}

func (r *baseRepository[T]) getOne(ctx context.Context, id int64) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepository[T]) list(ctx context.Context, where *WhereClause, orders ...string) ([]*T, error) {
	entities := make([]*T, 0)
	err := where.Apply(r.db.NewSelect().Model(&entities)).Order(orders...).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// page counts the matching rows and then reads one page of them. A page past
// the end yields empty data with the real total.
func (r *baseRepository[T]) page(ctx context.Context, where *WhereClause, req types.PageRequest, orders ...string) (*types.Pagination[T], error) {
	var entities []*T
	query := where.Apply(r.db.NewSelect().Model(&entities))

	total, err := query.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 || req.GetOffset() >= total {
		return types.NewPagination[T](req, total, nil), nil
	}

	err = query.
		Order(orders...).
		Offset(req.GetOffset()).
		Limit(req.GetPageSize()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return types.NewPagination(req, total, entities), nil
}

// insert writes the given columns of row and stores the generated id back
// into the row.
func (r *baseRepository[T]) insert(ctx context.Context, row *T, columns ...string) error {
	query := r.db.NewInsert().Model(row).Column(columns...)
	if r.db.HasFeature(feature.InsertReturning) {
		query = query.Returning("id")
	}
	_, err := query.Exec(ctx)
	return err
}

// updateColumns runs one UPDATE with an assignment per entry plus the extra
// raw SET expressions, and returns the number of matched rows.
func (r *baseRepository[T]) updateColumns(ctx context.Context, id int64, assignments []Assignment, extra ...string) (int64, error) {
	query := r.db.NewUpdate().Model((*T)(nil))
	for _, a := range assignments {
		query = query.Set("? = ?", bun.Ident(a.Column), a.Value)
	}
	for _, expr := range extra {
		query = query.Set(expr)
	}

	res, err := query.Where("id = ?", id).Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *baseRepository[T]) deleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
