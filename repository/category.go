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
	"fmt"

	"github.com/uptrace/bun"

	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/types"
)

var categoryOrder = []string{"name ASC", "id ASC"}

var categoryInsertColumns = []string{"name", "description", "parent_id"}

type categoryRepository struct {
	baseRepository[model.Category]
	predicates *PredicateBuilder
}

// NewCategoryRepository returns a CategoryRepository backed by db.
func NewCategoryRepository(db *bun.DB) CategoryRepository {
	return &categoryRepository{
		baseRepository: baseRepository[model.Category]{db: db},
		predicates:     NewCategoryPredicateBuilder(db.Dialect().Name()),
	}
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	return r.list(ctx, nil, categoryOrder...)
}

func (r *categoryRepository) Page(ctx context.Context, query *model.CategoryQuery) (*types.Pagination[model.Category], error) {
	if query == nil {
		query = &model.CategoryQuery{}
	}
	req := types.NewPageRequest(query.Page, query.PageSize)
	where := r.predicates.Build(Filter{Reference: query.ParentID, Search: query.Search})
	return r.page(ctx, where, req, categoryOrder...)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.getOne(ctx, id)
}

func (r *categoryRepository) Create(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	row := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if err := r.insert(ctx, row, categoryInsertColumns...); err != nil {
		return nil, err
	}

	created, err := r.getOne(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: category %d not found after insert", ErrInvariantViolation, row.ID)
	}
	return created, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	if patch.IsEmpty() {
		return r.getOne(ctx, id)
	}
	assignments := CategoryAssignments(patch)

	n, err := r.updateColumns(ctx, id, assignments)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.getOne(ctx, id)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, id)
}
