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

const defaultSearchLimit = 10

var productOrder = []string{"created_at DESC", "id DESC"}

var productInsertColumns = []string{"name", "description", "price", "quantity", "category_id"}

type productRepository struct {
	baseRepository[model.Product]
	predicates *PredicateBuilder
}

// NewProductRepository returns a ProductRepository backed by db.
func NewProductRepository(db *bun.DB) ProductRepository {
	return &productRepository{
		baseRepository: baseRepository[model.Product]{db: db},
		predicates:     NewProductPredicateBuilder(db.Dialect().Name()),
	}
}

func (r *productRepository) List(ctx context.Context, query *model.ProductQuery) (*types.Pagination[model.Product], error) {
	if query == nil {
		query = &model.ProductQuery{}
	}
	req := types.NewPageRequest(query.Page, query.PageSize)
	where := r.predicates.Build(Filter{Reference: query.CategoryID, Search: query.Search})
	return r.page(ctx, where, req, productOrder...)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return r.getOne(ctx, id)
}

func (r *productRepository) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	row := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		CategoryID:  input.CategoryID,
	}
	if err := r.insert(ctx, row, productInsertColumns...); err != nil {
		return nil, err
	}

	created, err := r.getOne(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: product %d not found after insert", ErrInvariantViolation, row.ID)
	}
	return created, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.IsEmpty() {
		return r.getOne(ctx, id)
	}
	assignments := ProductAssignments(patch)

	n, err := r.updateColumns(ctx, id, assignments, "updated_at = CURRENT_TIMESTAMP")
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.getOne(ctx, id)
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, id)
}

func (r *productRepository) Search(ctx context.Context, text string, limit int) ([]*model.Product, error) {
	if limit < 1 {
		limit = defaultSearchLimit
	}

	var rows []*model.Product
	query := r.db.NewSelect().Model(&rows)
	err := r.predicates.Build(Filter{Search: text}).
		Apply(query).
		Order(productOrder...).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]*model.Product, 0, len(rows))
	for _, p := range rows {
		if p != nil {
			products = append(products, p)
		}
	}
	return products, nil
}
