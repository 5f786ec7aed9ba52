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

package catalog

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/bretuobay/web-evolution/catalog/database"
	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/repository"
	"github.com/bretuobay/web-evolution/catalog/types"
)

// Service is the product and category API offered to request handlers.
// Missing rows come back as nil or false; storage errors are returned as is.
type Service interface {
	// ListProducts returns one page of products, newest first.
	ListProducts(ctx context.Context, query *model.ProductQuery) (*types.Pagination[model.Product], error)

	// GetProductByID returns nil when the product does not exist.
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)

	// CreateProduct inserts a product and returns it as stored.
	CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// UpdateProduct writes the supplied fields; nil when the product does not exist.
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)

	// DeleteProduct reports whether a product was removed.
	DeleteProduct(ctx context.Context, id int64) (bool, error)

	// SearchProducts returns up to limit matching products (10 when limit < 1).
	SearchProducts(ctx context.Context, text string, limit int) ([]*model.Product, error)

	// ListCategories returns every category ordered by name.
	ListCategories(ctx context.Context) ([]*model.Category, error)

	// PageCategories returns one page of categories filtered by parent and text.
	PageCategories(ctx context.Context, query *model.CategoryQuery) (*types.Pagination[model.Category], error)

	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)

	CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error)

	UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error)

	// DeleteCategory removes the category only; referencing rows are kept.
	DeleteCategory(ctx context.Context, id int64) (bool, error)
}

type baseServiceImpl struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewService binds a Service to db. The caller owns db and closes it.
func NewService(db *bun.DB) Service {
	return &baseServiceImpl{
		products:   repository.NewProductRepository(db),
		categories: repository.NewCategoryRepository(db),
	}
}

// NewStoreService binds a Service to an open store.
func NewStoreService(store *database.Store) Service {
	return NewService(store.DB())
}

func (s *baseServiceImpl) ListProducts(ctx context.Context, query *model.ProductQuery) (*types.Pagination[model.Product], error) {
	return s.products.List(ctx, query)
}

func (s *baseServiceImpl) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *baseServiceImpl) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	return s.products.Create(ctx, input)
}

func (s *baseServiceImpl) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	return s.products.Update(ctx, id, patch)
}

func (s *baseServiceImpl) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return s.products.Delete(ctx, id)
}

func (s *baseServiceImpl) SearchProducts(ctx context.Context, text string, limit int) ([]*model.Product, error) {
	return s.products.Search(ctx, text, limit)
}

func (s *baseServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categories.List(ctx)
}

func (s *baseServiceImpl) PageCategories(ctx context.Context, query *model.CategoryQuery) (*types.Pagination[model.Category], error) {
	return s.categories.Page(ctx, query)
}

func (s *baseServiceImpl) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *baseServiceImpl) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	return s.categories.Create(ctx, input)
}

func (s *baseServiceImpl) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	return s.categories.Update(ctx, id, patch)
}

func (s *baseServiceImpl) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return s.categories.Delete(ctx, id)
}
