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

	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/types"
)

// ProductRepository is the data access contract for products. Missing rows
// are reported as a nil result, never as an error.
type ProductRepository interface {
	// List returns one page of products, newest first, filtered by category
	// and search text.
	List(ctx context.Context, query *model.ProductQuery) (*types.Pagination[model.Product], error)

	GetByID(ctx context.Context, id int64) (*model.Product, error)

	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// Update writes the supplied fields and refreshes updated_at. An empty
	// patch writes nothing and returns the current row.
	Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)

	Delete(ctx context.Context, id int64) (bool, error)

	// Search returns at most limit products matching text, newest first.
	// A limit below 1 means 10.
	Search(ctx context.Context, text string, limit int) ([]*model.Product, error)
}

// CategoryRepository is the data access contract for categories.
type CategoryRepository interface {
	// List returns every category ordered by name.
	List(ctx context.Context) ([]*model.Category, error)

	// Page returns one page of categories filtered by parent and search text.
	Page(ctx context.Context, query *model.CategoryQuery) (*types.Pagination[model.Category], error)

	GetByID(ctx context.Context, id int64) (*model.Category, error)

	Create(ctx context.Context, input model.CategoryInput) (*model.Category, error)

	Update(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error)

	// Delete removes the category only. Products and child categories keep
	// pointing at the removed id.
	Delete(ctx context.Context, id int64) (bool, error)
}
