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
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/bretuobay/web-evolution/catalog/database"
	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/types"
)

// seeded store: 6 categories, 12 products
const seededProducts = 12

func openDB(t *testing.T, seed bool) *bun.DB {
	t.Helper()
	store, err := database.Open(context.Background(), database.MemoryConfig(seed))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.DB()
}

func intPtr(v int) *int { return &v }

func hammerInput(categoryID int64) model.ProductInput {
	return model.ProductInput{
		Name:        "Hammer",
		Description: "Steel head",
		Price:       decimal.RequireFromString("9.99"),
		Quantity:    3,
		CategoryID:  categoryID,
	}
}

func TestProductListDefaults(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))

	page, err := repo.List(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, types.DefaultPageSize, page.PageSize)
	assert.Equal(t, seededProducts, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 10)

	// newest first; seed rows share a timestamp so id breaks the tie
	for i := 1; i < len(page.Data); i++ {
		prev, cur := page.Data[i-1], page.Data[i]
		assert.False(t, cur.CreatedAt.After(prev.CreatedAt))
		assert.Greater(t, prev.ID, cur.ID)
	}
}

func TestProductListPages(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))
	ctx := context.Background()

	second, err := repo.List(ctx, &model.ProductQuery{Page: intPtr(2)})
	require.NoError(t, err)
	assert.Len(t, second.Data, 2)
	assert.Equal(t, 2, second.Page)

	beyond, err := repo.List(ctx, &model.ProductQuery{Page: intPtr(9)})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.NotNil(t, beyond.Data)
	assert.Equal(t, seededProducts, beyond.Total)

	clamped, err := repo.List(ctx, &model.ProductQuery{Page: intPtr(0), PageSize: intPtr(500)})
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, types.MaxPageSize, clamped.PageSize)
	assert.Len(t, clamped.Data, seededProducts)
	assert.Equal(t, 1, clamped.TotalPages)
}

func TestProductListFarPastTheEnd(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))

	// (page-1)*pageSize does not fit in an int
	far := math.MaxInt/64 + 2
	page, err := repo.List(context.Background(), &model.ProductQuery{Page: &far, PageSize: intPtr(64)})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, far, page.Page)
	assert.Equal(t, seededProducts, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestProductListTotalPages(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))
	ctx := context.Background()

	queries := []*model.ProductQuery{
		{},
		{PageSize: intPtr(1)},
		{PageSize: intPtr(5)},
		{PageSize: intPtr(12)},
		{PageSize: intPtr(0)},
		{CategoryID: int64Ptr(4), PageSize: intPtr(2)},
		{CategoryID: int64Ptr(99)},
		{Search: "laptop", PageSize: intPtr(2)},
		{Search: "nothing matches this"},
	}
	for _, q := range queries {
		page, err := repo.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, types.TotalPages(page.Total, page.PageSize), page.TotalPages)
		assert.GreaterOrEqual(t, page.TotalPages, 1)
		assert.LessOrEqual(t, len(page.Data), page.PageSize)
	}
}

func TestProductListByCategory(t *testing.T) {
	db := openDB(t, true)
	repo := NewProductRepository(db)
	ctx := context.Background()

	categories, err := NewCategoryRepository(db).List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	seen := 0
	for _, c := range categories {
		page, err := repo.List(ctx, &model.ProductQuery{CategoryID: &c.ID, PageSize: intPtr(100)})
		require.NoError(t, err)
		assert.Equal(t, len(page.Data), page.Total)
		for _, p := range page.Data {
			assert.Equal(t, c.ID, p.CategoryID)
		}
		seen += page.Total
	}
	assert.Equal(t, seededProducts, seen)
}

func TestProductListSearch(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))
	ctx := context.Background()

	for _, s := range []string{"laptop", "LAPTOP", "Lamp", "steel", "a"} {
		page, err := repo.List(ctx, &model.ProductQuery{Search: s, PageSize: intPtr(100)})
		require.NoError(t, err)
		for _, p := range page.Data {
			text := strings.ToLower(p.Name + " " + p.Description)
			assert.Contains(t, text, strings.ToLower(s))
		}
	}

	page, err := repo.List(ctx, &model.ProductQuery{Search: "LAPTOP"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	page, err = repo.List(ctx, &model.ProductQuery{Search: "laptop", CategoryID: int64Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestProductSearchWildcardsAreNotEscaped(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))

	page, err := repo.List(context.Background(), &model.ProductQuery{Search: "%"})
	require.NoError(t, err)
	assert.Equal(t, seededProducts, page.Total)
}

func TestProductCreateAndGet(t *testing.T) {
	repo := NewProductRepository(openDB(t, false))
	ctx := context.Background()

	created, err := repo.Create(ctx, hammerInput(5))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Hammer", created.Name)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("9.99")), created.Price.String())
	assert.Equal(t, 3, created.Quantity)
	assert.Equal(t, int64(5), created.CategoryID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProductCreateAcceptsUnvalidatedValues(t *testing.T) {
	repo := NewProductRepository(openDB(t, false))

	in := hammerInput(404)
	in.Quantity = -1
	in.Price = decimal.RequireFromString("-2.5")

	created, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, -1, created.Quantity)
	assert.Equal(t, int64(404), created.CategoryID)
}

func TestProductGetMissing(t *testing.T) {
	repo := NewProductRepository(openDB(t, false))

	got, err := repo.GetByID(context.Background(), 12345)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductUpdateEmptyPatch(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))
	ctx := context.Background()

	before, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, before)

	after, err := repo.Update(ctx, 3, model.ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, before, after)

	missing, err := repo.Update(ctx, 999, model.ProductPatch{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductUpdateSingleField(t *testing.T) {
	db := openDB(t, true)
	repo := NewProductRepository(db)
	ctx := context.Background()

	// move updated_at into the past so a refresh is visible at second resolution
	_, err := db.ExecContext(ctx, "UPDATE products SET updated_at = '2000-01-01 00:00:00' WHERE id = 7")
	require.NoError(t, err)

	before, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 2000, before.UpdatedAt.Year())

	after, err := repo.Update(ctx, 7, model.ProductPatch{Quantity: types.Some(5)})
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.Equal(t, 5, after.Quantity)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), after.UpdatedAt.String())
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt))

	// everything but quantity and updated_at is untouched
	after.Quantity = before.Quantity
	after.UpdatedAt = before.UpdatedAt
	assert.Equal(t, before, after)
}

func TestProductUpdateSeveralFields(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))

	after, err := repo.Update(context.Background(), 1, model.ProductPatch{
		Name:       types.Some("Studio Headphones"),
		Price:      types.Some(decimal.RequireFromString("149.5")),
		CategoryID: types.Some[int64](5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Studio Headphones", after.Name)
	assert.True(t, after.Price.Equal(decimal.RequireFromString("149.5")))
	assert.Equal(t, int64(5), after.CategoryID)
}

func TestProductUpdateMissing(t *testing.T) {
	repo := NewProductRepository(openDB(t, false))

	got, err := repo.Update(context.Background(), 77, model.ProductPatch{Quantity: types.Some(1)})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductDelete(t *testing.T) {
	repo := NewProductRepository(openDB(t, false))
	ctx := context.Background()

	created, err := repo.Create(ctx, hammerInput(1))
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductIDsAreNotReused(t *testing.T) {
	repo := NewProductRepository(openDB(t, false))
	ctx := context.Background()

	first, err := repo.Create(ctx, hammerInput(1))
	require.NoError(t, err)
	_, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)

	second, err := repo.Create(ctx, hammerInput(1))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestProductSearch(t *testing.T) {
	repo := NewProductRepository(openDB(t, true))
	ctx := context.Background()

	got, err := repo.Search(ctx, "laptop", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].ID, got[i].ID)
	}

	got, err = repo.Search(ctx, "laptop", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// a limit below 1 falls back to 10
	got, err = repo.Search(ctx, "", -4)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = repo.Search(ctx, "no such product", 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProductCreateInvariantViolation(t *testing.T) {
	db := openDB(t, false)
	repo := NewProductRepository(db)
	ctx := context.Background()

	// the trigger makes the inserted row disappear before it can be read back
	_, err := db.ExecContext(ctx, `CREATE TRIGGER vanish AFTER INSERT ON products
BEGIN DELETE FROM products WHERE id = NEW.id; END`)
	require.NoError(t, err)

	got, err := repo.Create(ctx, hammerInput(1))
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestProductStorageErrorsPassThrough(t *testing.T) {
	db := openDB(t, false)
	repo := NewProductRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "DROP TABLE products")
	require.NoError(t, err)

	_, err = repo.List(ctx, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvariantViolation)
	is, kind := database.ClassifyError(err)
	assert.True(t, is)
	assert.Equal(t, database.NoTableErr, kind, fmt.Sprint(err))

	_, err = repo.GetByID(ctx, 1)
	assert.Error(t, err)
	_, err = repo.Delete(ctx, 1)
	assert.Error(t, err)
}
