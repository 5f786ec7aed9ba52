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

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/types"
)

func TestProductFieldColumns(t *testing.T) {
	want := map[ProductField]string{
		ProductName:        "name",
		ProductDescription: "description",
		ProductPrice:       "price",
		ProductQuantity:    "quantity",
		ProductCategoryID:  "category_id",
	}
	for f, col := range want {
		got, ok := f.Column()
		assert.True(t, ok)
		assert.Equal(t, col, got)
		assert.True(t, f.IsValid())
	}
	assert.Equal(t, "categoryId", ProductCategoryID.Name())
	assert.Equal(t, "product.price", ProductPrice.Desc())
	assert.Len(t, ProductFields(), len(want))
}

func TestIllegalFieldsHaveNoColumn(t *testing.T) {
	for _, f := range []types.BaseEnum{ProductField(42), CategoryField(-3)} {
		assert.True(t, types.IsIllegal(f))
		assert.Equal(t, types.IllegalName, f.Name())
		assert.Equal(t, types.IllegalValue, f.Number())
	}

	_, ok := ProductField(42).Column()
	assert.False(t, ok)
	_, ok = CategoryField(7).Column()
	assert.False(t, ok)
}

func TestProductAssignmentsFollowFieldOrder(t *testing.T) {
	patch := model.ProductPatch{
		CategoryID: types.Some[int64](3),
		Quantity:   types.Some(5),
		Name:       types.Some("Claw Hammer"),
	}

	got := ProductAssignments(patch)
	assert.Equal(t, []Assignment{
		{Field: ProductName, Column: "name", Value: "Claw Hammer"},
		{Field: ProductQuantity, Column: "quantity", Value: 5},
		{Field: ProductCategoryID, Column: "category_id", Value: int64(3)},
	}, got)
}

func TestProductAssignmentsPassValuesThrough(t *testing.T) {
	// no coercion or validation: a negative quantity is written as given
	price := decimal.RequireFromString("-1.50")
	got := ProductAssignments(model.ProductPatch{Price: types.Some(price), Quantity: types.Some(-2)})

	assert.Len(t, got, 2)
	assert.Equal(t, price, got[0].Value)
	assert.Equal(t, -2, got[1].Value)
}

func TestCategoryFieldColumns(t *testing.T) {
	fields := CategoryFields()
	assert.Equal(t, []CategoryField{CategoryName, CategoryDescription, CategoryParentID}, fields)

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i], _ = f.Column()
	}
	assert.Equal(t, []string{"name", "description", "parent_id"}, cols)
	assert.Equal(t, "category.parentId", CategoryParentID.Desc())
}

func TestEmptyPatchHasNoAssignments(t *testing.T) {
	assert.True(t, model.ProductPatch{}.IsEmpty())
	assert.True(t, model.CategoryPatch{}.IsEmpty())
	assert.Empty(t, ProductAssignments(model.ProductPatch{}))
	assert.Empty(t, CategoryAssignments(model.CategoryPatch{}))

	// a single supplied field, even a null parent, makes the patch non-empty
	assert.False(t, model.ProductPatch{Price: types.Some(decimal.Zero)}.IsEmpty())
	assert.False(t, model.CategoryPatch{ParentID: types.Some[*int64](nil)}.IsEmpty())
	for _, f := range ProductFields() {
		assert.True(t, f.IsValid(), f.String())
	}
}

func TestCategoryAssignmentsKeepExplicitNullParent(t *testing.T) {
	got := CategoryAssignments(model.CategoryPatch{
		Description: types.Some("Hand tools"),
		ParentID:    types.Some[*int64](nil),
	})

	assert.Len(t, got, 2)
	assert.Equal(t, "description", got[0].Column)
	assert.Equal(t, "parent_id", got[1].Column)
	assert.Equal(t, CategoryParentID, got[1].Field)
	assert.Nil(t, got[1].Value.(*int64))
}
