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
	"github.com/bretuobay/web-evolution/catalog/model"
	"github.com/bretuobay/web-evolution/catalog/types"
)

// ProductField enumerates the product fields a patch may write.
type ProductField int

const (
	ProductName ProductField = iota
	ProductDescription
	ProductPrice
	ProductQuantity
	ProductCategoryID
)

var productFields = []ProductField{
	ProductName,
	ProductDescription,
	ProductPrice,
	ProductQuantity,
	ProductCategoryID,
}

var productColumns = map[ProductField]string{
	ProductName:        "name",
	ProductDescription: "description",
	ProductPrice:       "price",
	ProductQuantity:    "quantity",
	ProductCategoryID:  "category_id",
}

var productFieldNames = map[ProductField]string{
	ProductName:        "name",
	ProductDescription: "description",
	ProductPrice:       "price",
	ProductQuantity:    "quantity",
	ProductCategoryID:  "categoryId",
}

var _ types.BaseEnum = ProductField(0)

func (f ProductField) IsValid() bool {
	_, ok := productColumns[f]
	return ok
}

func (f ProductField) Number() int {
	if !f.IsValid() {
		return types.IllegalValue
	}
	return int(f)
}

func (f ProductField) Name() string {
	if name, ok := productFieldNames[f]; ok {
		return name
	}
	return types.IllegalName
}

func (f ProductField) String() string { return f.Name() }

func (f ProductField) Desc() string {
	if !f.IsValid() {
		return types.IllegalDesc
	}
	return "product." + f.Name()
}

// Column returns the storage column of a product field.
func (f ProductField) Column() (string, bool) {
	col, ok := productColumns[f]
	return col, ok
}

// ProductFields lists every product field in assignment order.
func ProductFields() []ProductField {
	out := make([]ProductField, len(productFields))
	copy(out, productFields)
	return out
}

// CategoryField enumerates the category fields a patch may write.
type CategoryField int

const (
	CategoryName CategoryField = iota
	CategoryDescription
	CategoryParentID
)

var categoryFields = []CategoryField{
	CategoryName,
	CategoryDescription,
	CategoryParentID,
}

var categoryColumns = map[CategoryField]string{
	CategoryName:        "name",
	CategoryDescription: "description",
	CategoryParentID:    "parent_id",
}

var categoryFieldNames = map[CategoryField]string{
	CategoryName:        "name",
	CategoryDescription: "description",
	CategoryParentID:    "parentId",
}

var _ types.BaseEnum = CategoryField(0)

func (f CategoryField) IsValid() bool {
	_, ok := categoryColumns[f]
	return ok
}

func (f CategoryField) Number() int {
	if !f.IsValid() {
		return types.IllegalValue
	}
	return int(f)
}

func (f CategoryField) Name() string {
	if name, ok := categoryFieldNames[f]; ok {
		return name
	}
	return types.IllegalName
}

func (f CategoryField) String() string { return f.Name() }

func (f CategoryField) Desc() string {
	if !f.IsValid() {
		return types.IllegalDesc
	}
	return "category." + f.Name()
}

func (f CategoryField) Column() (string, bool) {
	col, ok := categoryColumns[f]
	return col, ok
}

func CategoryFields() []CategoryField {
	out := make([]CategoryField, len(categoryFields))
	copy(out, categoryFields)
	return out
}

// Assignment is one "column = value" pair of an UPDATE statement.
type Assignment struct {
	Field  types.BaseEnum
	Column string
	Value  interface{}
}

// ProductAssignments translates the supplied fields of a patch into
// assignments, in ProductFields order. Values are passed through untouched.
func ProductAssignments(patch model.ProductPatch) []Assignment {
	values := map[ProductField]func() (interface{}, bool){
		ProductName:        optionalValue(patch.Name),
		ProductDescription: optionalValue(patch.Description),
		ProductPrice:       optionalValue(patch.Price),
		ProductQuantity:    optionalValue(patch.Quantity),
		ProductCategoryID:  optionalValue(patch.CategoryID),
	}

	var out []Assignment
	for _, f := range productFields {
		v, ok := values[f]()
		if !ok {
			continue
		}
		col, _ := f.Column()
		out = append(out, Assignment{Field: f, Column: col, Value: v})
	}
	return out
}

// CategoryAssignments translates the supplied fields of a patch into
// assignments, in CategoryFields order. A supplied nil ParentID is kept and
// written as NULL.
func CategoryAssignments(patch model.CategoryPatch) []Assignment {
	values := map[CategoryField]func() (interface{}, bool){
		CategoryName:        optionalValue(patch.Name),
		CategoryDescription: optionalValue(patch.Description),
		CategoryParentID:    optionalValue(patch.ParentID),
	}

	var out []Assignment
	for _, f := range categoryFields {
		v, ok := values[f]()
		if !ok {
			continue
		}
		col, _ := f.Column()
		out = append(out, Assignment{Field: f, Column: col, Value: v})
	}
	return out
}

func optionalValue[T any](o types.Optional[T]) func() (interface{}, bool) {
	return func() (interface{}, bool) {
		v, ok := o.Get()
		return v, ok
	}
}
