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

package model

import (
	"time"

	"github.com/bretuobay/web-evolution/catalog/types"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is a row of the products table. ID and both timestamps are assigned
// by the store; UpdatedAt is refreshed on every successful update.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          int64           `bun:"id,pk,autoincrement" json:"id"`
	Name        string          `bun:"name,notnull" json:"name"`
	Description string          `bun:"description,notnull" json:"description"`
	Price       decimal.Decimal `bun:"price,notnull" json:"price"`
	Quantity    int             `bun:"quantity,notnull" json:"quantity"`
	CategoryID  int64           `bun:"category_id,notnull" json:"categoryId"`
	CreatedAt   time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// ProductInput carries every client-supplied field of a new product.
// CategoryID is expected to reference an existing category but is not checked.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  int64           `json:"categoryId"`
}

// ProductPatch is a partial update; only supplied fields are written.
type ProductPatch struct {
	Name        types.Optional[string]          `json:"name"`
	Description types.Optional[string]          `json:"description"`
	Price       types.Optional[decimal.Decimal] `json:"price"`
	Quantity    types.Optional[int]             `json:"quantity"`
	CategoryID  types.Optional[int64]           `json:"categoryId"`
}

// IsEmpty reports whether the patch supplies no field at all.
func (p ProductPatch) IsEmpty() bool {
	return !p.Name.IsSet() &&
		!p.Description.IsSet() &&
		!p.Price.IsSet() &&
		!p.Quantity.IsSet() &&
		!p.CategoryID.IsSet()
}

// ProductQuery holds the optional list parameters for products.
type ProductQuery struct {
	Page       *int   `json:"page,omitempty"`
	PageSize   *int   `json:"pageSize,omitempty"`
	Search     string `json:"search,omitempty"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}
