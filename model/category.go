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
	"github.com/bretuobay/web-evolution/catalog/types"
	"github.com/uptrace/bun"
)

// Category is a row of the categories table. A nil ParentID marks a root
// category. Parent links are not checked for cycles.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description,notnull" json:"description"`
	ParentID    *int64 `bun:"parent_id" json:"parentId"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parentId"`
}

// CategoryPatch is a partial update. ParentID set to Some(nil) moves the
// category to the root; an unset ParentID leaves it where it is.
type CategoryPatch struct {
	Name        types.Optional[string] `json:"name"`
	Description types.Optional[string] `json:"description"`
	ParentID    types.Optional[*int64] `json:"parentId"`
}

func (p CategoryPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Description.IsSet() && !p.ParentID.IsSet()
}

// CategoryQuery holds the optional list parameters for categories.
type CategoryQuery struct {
	Page     *int   `json:"page,omitempty"`
	PageSize *int   `json:"pageSize,omitempty"`
	Search   string `json:"search,omitempty"`
	ParentID *int64 `json:"parentId,omitempty"`
}
