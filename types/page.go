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

package types

import "math"

// Pagination bounds applied by NormalizePage.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage fills and clamps the requested page and page size.
// A nil page means the first page; a nil page size means DefaultPageSize.
// Pages have no upper bound, page sizes are clamped to [1, MaxPageSize].
func NormalizePage(page, pageSize *int) (int, int) {
	p, size := DefaultPage, DefaultPageSize
	if page != nil {
		p = *page
	}
	if pageSize != nil {
		size = *pageSize
	}
	if p < 1 {
		p = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return p, size
}

// PageRequest is a normalized page/page-size pair.
type PageRequest struct {
	page     int
	pageSize int
}

// NewPageRequest normalizes the optional page and page size.
func NewPageRequest(page, pageSize *int) PageRequest {
	p, size := NormalizePage(page, pageSize)
	return PageRequest{page: p, pageSize: size}
}

func (p PageRequest) GetPage() int { return p.page }

func (p PageRequest) GetPageSize() int { return p.pageSize }

// GetOffset returns the number of rows before the page. It saturates at
// math.MaxInt instead of wrapping for pages far past any data.
func (p PageRequest) GetOffset() int {
	if p.page-1 > math.MaxInt/p.pageSize {
		return math.MaxInt
	}
	return (p.page - 1) * p.pageSize
}

// Pagination is the envelope returned by paginated list operations.
type Pagination[T any] struct {
	Data       []*T `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
}

// NewPagination builds the envelope for one page of items out of total rows.
func NewPagination[T any](req PageRequest, total int, items []*T) *Pagination[T] {
	if items == nil {
		items = make([]*T, 0)
	}
	return &Pagination[T]{
		Data:       items,
		Total:      total,
		Page:       req.GetPage(),
		PageSize:   req.GetPageSize(),
		TotalPages: TotalPages(total, req.GetPageSize()),
	}
}

// TotalPages returns ceil(total / pageSize), never less than one.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
