// Package repository implements paginated, filterable and partially
// updatable CRUD for products and categories on top of Bun. It maps patch
// fields to columns through closed enums and builds WHERE clauses from
// filters with bound values only.
package repository
