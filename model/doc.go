// Package model declares the product and category rows together with the
// create, partial-update and query payloads accepted by the repositories.
package model
