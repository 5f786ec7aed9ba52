// Package database opens and closes the catalog store, bootstraps its schema
// and seed data from embedded SQL scripts, and provides the logging, query
// hooks, health checks and error classification shared by the repositories.
package database
