// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX so they can run
// against either a database connection or a transaction.
package postgres
