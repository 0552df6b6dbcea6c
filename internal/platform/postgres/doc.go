// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the store package.
//
// Every store accepts a store.DBTX, so the same implementation runs against
// either a *sql.DB or an open *sql.Tx; the WithTx methods rebind a store to a
// transaction for multi-statement writes. Driver-level errors are translated
// to the store package's sentinel errors where a sentinel applies, and
// returned unwrapped otherwise.
package postgres
