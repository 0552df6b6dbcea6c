// Package store defines persistence interfaces and sentinel errors shared by
// all storage backends.
package store
