// Package types defines the Store and Collection interfaces, the entity
// types persisted by Tabula, and the standard errors shared by all
// storage backends and their callers.
package types
