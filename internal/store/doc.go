// Package store defines the persistence interfaces for tasks and users,
// the shared error taxonomy, and transaction plumbing. Implementations
// live under internal/platform.
package store
