// Package api contains the HTTP handlers for the task and user
// endpoints, the request/response models, and the error mapping at the
// handler boundary.
package api
