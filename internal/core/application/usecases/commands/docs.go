// Package commands contains business operations that modify session state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, collaborator calls, and
// store mutation, with an ActionGuard refusing duplicate in-flight actions per order.
package commands
