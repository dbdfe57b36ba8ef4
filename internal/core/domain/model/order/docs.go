// Package order implements the Order aggregate for the agent-side assignment model.
// It contains the Order entity and its Status state machine, which enforce the
// business rule that an assigned order is accepted or rejected exactly once.
//
// The aggregate maintains these invariants:
//   - Orders are created only through NewOrder or RestoreOrder with validated fields
//   - Status transitions follow Assigned -> Accepted | Rejected
//   - Accepted and Rejected are terminal: further accept/reject actions fail
//     with ErrStatusIsFinal, giving callers an explicit idempotence signal
//
// The package follows Domain-Driven Design principles with encapsulated state
// and behavior-rich domain objects.
package order
