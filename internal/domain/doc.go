// Package domain contains the core domain entities and value objects for cliptrim.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (clipboard APIs, file system,
// logging) and contains only pure types and error definitions.
//
// # Entities
//
//   - [Snapshot]: A point-in-time view of the clipboard contents
//   - [ContentKind]: Classification of what the clipboard held at read time
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
