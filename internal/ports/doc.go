// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [Clipboard]: Reads and writes the operating system clipboard
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (Win32 clipboard, X11/Cocoa clipboard,
// zerolog, etc.).
//
// This separation enables:
//   - Testing the monitor loop with mock implementations
//   - Swapping platform clipboard backends without changing business logic
//   - Clear boundaries and dependency direction
package ports
