// Package domain defines the core business entities for drivesync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entity: A drive file or folder as returned by the drive service
//   - ChangeRecord: A single delta event from the change stream
//   - FileDocument: The flat, index-ready record for a file
//   - OwnerRecord / LocationRecord: Deduplicated side-table records
//   - Cursor: The resumable position in the change stream
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
