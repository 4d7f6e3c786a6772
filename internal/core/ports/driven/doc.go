// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DriveService: Lists changes and entities, exports and downloads content
//   - SearchIndex: Upserts and deletes index documents
//   - CursorStore: Durable change-stream cursor persistence
//   - RunStore: Sync run history for status reporting
//   - ConfigStore: Application configuration
//   - TextExtractor: Plain text from binary formats such as PDF
//
// # Optional Interfaces
//
//   - TokenProvider: Access tokens for the Google drive adapter. Not needed
//     when the drive service is constructed with its own credentials.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
