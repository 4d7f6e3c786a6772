// Package memory provides in-memory implementations of the driven ports.
// They back tests and the --dry-run flag of the sync commands; nothing
// survives the process.
package memory
