// Package connectors holds the clients for the external systems drivesync
// mirrors. Each connector implements driven ports from internal/core so the
// pipeline never depends on a vendor SDK directly.
package connectors
