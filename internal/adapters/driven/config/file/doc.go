// Package file provides the TOML-backed configuration store.
//
// The file lives at <config dir>/config.toml (default ~/.drivesync). Keys are
// addressed in dot notation and written back as nested TOML tables:
//
//	[drive]
//	page_size = 1000
//
// Any key can be overridden by an environment variable named after it,
// e.g. DRIVESYNC_GOOGLE_REFRESH_TOKEN for "google.refresh_token".
package file
