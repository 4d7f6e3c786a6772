// Package google provides shared infrastructure for the Google Drive connector.
//
// This package contains:
//   - TokenSource adapter to bridge the TokenProvider port to oauth2.TokenSource
//   - The Drive API service factory
//   - Error classification for Google API errors (401, 403, 404, 429, 5xx)
//   - Retry with exponential backoff for transient failures
//   - Rate limiting to respect Drive API quotas
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// The connector needs https://www.googleapis.com/auth/drive.readonly
// (restricted). For user-created internal apps, restricted scopes don't
// require verification.
package google
