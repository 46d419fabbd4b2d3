// Package onlycodes is the OnlyCodes feed and social graph API.
//
// The server binary lives in cmd/onlycodes. The HTTP surface is in
// internal/handlers, backed by the feed service (internal/feed) and the
// repositories (internal/repository) over GORM. Shared plumbing:
//
//   - internal/config: viper backed configuration
//   - internal/middleware: auth, request ids, logging, metrics, rate limiting
//   - internal/storage: S3 media uploads
//   - internal/seed: fake data for development
package onlycodes
