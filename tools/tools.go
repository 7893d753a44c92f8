//go:build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` or run with `go run`
// and are not tracked in go.mod.
package tools

// Development tools:
//
// Air - live reload for cmd/stockme while editing Go code. Templates reload
// on their own in APP_ENV=development (see TEMPLATES_DIR).
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// mockgen - regenerates internal/mocks from the ports interfaces.
//   Run: go generate ./internal/mocks
//   Docs: https://github.com/uber-go/mock
