// Package stockme provides embedded assets for production builds.
package stockme

import "embed"

// Embedded assets for production builds.
// In dev mode templates and static files are read from disk instead.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
