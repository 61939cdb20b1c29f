// Package web holds the embedded server-rendered views.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
