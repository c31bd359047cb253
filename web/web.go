// Package web embeds the HTML templates and the site stylesheet into the binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed assets
var Assets embed.FS
