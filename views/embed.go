// Package views holds the HTML templates rendered by the Fiber view engine.
package views

import "embed"

//go:embed *.html layouts/*.html
var FS embed.FS
