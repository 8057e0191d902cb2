// Package static holds the stylesheet and other assets served under /static.
package static

import "embed"

//go:embed *.css
var FS embed.FS
