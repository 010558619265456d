// Package web holds the HTML templates and static assets, embedded into the
// binary so the server needs no files at runtime.
package web

import "embed"

// Templates contains templates/*.html.
//
//go:embed templates/*.html
var Templates embed.FS

// Static contains the CSS and JavaScript served under /static/.
//
//go:embed static
var Static embed.FS
