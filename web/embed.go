// Package web bundles the default page templates and static files.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*.css static/*.js static/robots.txt
var assetsFS embed.FS

func Templates() fs.FS {
	sub, _ := fs.Sub(assetsFS, "templates")
	return sub
}

func Static() fs.FS {
	sub, _ := fs.Sub(assetsFS, "static")
	return sub
}
