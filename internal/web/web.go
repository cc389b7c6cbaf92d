// Package web holds the embedded browser client for the assistant.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler serves the client UI.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// embed guarantees the subtree exists; only a broken build gets here.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
