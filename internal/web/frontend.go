package web

import (
	"net/http"
	"path/filepath"
	"strings"

	"hostbridge/internal/conf"
	"hostbridge/internal/netx"
)

// StartFrontend registers the front-end bundle routes with the given mux:
// the entry page at / and static files under /assets/.
func StartFrontend(mux *http.ServeMux) {
	root := conf.GetWeb().RootPath
	mux.Handle("/assets/", http.StripPrefix("/assets", http.FileServer(http.Dir(filepath.Join(root, "assets")))))
	mux.HandleFunc("/", handleIndex(filepath.Join(root, "index.html")))
}

// handleIndex serves the entry page for every path no other route claims,
// so client-side routes resolve to the bundle. Unmatched /api/ paths stay JSON.
func handleIndex(indexPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			netx.WriteNotFound(w)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			netx.WriteMethodNotAllowed(w)
			return
		}
		http.ServeFile(w, r, indexPath)
	}
}
