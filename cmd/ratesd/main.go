// Command ratesd serves the static calculator site locally: the production
// build is hosted from docs/ by GitHub Pages, and this server exists only to
// run the same static build on a workstation. No user data is stored
// server-side.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultAddr = "127.0.0.1:5000"

// serveDocs returns a handler rooted at docsDir. Missing files get a plain
// 404 rather than falling through to an index page.
func serveDocs(docsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := chi.URLParam(r, "*")
		if sub == "" {
			sub = "index.html"
		}

		// path.Clean plus the rooted join keeps traversal inside docsDir
		target := filepath.Join(docsDir, filepath.FromSlash(path.Clean("/"+sub)))

		info, err := os.Stat(target)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)

			return
		}

		http.ServeFile(w, r, target)
	}
}

func main() {
	var (
		addr    string
		docsDir string
	)

	flag.StringVar(&addr, "addr", defaultAddr, "the address to listen on")
	flag.StringVar(&docsDir, "docs", "docs", "the static site directory to serve")
	flag.Parse()

	if _, err := os.Stat(docsDir); err != nil {
		log.Fatalf("cannot serve %v: %v", docsDir, err.Error())
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", serveDocs(docsDir))
	r.Get("/*", serveDocs(docsDir))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("serving %v on http://%v", docsDir, addr)

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err.Error())
	}
}
