package main

// Read-only web viewer for a compiled fastac namespace persisted with the
// sqlite store (`fastac -f sqlite -o blocks.db input.fa`).

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cathalgarvey/fastac/internal/store"
)

// BlockView is one namespace entry prepared for rendering.
type BlockView struct {
	Position int            `json:"position"`
	Title    string         `json:"title"`
	Sequence string         `json:"sequence"`
	Type     string         `json:"type"`
	Meta     map[string]any `json:"meta"`
	Residues int            `json:"residues"`
}

// BlocksPage carries query state for the index page.
type BlocksPage struct {
	Blocks []BlockView
	Query  string
	Sort   string
}

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"metaJSON": func(meta map[string]any) string {
		blob, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return "{}"
		}
		return string(blob)
	},
}).Parse(pageTemplates))

const pageTemplates = `
{{define "index"}}<!doctype html>
<html><head><title>fastac blocks</title></head><body>
<h1>Compiled blocks</h1>
<form method="get"><input name="q" value="{{.Query}}" placeholder="filter titles"><button>Filter</button></form>
<table border="1" cellpadding="4">
<tr><th>#</th><th>Title</th><th>Type</th><th>Residues</th></tr>
{{range .Blocks}}<tr><td>{{.Position}}</td><td><a href="/block/{{.Title}}">{{.Title}}</a></td><td>{{.Type}}</td><td>{{.Residues}}</td></tr>{{end}}
</table>
</body></html>{{end}}

{{define "block"}}<!doctype html>
<html><head><title>{{.Title}}</title></head><body>
<h1>{{.Title}}</h1>
<p>type: {{.Type}} &middot; {{.Residues}} residues &middot; <a href="/">back</a></p>
<pre>{{.Sequence}}</pre>
<h2>Metadata</h2>
<pre>{{metaJSON .Meta}}</pre>
</body></html>{{end}}
`

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		logger.Printf("%s - %s %s %d %dB %s",
			r.RemoteAddr, r.Method, r.URL.RequestURI(), srw.status, srw.written, time.Since(start))
	})
}

// readBlocks loads every stored block and prepares it for rendering.
func readBlocks(dbPath string) ([]BlockView, error) {
	records, err := store.Load(dbPath)
	if err != nil {
		return nil, err
	}
	views := make([]BlockView, 0, len(records))
	for _, r := range records {
		var meta map[string]any
		if err := json.Unmarshal([]byte(r.Meta), &meta); err != nil {
			meta = map[string]any{}
		}
		views = append(views, BlockView{
			Position: r.Position,
			Title:    r.Title,
			Sequence: r.Sequence,
			Type:     r.Type,
			Meta:     meta,
			Residues: len(r.Sequence),
		})
	}
	return views, nil
}

func filterBlocks(blocks []BlockView, query, sortMode string) []BlockView {
	q := strings.ToLower(strings.TrimSpace(query))
	filtered := make([]BlockView, 0, len(blocks))
	for _, b := range blocks {
		if q == "" || strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(b.Type, q) {
			filtered = append(filtered, b)
		}
	}
	switch sortMode {
	case "title":
		sort.Slice(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
		})
	case "length":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Residues > filtered[j].Residues })
	default:
		// keep compilation order
	}
	return filtered
}

func indexHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocks, err := readBlocks(dbPath)
		if err != nil {
			http.Error(w, "failed to read block store", http.StatusInternalServerError)
			return
		}
		page := BlocksPage{
			Blocks: filterBlocks(blocks, r.URL.Query().Get("q"), r.URL.Query().Get("sort")),
			Query:  r.URL.Query().Get("q"),
			Sort:   r.URL.Query().Get("sort"),
		}
		if err := templates.ExecuteTemplate(w, "index", page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func blockHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimPrefix(r.URL.Path, "/block/")
		if title == "" {
			http.Error(w, "missing block title", http.StatusBadRequest)
			return
		}
		blocks, err := readBlocks(dbPath)
		if err != nil {
			http.Error(w, "failed to read block store", http.StatusInternalServerError)
			return
		}
		for _, b := range blocks {
			if b.Title == title {
				if err := templates.ExecuteTemplate(w, "block", b); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
				return
			}
		}
		http.Error(w, "block not found", http.StatusNotFound)
	}
}

func apiBlocksHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocks, err := readBlocks(dbPath)
		if err != nil {
			http.Error(w, "failed to read block store", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(blocks)
	}
}

func apiBlockHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimPrefix(r.URL.Path, "/api/block/")
		if title == "" {
			http.Error(w, "missing block title", http.StatusBadRequest)
			return
		}
		blocks, err := readBlocks(dbPath)
		if err != nil {
			http.Error(w, "failed to read block store", http.StatusInternalServerError)
			return
		}
		for _, b := range blocks {
			if b.Title == title {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				_ = json.NewEncoder(w).Encode(b)
				return
			}
		}
		http.Error(w, "block not found", http.StatusNotFound)
	}
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP address to serve on")
	dbPath := flag.String("db", "blocks.db", "path to the sqlite block store")
	logFile := flag.String("log", "", "path to write access logs (optional). If empty, logs go to stdout only")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/", indexHandler(*dbPath))
	mux.HandleFunc("/block/", blockHandler(*dbPath))
	mux.HandleFunc("/api/blocks", apiBlocksHandler(*dbPath))
	mux.HandleFunc("/api/block/", apiBlockHandler(*dbPath))

	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "fastac-web: ", log.LstdFlags)

	handler := loggingMiddleware(logger, mux)
	srv := &http.Server{Addr: *addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	fmt.Printf("serving block viewer at http://%s/ (db=%s)\n", *addr, *dbPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
