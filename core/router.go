package core

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/go-barry/todos/todo"
	"github.com/go-barry/todos/web"
)

const (
	searchField   = "search"
	maxFormMemory = 1 << 20
)

type RuntimeContext struct {
	Env         string
	EnableWatch bool
	OnReload    func(changed string)
	Logger      *log.Logger
	Assets      *Assets
}

type Router struct {
	config    Config
	env       string
	logger    *log.Logger
	todos     []todo.Todo
	templates *Templates
	assets    *Assets
	cache     *PageCache
	onReload  func(changed string)
}

var NewRouter = func(config Config, ctx RuntimeContext) http.Handler {
	return newRouter(config, ctx)
}

func newRouter(config Config, ctx RuntimeContext) *Router {
	logger := ctx.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	assets := ctx.Assets
	if assets == nil {
		assets = NewAssets(StaticFS(config), ctx.Env == "prod")
	}

	r := &Router{
		config:   config,
		env:      ctx.Env,
		logger:   logger,
		todos:    loadTodos(config, logger),
		assets:   assets,
		onReload: ctx.OnReload,
	}
	r.templates = NewTemplates(TemplatesFS(config), TemplateFuncs(ctx.Env, assets), ctx.Env == "dev")

	if config.CacheEnabled {
		r.cache = NewPageCache(0)
	}

	if ctx.EnableWatch {
		r.watch()
	}

	return r
}

func TemplatesFS(config Config) fs.FS {
	if config.TemplatesDir != "" {
		return os.DirFS(config.TemplatesDir)
	}
	return web.Templates()
}

func StaticFS(config Config) fs.FS {
	if config.PublicDir != "" {
		return os.DirFS(config.PublicDir)
	}
	return web.Static()
}

func loadTodos(config Config, logger *log.Logger) []todo.Todo {
	if config.TodosFile == "" {
		return todo.All()
	}

	items, err := todo.LoadFile(config.TodosFile)
	if err != nil {
		logger.Error("could not load todos, using built-in list", "file", config.TodosFile, "err", err)
		return todo.All()
	}

	logger.Info("loaded todos", "file", config.TodosFile, "count", len(items))
	return items
}

func (r *Router) watch() {
	var dirs []string
	for _, dir := range []string{r.config.TemplatesDir, r.config.PublicDir} {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}

	go func() {
		if err := Watch(context.Background(), dirs, r.fileChanged); err != nil {
			r.logger.Error("file watcher stopped", "err", err)
		}
	}()
}

func (r *Router) fileChanged(path string) {
	r.logger.Info("file changed", "path", path)

	r.templates.Invalidate()
	r.assets.Reset()
	if r.cache != nil {
		r.cache.Clear()
	}
	if r.onReload != nil {
		r.onReload(path)
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")

	switch path {
	case "":
		r.handleIndex(w, req)
	case "search":
		r.handleSearch(w, req)
	case "api/search":
		r.handleAPISearch(w, req)
	default:
		http.NotFound(w, req)
	}
}

func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	data := map[string]interface{}{
		"todos": []todo.Todo{},
	}
	r.render(w, req, "index", PageTemplate, data)
}

func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	term, err := searchTerm(req)
	if err != nil {
		r.logger.Warn("bad search request", "path", req.URL.Path, "err", err)
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}

	data := map[string]interface{}{
		"todos": todo.Search(r.todos, term),
	}
	r.render(w, req, "search\x00"+term, FragmentTemplate, data)
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, cacheKey, name string, data interface{}) {
	body, hit := r.cached(cacheKey)
	if !hit {
		var buf bytes.Buffer
		if err := r.templates.Execute(&buf, name, data); err != nil {
			r.logger.Error("template error", "template", name, "err", err)
			http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		body = buf.Bytes()
		if r.config.MinifyHTML {
			body = r.assets.MinifyHTML(body)
		}
		if r.cache != nil {
			r.cache.Set(cacheKey, body)
		}
	}

	etag := generateETag(body)
	w.Header().Set("ETag", etag)

	if r.config.DebugHeaders {
		w.Header().Set("X-Todos-Template", name)
		if hit {
			w.Header().Set("X-Todos-Cache", "HIT")
		} else {
			w.Header().Set("X-Todos-Cache", "MISS")
		}
	}

	if req.Method == http.MethodGet && etagMatches(req.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (r *Router) cached(key string) ([]byte, bool) {
	if r.cache == nil {
		return nil, false
	}
	return r.cache.Get(key)
}

// searchTerm reads the search field from a urlencoded or multipart body.
// The value is used verbatim; when repeated, the last one wins.
func searchTerm(req *http.Request) (string, error) {
	if err := req.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return "", fmt.Errorf("parse form: %w", err)
	}

	values, ok := req.PostForm[searchField]
	if !ok || len(values) == 0 {
		return "", ErrMissingSearchField
	}
	return values[len(values)-1], nil
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

func generateETag(data []byte) string {
	sum := md5.Sum(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}
