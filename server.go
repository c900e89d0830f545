package todos

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/CAFxX/httpcompression"

	"github.com/go-barry/todos/core"
)

type RuntimeConfig struct {
	Env         string
	EnableCache bool
	Port        int
	ConfigPath  string
}

var ListenAndServe = http.ListenAndServe
var Exit = os.Exit

func BuildServer(cfg RuntimeConfig) (string, http.Handler) {
	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = core.DefaultConfigPath
	}

	config := core.LoadConfig(configPath)
	config.CacheEnabled = cfg.EnableCache

	logger := core.NewLogger(*config, os.Stderr)
	logger.Info("starting todos", "env", cfg.Env, "cache", config.CacheEnabled)

	mux := http.NewServeMux()
	assets := core.NewAssets(core.StaticFS(*config), cfg.Env == "prod")

	var handler http.Handler = mux

	if cfg.Env == "dev" {
		setupDevStaticRoutes(mux, assets.FS())

		reloader := core.NewLiveReloader(logger)
		mux.HandleFunc(core.LiveReloadPath, reloader.Handler)

		router := core.NewRouter(*config, core.RuntimeContext{
			Env:         cfg.Env,
			EnableWatch: true,
			OnReload:    reloader.BroadcastReload,
			Logger:      logger,
			Assets:      assets,
		})
		mux.Handle("/", router)
	} else {
		mux.Handle("/static/", makeStaticHandler(assets))
		mux.Handle("/robots.txt", makeRootFileHandler(assets, "robots.txt"))
		mux.Handle("/favicon.ico", makeRootFileHandler(assets, "favicon.ico"))

		router := core.NewRouter(*config, core.RuntimeContext{
			Env:         cfg.Env,
			EnableWatch: false,
			Logger:      logger,
			Assets:      assets,
		})
		mux.Handle("/", router)

		compress, err := httpcompression.DefaultAdapter()
		if err != nil {
			logger.Warn("response compression disabled", "err", err)
		} else {
			handler = compress(mux)
		}
	}

	return fmt.Sprintf(":%d", cfg.Port), core.RequestLogger(logger, handler)
}

func Start(cfg RuntimeConfig) {
	addr, handler := BuildServer(cfg)

	fmt.Printf("✅ Todos running at http://localhost%s\n", addr)
	if err := ListenAndServe(addr, handler); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Server failed: %v\n", err)
		Exit(1)
	}
}

func setupDevStaticRoutes(mux *http.ServeMux, static fs.FS) {
	fileServer := http.FileServer(http.FS(static))

	noStore := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fileServer.ServeHTTP(w, r)
	}

	mux.Handle("/static/", http.StripPrefix("/static", http.HandlerFunc(noStore)))
	mux.HandleFunc("/favicon.ico", noStore)
	mux.HandleFunc("/robots.txt", noStore)
}

// makeStaticHandler serves /static/ from the asset set, minified in prod.
// Query strings (the ?v= version) are ignored.
func makeStaticHandler(assets *core.Assets) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, "/static/")
		if rel == "" || strings.Contains(rel, "..") {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		serveAsset(w, r, assets, rel, "public, max-age=31536000, immutable")
	})
}

func makeRootFileHandler(assets *core.Assets, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveAsset(w, r, assets, name, "public, max-age=86400")
	})
}

func serveAsset(w http.ResponseWriter, r *http.Request, assets *core.Assets, name, cacheControl string) {
	body, hash, err := assets.Get(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", detectMimeType(name))
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("ETag", `"`+hash+`"`)
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(body))
}

func detectMimeType(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".ico":
		return "image/x-icon"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}
