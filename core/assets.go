package core

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

type asset struct {
	body []byte
	hash string
}

// Assets serves files out of the static file system. With minify on, CSS
// and JS are minified on first read and kept in memory.
type Assets struct {
	fsys   fs.FS
	minify bool
	m      *minify.M

	mu    sync.Mutex
	cache map[string]asset
}

func NewAssets(fsys fs.FS, minifyEnabled bool) *Assets {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)
	m.AddFunc("text/html", minhtml.Minify)

	return &Assets{
		fsys:   fsys,
		minify: minifyEnabled,
		m:      m,
		cache:  make(map[string]asset),
	}
}

func (a *Assets) FS() fs.FS {
	return a.fsys
}

// Get returns the contents of name and a short content hash.
func (a *Assets) Get(name string) ([]byte, string, error) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")

	if a.minify {
		a.mu.Lock()
		cached, ok := a.cache[name]
		a.mu.Unlock()
		if ok {
			return cached.body, cached.hash, nil
		}
	}

	original, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		return nil, "", err
	}

	body := original
	if a.minify {
		if mediatype := minifyType(name); mediatype != "" {
			if out, err := a.m.Bytes(mediatype, original); err == nil {
				body = out
			}
		}
	}

	h := md5.Sum(body)
	entry := asset{body: body, hash: hex.EncodeToString(h[:])[:6]}

	if a.minify {
		a.mu.Lock()
		a.cache[name] = entry
		a.mu.Unlock()
	}

	return entry.body, entry.hash, nil
}

// Versioned appends a content hash to a /static/ URL so it can be cached
// forever. Unknown paths are returned unchanged.
func (a *Assets) Versioned(urlPath string) string {
	if !strings.HasPrefix(urlPath, "/static/") {
		return urlPath
	}

	rel := strings.TrimPrefix(urlPath, "/static/")
	if _, hash, err := a.Get(rel); err == nil {
		var out strings.Builder
		fmt.Fprintf(&out, "/static/%s?v=%s", rel, hash)
		return out.String()
	}

	return urlPath
}

// MinifyHTML returns html unchanged if it cannot be minified.
func (a *Assets) MinifyHTML(html []byte) []byte {
	var buf bytes.Buffer
	if err := a.m.Minify("text/html", &buf, bytes.NewReader(html)); err != nil {
		return html
	}
	return buf.Bytes()
}

func (a *Assets) Reset() {
	a.mu.Lock()
	a.cache = make(map[string]asset)
	a.mu.Unlock()
}

func minifyType(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	default:
		return ""
	}
}
