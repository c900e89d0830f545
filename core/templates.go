package core

import (
	"html/template"
	"io"
	"io/fs"
	"sync"

	"github.com/Masterminds/sprig/v3"
)

const (
	PageTemplate     = "index.html"
	FragmentTemplate = "todo.html"
)

const liveReloadScript = `<script>
(function () {
  function restyle() {
    document.querySelectorAll('link[rel="stylesheet"]').forEach(function (link) {
      var url = new URL(link.href);
      url.searchParams.set("reload", Date.now());
      link.href = url.toString();
    });
  }
  function connect() {
    var scheme = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(scheme + location.host + "` + LiveReloadPath + `");
    ws.onmessage = function (e) {
      var event = JSON.parse(e.data);
      if (event.kind === "` + ReloadStyle + `") { restyle(); } else { location.reload(); }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`

// TemplateFuncs returns the sprig functions plus the helpers the page
// templates rely on.
func TemplateFuncs(env string, assets *Assets) template.FuncMap {
	funcs := sprig.HtmlFuncMap()

	funcs["asset"] = func(path string) string {
		if assets == nil {
			return path
		}
		return assets.Versioned(path)
	}
	funcs["liveReload"] = func() template.HTML {
		if env != "dev" {
			return ""
		}
		return template.HTML(liveReloadScript)
	}
	funcs["safeHTML"] = func(s interface{}) template.HTML {
		switch val := s.(type) {
		case template.HTML:
			return val
		case string:
			return template.HTML(val)
		default:
			return ""
		}
	}

	return funcs
}

// Templates parses every *.html file in fsys into one set, so the page can
// include the fragment by file name. With reload off the set is parsed once.
type Templates struct {
	fsys   fs.FS
	funcs  template.FuncMap
	reload bool

	mu     sync.RWMutex
	parsed *template.Template
}

func NewTemplates(fsys fs.FS, funcs template.FuncMap, reload bool) *Templates {
	return &Templates{fsys: fsys, funcs: funcs, reload: reload}
}

func ParseTemplates(fsys fs.FS, funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(fsys, "*.html")
}

func (t *Templates) Load() (*template.Template, error) {
	if !t.reload {
		t.mu.RLock()
		parsed := t.parsed
		t.mu.RUnlock()
		if parsed != nil {
			return parsed, nil
		}
	}

	parsed, err := ParseTemplates(t.fsys, t.funcs)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.parsed = parsed
	t.mu.Unlock()
	return parsed, nil
}

func (t *Templates) Execute(w io.Writer, name string, data interface{}) error {
	tmpl, err := t.Load()
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, name, data)
}

// Invalidate drops the parsed set so the next Load reads the files again.
func (t *Templates) Invalidate() {
	t.mu.Lock()
	t.parsed = nil
	t.mu.Unlock()
}
