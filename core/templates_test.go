package core

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-barry/todos/todo"
	"github.com/go-barry/todos/web"
)

func TestTemplateFuncs_LiveReloadOnlyInDev(t *testing.T) {
	dev := TemplateFuncs("dev", nil)["liveReload"].(func() template.HTML)()
	prod := TemplateFuncs("prod", nil)["liveReload"].(func() template.HTML)()

	if !strings.Contains(string(dev), LiveReloadPath) {
		t.Errorf("expected reload script in dev, got %q", dev)
	}
	if prod != "" {
		t.Errorf("expected no reload script in prod, got %q", prod)
	}
}

func TestTemplateFuncs_AssetWithoutAssets(t *testing.T) {
	asset := TemplateFuncs("prod", nil)["asset"].(func(string) string)

	if got := asset("/static/app.css"); got != "/static/app.css" {
		t.Errorf("expected path unchanged, got %q", got)
	}
}

func TestTemplateFuncs_IncludesSprig(t *testing.T) {
	funcs := TemplateFuncs("prod", nil)

	for _, name := range []string{"title", "default", "now", "date"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("expected sprig func %q", name)
		}
	}
}

func TestTemplates_SprigFuncsExecute(t *testing.T) {
	fsys := fstest.MapFS{"todo.html": {Data: []byte(`{{ "buy milk" | title }}|{{ .missing | default "none" }}`)}}
	tmpls := NewTemplates(fsys, TemplateFuncs("prod", nil), false)

	var buf bytes.Buffer
	if err := tmpls.Execute(&buf, FragmentTemplate, map[string]interface{}{}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if got := buf.String(); got != "Buy Milk|none" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestTemplateFuncs_LiveReloadHandlesStyleEvents(t *testing.T) {
	script := string(TemplateFuncs("dev", nil)["liveReload"].(func() template.HTML)())

	if !strings.Contains(script, `event.kind === "`+ReloadStyle+`"`) {
		t.Errorf("expected script to handle style events, got %q", script)
	}
}

func TestTemplateFuncs_SafeHTML(t *testing.T) {
	safe := TemplateFuncs("prod", nil)["safeHTML"].(func(interface{}) template.HTML)

	if got := safe("<b>x</b>"); got != template.HTML("<b>x</b>") {
		t.Errorf("unexpected result for string: %q", got)
	}
	if got := safe(42); got != "" {
		t.Errorf("expected empty result for int, got %q", got)
	}
}

func TestTemplates_EmbeddedSetRenders(t *testing.T) {
	tmpls := NewTemplates(web.Templates(), TemplateFuncs("prod", NewAssets(web.Static(), false)), false)

	var page bytes.Buffer
	if err := tmpls.Execute(&page, PageTemplate, map[string]interface{}{"todos": []todo.Todo{}}); err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if !strings.Contains(page.String(), `<section id="results">`) {
		t.Errorf("unexpected page: %s", page.String())
	}

	var fragment bytes.Buffer
	data := map[string]interface{}{"todos": []todo.Todo{{ID: 9, Title: "Buy milk"}}}
	if err := tmpls.Execute(&fragment, FragmentTemplate, data); err != nil {
		t.Fatalf("fragment failed: %v", err)
	}
	if !strings.Contains(fragment.String(), `data-id="9"`) {
		t.Errorf("unexpected fragment: %s", fragment.String())
	}
}

func TestTemplates_ParsesOnceUnlessReloading(t *testing.T) {
	fsys := fstest.MapFS{"todo.html": {Data: []byte("v1")}}

	cached := NewTemplates(fsys, TemplateFuncs("prod", nil), false)
	reloading := NewTemplates(fsys, TemplateFuncs("dev", nil), true)

	render := func(tmpls *Templates) string {
		var buf bytes.Buffer
		if err := tmpls.Execute(&buf, FragmentTemplate, nil); err != nil {
			t.Fatalf("execute failed: %v", err)
		}
		return buf.String()
	}

	render(cached)
	render(reloading)
	fsys["todo.html"] = &fstest.MapFile{Data: []byte("v2")}

	if got := render(cached); got != "v1" {
		t.Errorf("expected cached v1, got %q", got)
	}
	if got := render(reloading); got != "v2" {
		t.Errorf("expected reloaded v2, got %q", got)
	}

	cached.Invalidate()
	if got := render(cached); got != "v2" {
		t.Errorf("expected v2 after Invalidate, got %q", got)
	}
}

func TestTemplates_ParseError(t *testing.T) {
	fsys := fstest.MapFS{"index.html": {Data: []byte("{{ if }}")}}
	tmpls := NewTemplates(fsys, TemplateFuncs("prod", nil), false)

	if err := tmpls.Execute(&bytes.Buffer{}, PageTemplate, nil); err == nil {
		t.Error("expected parse error")
	}
}
