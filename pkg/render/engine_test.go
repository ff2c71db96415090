package render_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-views/pkg/render"
	"github.com/goliatone/go-views/pkg/resolve"
)

// mutableSource lets tests change template content after registration to
// exercise the auto reload cache behaviour.
type mutableSource struct {
	mu        sync.Mutex
	name      string
	templates map[string]string
}

func (s *mutableSource) Name() string             { return s.name }
func (s *mutableSource) Kind() resolve.SourceKind { return resolve.KindApplication }
func (s *mutableSource) Label() string            { return "test/" + s.name }

func (s *mutableSource) Attempt(name string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.templates[name]
	if !ok {
		return nil, false, nil
	}
	return []byte(content), true, nil
}

func (s *mutableSource) set(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = content
}

func newEngine(t *testing.T, templates map[string]string, options ...render.Option) (*render.Engine, *mutableSource) {
	t.Helper()

	src := &mutableSource{name: "app", templates: templates}
	registry := resolve.NewRegistry()
	if err := registry.Register(src); err != nil {
		t.Fatalf("register source: %v", err)
	}
	resolver, err := resolve.NewResolver(registry)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	engine, err := render.New(resolver, options...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, src
}

func TestEngine_RenderFirstMatchingCandidate(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"simple_template.html": "<h1>{{ whiskey }}</h1>",
	})

	var buf bytes.Buffer
	got, err := engine.Render(context.Background(),
		[]string{"no_template.xml", "simple_template.html", "context_template.html"},
		map[string]any{"whiskey": "Jameson"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<h1>Jameson</h1>" {
		t.Fatalf("render mismatch: got %q", got)
	}
	if buf.String() != got {
		t.Fatalf("writer mismatch: got %q", buf.String())
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine, _ := newEngine(t, nil)

	got, err := engine.RenderString("Hello {{ name }}", map[string]any{"name": "World"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Hello World" {
		t.Fatalf("render mismatch: got %q", got)
	}
}

func TestEngine_EscapesInterpolatedHTML(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"escaping_template.html": "{{ text }}|{{ text|safe }}",
	})

	got, err := engine.Render(context.Background(),
		[]string{"escaping_template.html"},
		map[string]any{"text": "<p>Hello World!</p>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "&lt;p&gt;Hello World!&lt;/p&gt;|<p>Hello World!</p>"
	if got != want {
		t.Fatalf("escaping mismatch: got %q want %q", got, want)
	}

	// Sanitized output is already safe and must not be escaped again.
	got, err = engine.RenderString("{{ html|sanitize }}", map[string]any{
		"html": `<p>ok</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "<p>ok</p>" {
		t.Fatalf("sanitize mismatch: got %q", got)
	}
}

func TestEngine_AppendsDefaultExtension(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"index.html": "home",
		"mail.txt":   "{{ foo }} Mail",
	})

	got, err := engine.Render(context.Background(), []string{"index"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "home" {
		t.Fatalf("render mismatch: got %q", got)
	}

	// Names that already carry an extension are left alone.
	got, err = engine.Render(context.Background(), []string{"mail.txt"}, map[string]any{"foo": "test"})
	if err != nil {
		t.Fatalf("render mail.txt: %v", err)
	}
	if got != "test Mail" {
		t.Fatalf("render mismatch: got %q", got)
	}
}

func TestEngine_TemplateInheritanceThroughSources(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"base.html":  "header|{% block body %}{% endblock %}|footer",
		"child.html": `{% extends "base.html" %}{% block body %}child{% endblock %}`,
	})

	got, err := engine.Render(context.Background(), []string{"child.html"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "header|child|footer" {
		t.Fatalf("render mismatch: got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"template_filter.html": "{{ value|views_test_reverse }}",
	})

	err := engine.RegisterFilter("views_test_reverse", func(input any, _ any) (any, error) {
		s := []rune(input.(string))
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
		return string(s), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if !engine.HasFilter("views_test_reverse") {
		t.Fatalf("filter not registered")
	}

	got, err := engine.Render(context.Background(), []string{"template_filter.html"}, map[string]any{"value": "abcd"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "dcba" {
		t.Fatalf("render mismatch: got %q", got)
	}

	if err := engine.RegisterFilter("views_test_reverse", func(input any, _ any) (any, error) {
		return input, nil
	}); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestEngine_Globals(t *testing.T) {
	engine, _ := newEngine(t, nil)
	if err := engine.Globals(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("globals: %v", err)
	}

	got, err := engine.RenderString("env={{ settings.env }}", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("render mismatch: got %q", got)
	}
}

func TestEngine_CachesUnlessAutoReload(t *testing.T) {
	engine, src := newEngine(t, map[string]string{"page.html": "v1"})

	got, err := engine.Render(context.Background(), []string{"page.html"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "v1" {
		t.Fatalf("render mismatch: got %q", got)
	}

	src.set("page.html", "v2")
	got, err = engine.Render(context.Background(), []string{"page.html"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "v1" {
		t.Fatalf("expected cached compile, got %q", got)
	}

	engine.SetAutoReload(true)
	got, err = engine.Render(context.Background(), []string{"page.html"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "v2" {
		t.Fatalf("expected fresh compile with auto reload, got %q", got)
	}
}

func TestEngine_InvalidateDropsCache(t *testing.T) {
	engine, src := newEngine(t, map[string]string{"page.html": "v1"})

	if _, err := engine.Render(context.Background(), []string{"page.html"}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	src.set("page.html", "v2")
	engine.Invalidate()

	got, err := engine.Render(context.Background(), []string{"page.html"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "v2" {
		t.Fatalf("expected recompile after invalidate, got %q", got)
	}
}

func TestEngine_ErrorsPassThrough(t *testing.T) {
	engine, _ := newEngine(t, nil)

	_, err := engine.Render(context.Background(), nil, nil)
	if !errors.Is(err, resolve.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}

	_, err = engine.Render(context.Background(), []string{"missing.html"}, nil)
	if !resolve.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing.html") {
		t.Fatalf("error should name the template: %v", err)
	}
}
