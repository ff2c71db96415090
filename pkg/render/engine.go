// Package render executes templates whose content is located through a
// resolve.Resolver, so every lookup (including {% extends %} and
// {% include %} directives) goes through the registered source precedence.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/flosch/pongo2/v6"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	extension  string
	autoReload bool
	globalData map[string]any
}

// WithExtension overrides the default template extension appended to names
// that carry none.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithAutoReload controls whether compiled templates are cached. With auto
// reload on, every render recompiles from the owning source, so edits to
// backing files show up immediately.
func WithAutoReload(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoReload = enabled
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine compiles and executes templates resolved through a Resolver. Compiled
// templates are cached per (source, name) unless auto reload is on.
type Engine struct {
	mu sync.RWMutex

	resolver    Resolver
	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
	autoReload  atomic.Bool
}

// New constructs an Engine over the provided resolver.
func New(resolver Resolver, options ...Option) (*Engine, error) {
	if resolver == nil {
		return nil, errors.New("render: resolver is required")
	}

	cfg := &config{extension: ".html"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	engine := &Engine{
		resolver:  resolver,
		templates: make(map[string]*pongo2.Template),
		tplExt:    cfg.extension,
	}
	engine.autoReload.Store(cfg.autoReload)
	engine.templateSet = pongo2.NewSet("views", &resolverLoader{resolver: resolver})
	registerBuiltinFilters()

	if err := engine.Globals(cfg.globalData); err != nil {
		return nil, fmt.Errorf("render: apply global data: %w", err)
	}
	return engine, nil
}

// SetAutoReload flips template caching at runtime; the new setting applies to
// the next render.
func (e *Engine) SetAutoReload(enabled bool) {
	e.autoReload.Store(enabled)
}

// Invalidate drops every cached compiled template. The reload watcher calls
// this when backing files change.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates = make(map[string]*pongo2.Template)
}

// Render resolves the first matching candidate name and executes it with
// data. Names without an extension get the engine default appended. The
// rendered output is returned and additionally copied to every writer in out.
func (e *Engine) Render(ctx context.Context, names []string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("render: engine is nil")
	}
	if len(names) == 0 {
		return "", e.resolveEmpty(ctx)
	}

	candidates := make([]string, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, e.normalizeName(name))
	}

	result, err := e.resolver.Resolve(ctx, candidates...)
	if err != nil {
		return "", err
	}

	tmpl, err := e.template(result.Source.Name(), result.Name, result.Content)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, result.Name, data, out...)
}

// RenderString parses and executes a literal template, bypassing resolution.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("render: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("render: parse template string: %w", err)
	}
	return e.execute(tmpl, "<string>", data, out...)
}

// RegisterFilter registers a template filter. Duplicate names return an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("render: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("render: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

// HasFilter reports whether a filter is registered under name.
func (e *Engine) HasFilter(name string) bool {
	return pongo2.FilterExists(name)
}

// Globals merges data into the global context seen by every template.
func (e *Engine) Globals(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("render: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(globalCtx)
	return nil
}

// resolveEmpty runs the empty-candidate resolution so the caller gets the
// resolver's InvalidArgument error rather than an engine-specific one.
func (e *Engine) resolveEmpty(ctx context.Context) error {
	_, err := e.resolver.Resolve(ctx)
	if err == nil {
		return errors.New("render: no template names supplied")
	}
	return err
}

func (e *Engine) normalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	base := trimmed
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if strings.Contains(base, ".") {
		return trimmed
	}
	return trimmed + e.tplExt
}

func (e *Engine) template(sourceName, name string, content []byte) (*pongo2.Template, error) {
	key := sourceName + "\x00" + name
	reload := e.autoReload.Load()

	if !reload {
		e.mu.RLock()
		if tmpl, ok := e.templates[key]; ok {
			e.mu.RUnlock()
			return tmpl, nil
		}
		e.mu.RUnlock()
	}

	tmpl, err := e.templateSet.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("render: compile template %q: %w", name, err)
	}

	if !reload {
		e.mu.Lock()
		e.templates[key] = tmpl
		e.mu.Unlock()
	}
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out ...io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("render: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("render: execute template %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}
