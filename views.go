// Package views resolves and renders templates across an application store
// and any number of mounted component stores, with step-by-step loader
// diagnostics for missing templates.
package views

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-views/pkg/component"
	"github.com/goliatone/go-views/pkg/explain"
	"github.com/goliatone/go-views/pkg/render"
	"github.com/goliatone/go-views/pkg/resolve"
)

// Environment ties together the source registry, resolver, diagnostic tracer,
// and rendering engine for one hosting application. Sources are registered
// during setup; rendering is safe for concurrent use afterwards.
type Environment struct {
	opts     Options
	registry *resolve.Registry
	resolver *resolve.Resolver
	engine   *render.Engine
	logger   *zap.Logger

	explainFlag atomic.Bool
}

// New constructs an Environment. When the options carry an application
// template store it is registered first, so it takes precedence over every
// component store.
func New(fns ...OptionFn) (*Environment, error) {
	opts := NewOptions(fns...)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	env := &Environment{
		opts:     opts,
		registry: resolve.NewRegistry(),
		logger:   logger,
	}
	env.explainFlag.Store(opts.ExplainTemplateLoading)

	if err := env.registerApplicationSource(); err != nil {
		return nil, err
	}

	tracer, err := explain.New(
		explain.ConfigFunc(env.ExplainEnabled),
		logger,
		explain.WithDocsURL(opts.DocsURL),
	)
	if err != nil {
		return nil, fmt.Errorf("views: build tracer: %w", err)
	}

	env.resolver, err = resolve.NewResolver(env.registry, resolve.WithObserver(tracer))
	if err != nil {
		return nil, fmt.Errorf("views: build resolver: %w", err)
	}

	env.engine, err = render.New(env.resolver,
		render.WithExtension(opts.Extension),
		render.WithAutoReload(opts.AutoReload),
		render.WithGlobalData(opts.Globals),
	)
	if err != nil {
		return nil, fmt.Errorf("views: build engine: %w", err)
	}

	if opts.ThemeSelector != nil {
		if err := env.applyTheme(); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (e *Environment) registerApplicationSource() error {
	var (
		src resolve.Source
		err error
	)
	switch {
	case e.opts.Templates != nil:
		src, err = resolve.NewFSSource(e.opts.Name, resolve.KindApplication, e.opts.ImportLabel, e.opts.Templates)
	case e.opts.TemplateDir != "":
		src, err = resolve.NewDirSource(e.opts.Name, resolve.KindApplication, e.opts.ImportLabel, e.opts.TemplateDir)
	default:
		// No application store configured; components can still provide one.
		return nil
	}
	if err != nil {
		return fmt.Errorf("views: application source: %w", err)
	}
	return e.registry.Register(src)
}

// RegisterSource appends a template source to the search order.
func (e *Environment) RegisterSource(src resolve.Source) error {
	return e.registry.Register(src)
}

// RegisterComponent registers the component's template store, if it has one.
// Components without templates register nothing but remain valid route owners.
func (e *Environment) RegisterComponent(c *component.Component) error {
	if c == nil {
		return fmt.Errorf("views: component is required")
	}
	if !c.HasTemplates() {
		return nil
	}
	src, err := c.Source()
	if err != nil {
		return fmt.Errorf("views: component %q: %w", c.Name(), err)
	}
	return e.registry.Register(src)
}

// RenderTemplate resolves the first matching candidate name and renders it
// with data. The rendered output is also copied to every writer in out.
func (e *Environment) RenderTemplate(ctx context.Context, data any, names ...string) (string, error) {
	return e.engine.Render(ctx, names, data)
}

// RenderTemplateTo renders like RenderTemplate and streams to w.
func (e *Environment) RenderTemplateTo(ctx context.Context, w io.Writer, data any, names ...string) error {
	_, err := e.engine.Render(ctx, names, data, w)
	return err
}

// RenderString parses and renders a literal template, bypassing resolution.
func (e *Environment) RenderString(templateContent string, data any) (string, error) {
	return e.engine.RenderString(templateContent, data)
}

// AddFilter registers a template filter usable from any template.
func (e *Environment) AddFilter(name string, fn func(input any, param any) (any, error)) error {
	return e.engine.RegisterFilter(name, fn)
}

// HasFilter reports whether a filter is registered under name.
func (e *Environment) HasFilter(name string) bool {
	return e.engine.HasFilter(name)
}

// AddGlobals merges values into the globals seen by every template.
func (e *Environment) AddGlobals(data map[string]any) error {
	return e.engine.Globals(data)
}

// ExplainEnabled reports the current state of the explain flag. The tracer
// samples it on every resolution.
func (e *Environment) ExplainEnabled() bool {
	return e.explainFlag.Load()
}

// SetExplain toggles lookup diagnostics; the change applies to the next
// resolution.
func (e *Environment) SetExplain(enabled bool) {
	e.explainFlag.Store(enabled)
}

// SetAutoReload toggles compiled-template caching at runtime.
func (e *Environment) SetAutoReload(enabled bool) {
	e.engine.SetAutoReload(enabled)
}

// Registry exposes the source registry, mostly for discovery tooling.
func (e *Environment) Registry() *resolve.Registry {
	return e.registry
}

// Engine exposes the rendering engine, e.g. to wire a reload watcher.
func (e *Environment) Engine() *render.Engine {
	return e.engine
}

// Options returns a copy of the environment configuration.
func (e *Environment) Options() Options {
	return e.opts
}
