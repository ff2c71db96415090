// Package component groups a set of routes with the template store that owns
// them, so missing-template diagnostics can name the component an endpoint
// belongs to.
package component

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-views/pkg/resolve"
)

// Component is a mountable sub-application: a name, an optional template
// store, and the routes it owns. Endpoints are namespaced as
// "<component>.<endpoint>".
type Component struct {
	name   string
	opts   Options
	routes []route
}

type route struct {
	pattern  string
	endpoint string
	handler  http.Handler
}

// New constructs a component with the given name plus option overrides.
func New(name string, fns ...OptionFn) (*Component, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("component: name is required")
	}
	if strings.Contains(name, ".") {
		return nil, fmt.Errorf("component: name %q must not contain dots", name)
	}
	return &Component{name: name, opts: NewOptions(fns...)}, nil
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// HasTemplates reports whether the component carries its own template store.
func (c *Component) HasTemplates() bool {
	return c.opts.Templates != nil || c.opts.TemplateDir != ""
}

// Source builds the resolve.Source backing this component's templates, for
// registration with the application's source registry.
func (c *Component) Source() (resolve.Source, error) {
	label := c.opts.ImportLabel
	if label == "" {
		label = c.name
	}
	switch {
	case c.opts.Templates != nil:
		return resolve.NewFSSource(c.name, resolve.KindComponent, label, c.opts.Templates)
	case c.opts.TemplateDir != "":
		return resolve.NewDirSource(c.name, resolve.KindComponent, label, c.opts.TemplateDir)
	default:
		return nil, fmt.Errorf("component: %q has no template store", c.name)
	}
}

// Handle registers a handler under pattern with the given endpoint name. The
// full endpoint becomes "<component>.<endpoint>".
func (c *Component) Handle(pattern, endpoint string, handler http.Handler) error {
	pattern = strings.TrimSpace(pattern)
	endpoint = strings.TrimSpace(endpoint)
	if pattern == "" || endpoint == "" || handler == nil {
		return fmt.Errorf("component: pattern, endpoint, and handler are required")
	}
	c.routes = append(c.routes, route{pattern: pattern, endpoint: endpoint, handler: handler})
	return nil
}

// HandleFunc is the http.HandlerFunc convenience form of Handle.
func (c *Component) HandleFunc(pattern, endpoint string, handler http.HandlerFunc) error {
	return c.Handle(pattern, endpoint, handler)
}

// Endpoint returns the namespaced endpoint name for a handler of this
// component.
func (c *Component) Endpoint(name string) string {
	return c.name + "." + name
}

// wrap annotates the request context with the owning endpoint and applies the
// component guard.
func (c *Component) wrap(endpoint string, handler http.Handler) http.Handler {
	guard := c.opts.Guard
	full := c.Endpoint(endpoint)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if guard != nil {
			if err := guard(r); err != nil {
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}
		}
		ctx := resolve.WithEndpoint(r.Context(), full)
		handler.ServeHTTP(w, r.WithContext(ctx))
	})
}
