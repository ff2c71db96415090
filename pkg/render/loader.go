package render

import (
	"bytes"
	"context"
	"io"

	"github.com/goliatone/go-views/pkg/resolve"
)

// Resolver is the slice of resolve.Resolver the engine depends on.
type Resolver interface {
	Resolve(ctx context.Context, names ...string) (resolve.Result, error)
}

// resolverLoader adapts the resolver to pongo2's loader contract so template
// inheritance directives are looked up through the same source precedence as
// top-level renders.
type resolverLoader struct {
	resolver Resolver
}

// Abs returns the name unchanged: logical template names are absolute within
// the registry, never relative to the including template.
func (l *resolverLoader) Abs(_, name string) string {
	return name
}

// Get resolves a single template name. pongo2 calls this for {% extends %}
// and {% include %} targets.
func (l *resolverLoader) Get(path string) (io.Reader, error) {
	result, err := l.resolver.Resolve(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(result.Content), nil
}
