package component

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts every registered route under basePath on mux. Each
// handler runs with its endpoint recorded in the request context, so template
// lookups triggered by the handler can be traced back to this component. The
// mounted patterns are returned in registration order.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("component: missing mux")
	}
	if len(c.routes) == 0 {
		return nil, fmt.Errorf("component: %q has no routes", c.name)
	}

	patterns := make([]string, 0, len(c.routes))
	for _, rt := range c.routes {
		pattern := mountPath(basePath, rt.pattern)
		mux.Handle(pattern, c.wrap(rt.endpoint, rt.handler))
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

// MountPath returns the full mount path for routePath under basePath.
func MountPath(basePath, routePath string) string {
	return mountPath(basePath, routePath)
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
