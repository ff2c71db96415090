package resolve

import "context"

type endpointKey struct{}

// WithEndpoint annotates ctx with the endpoint that is about to trigger
// template lookups, e.g. "frontend.index". Component route wrappers call this
// so failure diagnostics can name the owning component.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	if endpoint == "" {
		return ctx
	}
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

// EndpointFromContext returns the endpoint recorded by WithEndpoint, or ""
// when the context carries none.
func EndpointFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	endpoint, _ := ctx.Value(endpointKey{}).(string)
	return endpoint
}
