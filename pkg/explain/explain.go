// Package explain renders template resolution traces as human readable
// reports and emits them through the host application's logger.
package explain

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-views/pkg/resolve"
)

// DefaultDocsURL is the documentation reference appended to failure reports.
const DefaultDocsURL = "https://github.com/goliatone/go-views#component-templates"

// Config supplies the explain toggle. It is sampled on every resolution so
// hosts can flip the flag at runtime and have it take effect on the next call.
type Config interface {
	ExplainEnabled() bool
}

// ConfigFunc adapts a plain function to the Config interface.
type ConfigFunc func() bool

func (f ConfigFunc) ExplainEnabled() bool { return f() }

// Tracer observes resolution traces and writes one debug log record per
// resolution while the explain flag is enabled, and none while it is not.
type Tracer struct {
	cfg     Config
	logger  *zap.Logger
	docsURL string
}

var _ resolve.Observer = (*Tracer)(nil)

// Option configures a Tracer at construction time.
type Option func(*Tracer)

// WithDocsURL overrides the documentation reference in failure reports.
func WithDocsURL(url string) Option {
	return func(t *Tracer) {
		if strings.TrimSpace(url) == "" {
			return
		}
		t.docsURL = url
	}
}

// New constructs a Tracer writing to logger whenever cfg reports the flag on.
func New(cfg Config, logger *zap.Logger, options ...Option) (*Tracer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("explain: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tracer{cfg: cfg, logger: logger, docsURL: DefaultDocsURL}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t, nil
}

// ObserveResolution implements resolve.Observer. The flag is read fresh on
// every call; when it is off nothing is logged.
func (t *Tracer) ObserveResolution(_ context.Context, trace resolve.Trace) {
	if !t.cfg.ExplainEnabled() {
		return
	}
	t.logger.Debug(Render(trace, t.docsURL))
}

// Render produces the explain report for a completed resolution. Attempts
// appear as a numbered list in the exact order they occurred. Failed
// resolutions get an error line, the owning component of the triggering
// endpoint when one is known, and a documentation reference. Successful
// resolutions get a line naming the source that satisfied the request.
func Render(trace resolve.Trace, docsURL string) string {
	var lines []string

	for i, attempt := range trace.Attempts {
		src := attempt.Source
		lines = append(lines, fmt.Sprintf("%d: trying loader of %s %q (%s)", i+1, src.Kind(), src.Name(), src.Label()))
		if attempt.Outcome == resolve.OutcomeErrored && attempt.Err != nil {
			lines = append(lines, fmt.Sprintf("   -> error: %v", attempt.Err))
		}
	}

	if trace.Result != nil {
		src := trace.Result.Source
		lines = append(lines, fmt.Sprintf("found template %q in %s %q (%s)", trace.Result.Name, src.Kind(), src.Name(), src.Label()))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "Error: the template could not be found")
	if owner := endpointOwner(trace.Endpoint); owner != "" {
		lines = append(lines, fmt.Sprintf("The template was looked up from an endpoint that belongs to the component %q", owner))
	}
	if docsURL == "" {
		docsURL = DefaultDocsURL
	}
	lines = append(lines, "See "+docsURL)
	return strings.Join(lines, "\n")
}

// endpointOwner extracts the component name from a dotted endpoint such as
// "frontend.index". Endpoints without a component prefix belong to the
// application and yield "".
func endpointOwner(endpoint string) string {
	idx := strings.LastIndex(endpoint, ".")
	if idx <= 0 {
		return ""
	}
	return endpoint[:idx]
}
