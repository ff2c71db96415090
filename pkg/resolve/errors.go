package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCandidates is returned when Resolve is called with an empty candidate
// list. The registry is never consulted in that case.
var ErrNoCandidates = errors.New("resolve: no template candidates supplied")

// NotFoundError reports that every candidate missed in every registered
// source. It carries the full ordered attempt list so diagnostics can explain
// exactly what was tried.
type NotFoundError struct {
	// Names is the caller-supplied candidate list, in the order it was tried.
	Names []string
	// Attempts records every (source, candidate) pair consulted, in order.
	Attempts []Attempt
	// Endpoint is the request endpoint that triggered the lookup, when the
	// caller context carried one. Empty otherwise.
	Endpoint string
}

func (e *NotFoundError) Error() string {
	switch len(e.Names) {
	case 0:
		return "resolve: template not found"
	case 1:
		return fmt.Sprintf("resolve: template %q not found", e.Names[0])
	default:
		return fmt.Sprintf("resolve: none of the templates %s could be found", strings.Join(quoted(e.Names), ", "))
	}
}

// LastCandidate returns the final candidate name tried, or "" when the list
// was empty.
func (e *NotFoundError) LastCandidate() string {
	if len(e.Names) == 0 {
		return ""
	}
	return e.Names[len(e.Names)-1]
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func quoted(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%q", name))
	}
	return out
}
