package resolve

import (
	"context"
	"fmt"
)

// Outcome classifies a single resolution attempt.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not-found"
	// OutcomeErrored marks a source that failed to even attempt the lookup
	// (for example an unreadable backing store). Resolution treats it the same
	// as a miss, but diagnostics keep the distinction.
	OutcomeErrored Outcome = "errored"
)

// Attempt records one (source, candidate) pair consulted during resolution.
type Attempt struct {
	Source    Source
	Candidate string
	Outcome   Outcome
	Err       error
}

// Result is a successful resolution: the template content plus the source that
// owns it.
type Result struct {
	// Name is the candidate that matched.
	Name string
	// Content is the raw template content.
	Content []byte
	// Source identifies the store that satisfied the request.
	Source Source
}

// Trace captures everything a single Resolve call did, success or failure.
// It is handed to observers after the call completes.
type Trace struct {
	Names    []string
	Attempts []Attempt
	Result   *Result
	Endpoint string
}

// Observer is notified after every Resolve call. Observer failures never
// affect the resolution outcome.
type Observer interface {
	ObserveResolution(ctx context.Context, trace Trace)
}

// Resolver searches registered sources for the first matching candidate name.
type Resolver struct {
	registry  *Registry
	observers []Observer
}

// ResolverOption configures a Resolver at construction time.
type ResolverOption func(*Resolver)

// WithObserver attaches an observer that receives the trace of every call.
func WithObserver(obs Observer) ResolverOption {
	return func(r *Resolver) {
		if obs == nil {
			return
		}
		r.observers = append(r.observers, obs)
	}
}

// NewResolver constructs a Resolver over the provided registry.
func NewResolver(registry *Registry, options ...ResolverOption) (*Resolver, error) {
	if registry == nil {
		return nil, fmt.Errorf("resolve: registry is required")
	}
	r := &Resolver{registry: registry}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Registry exposes the registry this resolver searches.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve tries each candidate name against every registered source and
// returns the first match. Candidates are the outer loop: the first name in
// the caller's list that matches anywhere wins over later names regardless of
// source order. Within one candidate the earliest-registered source wins.
//
// An empty candidate list fails with ErrNoCandidates before any source is
// consulted. When every pair misses, the returned error is a *NotFoundError
// carrying the ordered attempt list.
func (r *Resolver) Resolve(ctx context.Context, names ...string) (Result, error) {
	if len(names) == 0 {
		return Result{}, ErrNoCandidates
	}

	candidates := make([]string, len(names))
	copy(candidates, names)

	sources := r.registry.Sources()
	attempts := make([]Attempt, 0, len(candidates)*len(sources))
	endpoint := EndpointFromContext(ctx)

	for _, candidate := range candidates {
		for _, src := range sources {
			content, ok, err := src.Attempt(candidate)
			if err != nil {
				attempts = append(attempts, Attempt{Source: src, Candidate: candidate, Outcome: OutcomeErrored, Err: err})
				continue
			}
			if !ok {
				attempts = append(attempts, Attempt{Source: src, Candidate: candidate, Outcome: OutcomeNotFound})
				continue
			}

			attempts = append(attempts, Attempt{Source: src, Candidate: candidate, Outcome: OutcomeFound})
			result := Result{Name: candidate, Content: content, Source: src}
			r.notify(ctx, Trace{Names: candidates, Attempts: attempts, Result: &result, Endpoint: endpoint})
			return result, nil
		}
	}

	r.notify(ctx, Trace{Names: candidates, Attempts: attempts, Endpoint: endpoint})
	return Result{}, &NotFoundError{Names: candidates, Attempts: attempts, Endpoint: endpoint}
}

func (r *Resolver) notify(ctx context.Context, trace Trace) {
	for _, obs := range r.observers {
		func() {
			defer func() {
				// Diagnostics are best effort; a panicking observer must not
				// change the resolution outcome.
				_ = recover()
			}()
			obs.ObserveResolution(ctx, trace)
		}()
	}
}
