package resolve

// Source identifies a registered template store so the resolver can consult
// application-level and component-level stores without leaking how each one is
// backed.
type Source interface {
	// Name is the short identity used in diagnostics, e.g. "frontend".
	Name() string
	// Kind reports whether the source belongs to the application itself or to
	// a mounted component.
	Kind() SourceKind
	// Label is the human readable origin shown in diagnostics, typically an
	// import path or directory, e.g. "blueprintapp/apps/frontend".
	Label() string
	// Attempt maps a logical template name to its content. A miss is reported
	// through ok=false with a nil error; a source that cannot even attempt the
	// lookup returns a non-nil error instead.
	Attempt(name string) (content []byte, ok bool, err error)
}

// SourceKind enumerates the store modalities.
type SourceKind string

const (
	KindApplication SourceKind = "application"
	KindComponent   SourceKind = "component"
)

// Lister is an optional capability for sources that can enumerate the logical
// names they serve. Discovery tooling uses it; resolution never does.
type Lister interface {
	Names() []string
}
