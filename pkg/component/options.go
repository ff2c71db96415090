package component

import (
	"io/fs"
	"net/http"
	"strings"
)

// GuardFunc can reject a request before the wrapped handler runs.
type GuardFunc func(r *http.Request) error

// Options configures a component: where its templates live and how its routes
// are guarded.
type Options struct {
	// ImportLabel is the human readable origin shown in template diagnostics,
	// typically the package import path, e.g. "blueprintapp/apps/admin".
	ImportLabel string
	// TemplateDir is an on-disk template directory owned by the component.
	TemplateDir string
	// Templates serves component templates from an fs.FS (embed.FS works).
	// Takes precedence over TemplateDir when both are set.
	Templates fs.FS
	Guard     GuardFunc
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the zero configuration.
func DefaultOptions() Options {
	return Options{}
}

// NewOptions folds the provided option functions over the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.ImportLabel = strings.TrimSpace(opts.ImportLabel)
	opts.TemplateDir = strings.TrimSpace(opts.TemplateDir)
	return opts
}

// WithImportLabel sets the diagnostic label.
func WithImportLabel(label string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ImportLabel = label
	}
}

// WithTemplateDir points the component at an on-disk template directory.
func WithTemplateDir(dir string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TemplateDir = dir
	}
}

// WithTemplates points the component at an fs.FS of templates.
func WithTemplates(fsys fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Templates = fsys
	}
}

// WithGuard installs a request guard applied to every component route.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}
