package views

import (
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
)

// Options configures an Environment.
type Options struct {
	// Name identifies the application-level template source in diagnostics.
	Name string
	// ImportLabel is the human readable origin of the application source.
	// Defaults to Name.
	ImportLabel string
	// TemplateDir is the application template directory on disk.
	TemplateDir string
	// Templates serves application templates from an fs.FS. Takes precedence
	// over TemplateDir when both are set.
	Templates fs.FS
	// Extension is appended to template names that carry none.
	Extension string
	// AutoReload disables compiled-template caching so edits show up without
	// a restart.
	AutoReload bool
	// ExplainTemplateLoading logs a step-by-step report of every template
	// lookup. Can be toggled at runtime via Environment.SetExplain.
	ExplainTemplateLoading bool
	// DocsURL overrides the documentation reference in failure reports.
	DocsURL string
	// Logger receives explain reports. Defaults to a no-op logger.
	Logger *zap.Logger
	// Globals are seeded into every template's context.
	Globals map[string]any

	// ThemeSelector, ThemeName, and ThemeVariant select a theme whose tokens,
	// partial paths, and asset URLs become template globals under "theme".
	ThemeSelector theme.ThemeSelector
	ThemeName     string
	ThemeVariant  string
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		Name:      "application",
		Extension: ".html",
	}
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
	opts.Name = strings.TrimSpace(opts.Name)
	if opts.Name == "" {
		opts.Name = "application"
	}
	if strings.TrimSpace(opts.ImportLabel) == "" {
		opts.ImportLabel = opts.Name
	}
	if strings.TrimSpace(opts.Extension) == "" {
		opts.Extension = ".html"
	}
	return opts
}

// WithName sets the application source name.
func WithName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Name = name
	}
}

// WithImportLabel sets the diagnostic label of the application source.
func WithImportLabel(label string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ImportLabel = label
	}
}

// WithTemplateDir points the application source at an on-disk directory.
func WithTemplateDir(dir string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TemplateDir = dir
	}
}

// WithTemplates points the application source at an fs.FS.
func WithTemplates(fsys fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Templates = fsys
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Extension = ext
	}
}

// WithAutoReload toggles compiled-template caching.
func WithAutoReload(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AutoReload = enabled
	}
}

// WithExplainTemplateLoading toggles template lookup diagnostics.
func WithExplainTemplateLoading(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ExplainTemplateLoading = enabled
	}
}

// WithDocsURL overrides the documentation reference used in failure reports.
func WithDocsURL(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DocsURL = url
	}
}

// WithLogger sets the logger that receives explain reports.
func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithGlobals merges values into the template globals.
func WithGlobals(data map[string]any) OptionFn {
	return func(o *Options) {
		if o == nil || len(data) == 0 {
			return
		}
		if o.Globals == nil {
			o.Globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			o.Globals[key] = value
		}
	}
}

// WithTheme selects a theme through a go-theme selector so its tokens,
// partials, and assets are available to every template.
func WithTheme(selector theme.ThemeSelector, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeSelector = selector
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}
