package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// FSSource serves templates from one or more fs.FS roots, searched in order.
// It backs both the application store and directory-backed component stores.
// Immutable after construction.
type FSSource struct {
	name  string
	kind  SourceKind
	label string
	roots []fs.FS
}

var _ Source = (*FSSource)(nil)
var _ Lister = (*FSSource)(nil)

// NewFSSource constructs a source over the provided filesystems. At least one
// root is required.
func NewFSSource(name string, kind SourceKind, label string, roots ...fs.FS) (*FSSource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("resolve: source name is required")
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("resolve: source %q needs at least one filesystem root", name)
	}
	for i, root := range roots {
		if root == nil {
			return nil, fmt.Errorf("resolve: source %q root %d is nil", name, i)
		}
	}

	out := make([]fs.FS, len(roots))
	copy(out, roots)
	return &FSSource{name: name, kind: kind, label: label, roots: out}, nil
}

// NewDirSource constructs a source over on-disk template directories.
func NewDirSource(name string, kind SourceKind, label string, dirs ...string) (*FSSource, error) {
	roots := make([]fs.FS, 0, len(dirs))
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		roots = append(roots, os.DirFS(dir))
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("resolve: source %q needs at least one directory", name)
	}
	return NewFSSource(name, kind, label, roots...)
}

func (s *FSSource) Name() string     { return s.name }
func (s *FSSource) Kind() SourceKind { return s.kind }
func (s *FSSource) Label() string    { return s.label }

// Attempt reads name from the first root that has it. Logical names use
// forward slashes regardless of platform. Missing files and names that turn
// out to be directories are a miss; any other read failure is reported as a
// source error.
func (s *FSSource) Attempt(name string) ([]byte, bool, error) {
	cleaned := path.Clean(strings.TrimPrefix(name, "/"))
	if !fs.ValidPath(cleaned) {
		return nil, false, nil
	}

	for _, root := range s.roots {
		content, err := fs.ReadFile(root, cleaned)
		if err == nil {
			return content, true, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if info, statErr := fs.Stat(root, cleaned); statErr == nil && info.IsDir() {
			continue
		}
		return nil, false, fmt.Errorf("resolve: source %q read %q: %w", s.name, cleaned, err)
	}
	return nil, false, nil
}

// Names enumerates every template file reachable from the source roots, sorted
// and de-duplicated. Used by discovery tooling only.
func (s *FSSource) Names() []string {
	seen := make(map[string]struct{})
	for _, root := range s.roots {
		_ = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			seen[p] = struct{}{}
			return nil
		})
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
