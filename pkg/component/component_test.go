package component

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-views/pkg/resolve"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, err := New("apps.admin"); err == nil {
		t.Fatalf("expected dotted name to fail")
	}
	if _, err := New("admin"); err != nil {
		t.Fatalf("expected plain name to succeed, got %v", err)
	}
}

func TestComponent_SourceFromFS(t *testing.T) {
	comp, err := New("admin",
		WithImportLabel("blueprintapp/apps/admin"),
		WithTemplates(fstest.MapFS{
			"dashboard.html": {Data: []byte("<h1>admin</h1>")},
		}),
	)
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if !comp.HasTemplates() {
		t.Fatalf("expected component to carry templates")
	}

	src, err := comp.Source()
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if src.Name() != "admin" || src.Kind() != resolve.KindComponent {
		t.Fatalf("source identity mismatch: name=%q kind=%q", src.Name(), src.Kind())
	}
	if src.Label() != "blueprintapp/apps/admin" {
		t.Fatalf("label mismatch: %q", src.Label())
	}

	content, ok, err := src.Attempt("dashboard.html")
	if err != nil || !ok {
		t.Fatalf("attempt: ok=%v err=%v", ok, err)
	}
	if got := string(content); got != "<h1>admin</h1>" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestComponent_SourceWithoutTemplatesFails(t *testing.T) {
	comp, err := New("bare")
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if comp.HasTemplates() {
		t.Fatalf("expected no templates")
	}
	if _, err := comp.Source(); err == nil {
		t.Fatalf("expected Source to fail without a template store")
	}
}

func TestRegisterRoutes_CarriesEndpointContext(t *testing.T) {
	comp, err := New("frontend")
	if err != nil {
		t.Fatalf("new component: %v", err)
	}

	var seen string
	err = comp.HandleFunc("/missing", "missing", func(w http.ResponseWriter, r *http.Request) {
		seen = resolve.EndpointFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	mux := http.NewServeMux()
	patterns, err := comp.RegisterRoutes(mux, "/app")
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}
	if len(patterns) != 1 || patterns[0] != "/app/missing" {
		t.Fatalf("unexpected patterns: %v", patterns)
	}

	req := httptest.NewRequest(http.MethodGet, "/app/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if seen != "frontend.missing" {
		t.Fatalf("endpoint context mismatch: got %q", seen)
	}
}

func TestRegisterRoutes_GuardRejects(t *testing.T) {
	comp, err := New("admin", WithGuard(func(*http.Request) error {
		return errors.New("no access")
	}))
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if err := comp.HandleFunc("/panel", "panel", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	mux := http.NewServeMux()
	if _, err := comp.RegisterRoutes(mux, ""); err != nil {
		t.Fatalf("register routes: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/panel", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected guard to reject with 403, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Validation(t *testing.T) {
	comp, err := New("empty")
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if _, err := comp.RegisterRoutes(http.NewServeMux(), "/"); err == nil {
		t.Fatalf("expected no-routes registration to fail")
	}
	if _, err := comp.RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected nil mux to fail")
	}
}

func TestMountPath_JoinsBasePath(t *testing.T) {
	cases := []struct {
		base, route, want string
	}{
		{"/admin", "panel", "/admin/panel"},
		{"admin", "/panel", "/admin/panel"},
		{"/admin/", "panel", "/admin/panel"},
		{"", "panel", "/panel"},
		{"/", "", "/"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base, tc.route); got != tc.want {
			t.Fatalf("MountPath(%q, %q) = %q, want %q", tc.base, tc.route, got, tc.want)
		}
	}
}
