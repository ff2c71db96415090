package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-views/pkg/resolve"
)

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	registry := resolve.NewRegistry()
	for _, name := range []string{"app", "admin", "frontend"} {
		if err := registry.Register(mapSource(t, name, resolve.KindComponent, nil)); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}

	var got []string
	for _, src := range registry.Sources() {
		got = append(got, src.Name())
	}
	if diff := cmp.Diff([]string{"app", "admin", "frontend"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if registry.Len() != 3 {
		t.Fatalf("len mismatch: want 3, got %d", registry.Len())
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := resolve.NewRegistry()
	if err := registry.Register(mapSource(t, "app", resolve.KindApplication, nil)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(mapSource(t, "app", resolve.KindComponent, nil)); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegistry_RejectsNilSource(t *testing.T) {
	registry := resolve.NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil source to fail")
	}
}

func TestRegistry_SourcesIsACopy(t *testing.T) {
	registry := resolve.NewRegistry()
	registry.MustRegister(mapSource(t, "app", resolve.KindApplication, nil))

	snapshot := registry.Sources()
	snapshot[0] = nil

	if registry.Sources()[0] == nil {
		t.Fatalf("mutating the snapshot leaked into the registry")
	}
	if !registry.Has("app") {
		t.Fatalf("expected Has to report registered source")
	}
}
