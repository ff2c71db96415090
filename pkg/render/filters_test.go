package render_test

import (
	"context"
	"strings"
	"testing"
)

func TestBuiltinFilters(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"trim.html":  "{{ value|trim }}",
		"lower.html": "{{ value|lowerfirst }}",
	})

	got, err := engine.Render(context.Background(), []string{"trim.html"}, map[string]any{"value": "  padded  "})
	if err != nil {
		t.Fatalf("render trim: %v", err)
	}
	if got != "padded" {
		t.Fatalf("trim mismatch: got %q", got)
	}

	got, err = engine.Render(context.Background(), []string{"lower.html"}, map[string]any{"value": "Hello"})
	if err != nil {
		t.Fatalf("render lowerfirst: %v", err)
	}
	if got != "hello" {
		t.Fatalf("lowerfirst mismatch: got %q", got)
	}
}

func TestSanitizeFilterStripsUnsafeMarkup(t *testing.T) {
	engine, _ := newEngine(t, map[string]string{
		"comment.html": "{{ body|sanitize }}",
	})

	got, err := engine.Render(context.Background(), []string{"comment.html"}, map[string]any{
		"body": `<p>hello</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("script tag survived sanitisation: %q", got)
	}
	if !strings.Contains(got, "<p>hello</p>") {
		t.Fatalf("safe markup was stripped: %q", got)
	}
}
