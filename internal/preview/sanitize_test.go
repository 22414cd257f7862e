// internal/preview/sanitize_test.go
package preview

import (
	"strings"
	"testing"
)

func TestSanitizeStripsActiveContent(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name    string
		input   string
		removed []string
		kept    []string
	}{
		{
			name:    "script tag",
			input:   `<div>hi</div><script>alert(1)</script>`,
			removed: []string{"<script", "alert(1)"},
			kept:    []string{"<div>hi</div>"},
		},
		{
			name:    "event handler attribute",
			input:   `<button onclick="steal()">Click</button>`,
			removed: []string{"onclick", "steal"},
			kept:    []string{"<button"},
		},
		{
			name:    "javascript url",
			input:   `<a href="javascript:alert(1)">x</a>`,
			removed: []string{"javascript:"},
		},
		{
			name:    "iframe",
			input:   `<iframe src="https://evil.example"></iframe><p>text</p>`,
			removed: []string{"<iframe"},
			kept:    []string{"<p>text</p>"},
		},
		{
			name:    "style block dropped without leaking sheet text",
			input:   `<style>body { display: none }</style><p>visible</p>`,
			removed: []string{"display: none", "<style"},
			kept:    []string{"<p>visible</p>"},
		},
	}

	for _, tt := range tests {
		got := s.Sanitize(tt.input)
		for _, bad := range tt.removed {
			if strings.Contains(got, bad) {
				t.Errorf("%s: %q survived sanitization: %q", tt.name, bad, got)
			}
		}
		for _, good := range tt.kept {
			if !strings.Contains(got, good) {
				t.Errorf("%s: %q was lost: %q", tt.name, good, got)
			}
		}
	}
}

func TestSanitizeKeepsStructureAndStyling(t *testing.T) {
	s := NewSanitizer()

	input := `<main class="wrap" id="top" role="main">` +
		`<header style="color: blue">Title</header>` +
		`<form><label>Name</label><input type="text" placeholder="you" name="n"></form>` +
		`<img src="logo.png" alt="logo">` +
		`<button aria-label="go">Go</button>` +
		`</main>`

	got := s.Sanitize(input)

	for _, want := range []string{
		"<main", `class="wrap"`, `id="top"`, `role="main"`,
		`style="color: blue"`, "<form", `type="text"`, `placeholder="you"`,
		`alt="logo"`, `aria-label="go"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("sanitization dropped %q from %q", want, got)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	s := NewSanitizer()
	input := `<div style="margin: 0"><p>stable</p></div>`

	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("sanitization not idempotent: %q then %q", once, twice)
	}
}
