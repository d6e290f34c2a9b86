package result

import "testing"

func TestNew(t *testing.T) {
	r, ok := New("  https://go.dev  ", "\tThe Go language ")
	if !ok {
		t.Fatal("expected ok")
	}
	if r.URL() != "https://go.dev" {
		t.Errorf("URL() = %q", r.URL())
	}
	if r.Description() != "The Go language" {
		t.Errorf("Description() = %q", r.Description())
	}
	if r.Document() != "https://go.dev - The Go language" {
		t.Errorf("Document() = %q", r.Document())
	}
}

func TestNew_RejectsBlankFields(t *testing.T) {
	cases := []struct{ url, desc string }{
		{"", "desc"},
		{"   ", "desc"},
		{"https://a", ""},
		{"https://a", " \n "},
	}
	for _, c := range cases {
		if _, ok := New(c.url, c.desc); ok {
			t.Errorf("New(%q, %q) should be rejected", c.url, c.desc)
		}
	}
}
