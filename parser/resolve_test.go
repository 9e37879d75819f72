package parser

import "testing"

func TestResolveImageRef(t *testing.T) {
	pool := []poolEntry{
		{path: "figs/diagram.png"},
		{path: "figs/Photo.JPG"},
		{path: "cover.gif"},
		{path: "deep/nested/chart.jpeg"},
	}

	tests := []struct {
		name     string
		ref      string
		wantPath string
		wantOK   bool
	}{
		{"extensionless with directory", "figs/diagram", "figs/diagram.png", true},
		{"extensionless bare", "diagram", "figs/diagram.png", true},
		{"exact base match", "diagram.png", "figs/diagram.png", true},
		{"case insensitive", "photo.jpg", "figs/Photo.JPG", true},
		{"case insensitive extensionless", "PHOTO", "figs/Photo.JPG", true},
		{"gif retry", "cover", "cover.gif", true},
		{"jpeg retry", "chart", "deep/nested/chart.jpeg", true},
		{"unresolved", "missing", "", false},
		{"empty reference", "", "", false},
		{"wrong extension", "diagram.pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := resolveImageRef(tt.ref, pool)
			if ok != tt.wantOK {
				t.Fatalf("resolveImageRef(%q) ok = %v, want %v", tt.ref, ok, tt.wantOK)
			}
			if ok && pool[idx].path != tt.wantPath {
				t.Errorf("resolveImageRef(%q) = %q, want %q", tt.ref, pool[idx].path, tt.wantPath)
			}
		})
	}
}

// The retry order is fixed: .png wins over .jpg when both exist.
func TestResolveImageRefExtensionOrder(t *testing.T) {
	pool := []poolEntry{
		{path: "logo.jpg"},
		{path: "logo.png"},
	}
	idx, ok := resolveImageRef("logo", pool)
	if !ok {
		t.Fatal("expected a match")
	}
	if pool[idx].path != "logo.png" {
		t.Errorf("got %q, want logo.png (retry order .png first)", pool[idx].path)
	}
}

// First listed entry wins when two paths share a base filename.
func TestResolveImageRefFirstMatch(t *testing.T) {
	pool := []poolEntry{
		{path: "a/fig.png"},
		{path: "b/fig.png"},
	}
	idx, ok := resolveImageRef("fig", pool)
	if !ok || idx != 0 {
		t.Errorf("resolveImageRef = (%d, %v), want first entry", idx, ok)
	}
}
