package domain

import (
	"testing"

	"github.com/MrSnakeDoc/marks/internal/errs"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dev Tools", "dev-tools"},
		{"  Reading   List ", "reading-list"},
		{"Go / Rust", "go-rust"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollectionPreparePathIsStable(t *testing.T) {
	c, err := Collection{OwnerID: "u1", Name: "Dev Tools"}.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.Path != "dev-tools" {
		t.Fatalf("Path = %q, want dev-tools", c.Path)
	}

	c.Name = "Tooling"
	renamed, err := c.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if renamed.Path != "dev-tools" {
		t.Errorf("Path = %q after rename, want dev-tools", renamed.Path)
	}
}

func TestCollectionPrepareValidation(t *testing.T) {
	if _, err := (Collection{OwnerID: "u1"}).Prepare(); !errs.IsValidation(err) {
		t.Errorf("missing name: error = %v, want ValidationError", err)
	}
	if _, err := (Collection{Name: "x"}).Prepare(); !errs.IsValidation(err) {
		t.Errorf("missing owner: error = %v, want ValidationError", err)
	}
	if _, err := (Collection{OwnerID: "u1", Name: "???"}).Prepare(); !errs.IsValidation(err) {
		t.Errorf("unsluggable name: error = %v, want ValidationError", err)
	}
}
