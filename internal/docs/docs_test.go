package docs

import (
	"strings"
	"testing"
)

func TestTopics_IncludesEditingAndFormat(t *testing.T) {
	t.Parallel()

	names := map[string]string{}
	for _, tp := range Topics() {
		names[tp.Name] = tp.Title
	}
	if names["format"] != "Outline file format" {
		t.Fatalf("format topic: %#v", names)
	}
	if _, ok := names["editing"]; !ok {
		t.Fatalf("missing editing topic: %#v", names)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Policies ")
	if !ok || !strings.Contains(body, "guarded") {
		t.Fatalf("Get(policies) = %q, %v", body, ok)
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("path traversal should not resolve")
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("unknown topic resolved")
	}
}
