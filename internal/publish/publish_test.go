package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"temario/internal/model"
)

func sampleOutline() *model.Outline {
	return model.NewOutline([]model.Item{
		{Depth: 1, Text: "Bloque I"},
		{Depth: 2, Text: "Tema 1"},
		{Depth: 3, Text: "Objetivos"},
		{Depth: 4, Text: "<i>Detalle</i>"},
		{Depth: 2, Text: "Tema 2"},
		{Depth: 1, Text: "Bloque II"},
	})
}

func TestRenderMarkdown_HeadingsAndNestedList(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(sampleOutline(), RenderOptions{Title: "Curso", Numbered: true})
	for _, want := range []string{
		"# Curso\n",
		"## 1 Bloque I\n",
		"### 1.1 Tema 1\n",
		"- 1.1.1 Objetivos\n",
		"  - 1.1.1.1 <i>Detalle</i>\n",
		"### 1.2 Tema 2\n",
		"## 2 Bloque II\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(model.NewOutline(nil), RenderOptions{})
	if !strings.Contains(md, "empty outline") {
		t.Fatalf("unexpected:\n%s", md)
	}
}

func TestRenderNumbered(t *testing.T) {
	t.Parallel()

	got := RenderNumbered(model.NewOutline([]model.Item{
		{Depth: 1, Text: "A"},
		{Depth: 2, Text: "B\n  continued"},
	}))
	if got != "1 A\n  1.1 B continued\n" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := RenderNumbered(model.NewOutline(nil)); got != "1\n" {
		t.Fatalf("placeholder rendering: %q", got)
	}
}

func TestRenderTree_NestsByDepth(t *testing.T) {
	t.Parallel()

	tree := RenderTree(sampleOutline(), "Curso")
	lines := strings.Split(strings.TrimRight(tree, "\n"), "\n")
	if len(lines) != 7 || lines[0] != "Curso" {
		t.Fatalf("unexpected tree:\n%s", tree)
	}
	if !strings.Contains(tree, "1.1.1.1 <i>Detalle</i>") || !strings.Contains(tree, "2 Bloque II") {
		t.Fatalf("missing nodes:\n%s", tree)
	}
}

func TestRenderTree_DepthJumpAttachesToDeepestNode(t *testing.T) {
	t.Parallel()

	o := model.NewOutline([]model.Item{{Depth: 1, Text: "A"}, {Depth: 3, Text: "C"}})
	tree := RenderTree(o, "")
	if !strings.Contains(tree, "A") || !strings.Contains(tree, "C") {
		t.Fatalf("unexpected tree:\n%s", tree)
	}
}

func TestWriteOutline_WritesMarkdownAndTree(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	res, err := WriteOutline(sampleOutline(), "curso.lista", to, WriteOptions{WithTree: true})
	if err != nil {
		t.Fatalf("WriteOutline: %v", err)
	}
	if len(res.Written) != 2 {
		t.Fatalf("expected 2 written files; got %v", res.Written)
	}
	b, err := os.ReadFile(filepath.Join(to, "curso.md"))
	if err != nil {
		t.Fatalf("read curso.md: %v", err)
	}
	if !strings.HasPrefix(string(b), "# curso\n") {
		t.Fatalf("unexpected markdown:\n%s", b)
	}
	if _, err := os.Stat(filepath.Join(to, "curso.tree.txt")); err != nil {
		t.Fatalf("stat tree: %v", err)
	}

	if _, err := WriteOutline(sampleOutline(), "curso.lista", to, WriteOptions{}); err == nil {
		t.Fatalf("expected error without overwrite")
	}
	if _, err := WriteOutline(sampleOutline(), "curso.lista", to, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestRenderTerminal_FallsBackOnBlank(t *testing.T) {
	t.Parallel()

	if got := RenderTerminal("   ", 80, "notty"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	out := RenderTerminal("# Curso\n\n- Tema", 80, "notty")
	if !strings.Contains(out, "Curso") || !strings.Contains(out, "Tema") {
		t.Fatalf("unexpected render: %q", out)
	}
}
