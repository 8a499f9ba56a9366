package gallery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1abc.cif", "data_1abc\n")
	writeFile(t, dir, "nested/2xyz.pdb", "HEADER\n")
	writeFile(t, dir, "readme.md", "not a structure\n")
	writeFile(t, dir, "archive.cif.gz", "binary\n")

	g := New(dir, []string{"**/*.cif", "**/*.pdb"}, []string{"**/*.gz"})
	examples, err := g.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d: %v", len(examples), examples)
	}
	if examples[0].Name != "1abc.cif" {
		t.Errorf("first example: got %q", examples[0].Name)
	}
	if examples[1].Name != "nested/2xyz.pdb" {
		t.Errorf("second example: got %q", examples[1].Name)
	}
	if examples[0].SizeBytes == 0 {
		t.Error("expected non-zero size")
	}
}

func TestListMissingDir(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "nope"), nil, nil)
	examples, err := g.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(examples) != 0 {
		t.Errorf("expected empty list, got %v", examples)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1abc.cif", "data_1abc\n")

	g := New(dir, []string{"**/*.cif"}, nil)

	data, err := g.Open("1abc.cif")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(data) != "data_1abc\n" {
		t.Errorf("content: got %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1abc.cif", "data_1abc\n")

	g := New(dir, []string{"**/*.cif"}, nil)

	for _, name := range []string{"../secret.cif", "/etc/passwd", ".", ""} {
		if _, err := g.Open(name); err == nil {
			t.Errorf("expected error opening %q", name)
		}
	}
}

func TestOpenRejectsUnmatched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "hello\n")

	g := New(dir, []string{"**/*.cif"}, nil)

	if _, err := g.Open("notes.txt"); err == nil {
		t.Error("expected error opening file outside the include globs")
	}
}
