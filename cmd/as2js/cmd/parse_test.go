package cmd

import (
	"os"
	"testing"
)

func TestReadInputFromExpressionFlag(t *testing.T) {
	filename, source, err := readInput("<expression>", true, []string{"var x = 1;"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "<expression>" || source != "var x = 1;" {
		t.Fatalf("unexpected result: filename=%q source=%q", filename, source)
	}
}

func TestReadInputFromExpressionFlagRequiresArg(t *testing.T) {
	_, _, err := readInput("<expression>", true, nil)
	if err == nil {
		t.Fatal("expected an error when -e is set without an expression argument")
	}
}

func TestReadInputFromFile(t *testing.T) {
	path := t.TempDir() + "/sample.as"
	if err := os.WriteFile(path, []byte("var x = 1;"), 0o644); err != nil {
		t.Fatalf("test setup failed: %v", err)
	}
	filename, source, err := readInput("<expression>", false, []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != path || source != "var x = 1;" {
		t.Fatalf("unexpected result: filename=%q source=%q", filename, source)
	}
}
