package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchPatternSemantics(t *testing.T) {
	cases := []struct {
		pattern, name string
		want          bool
	}{
		{"", "anything", false},
		{"foo", "foo", true},
		{"foo", "foobar", false},
		{"foo*", "foobar", true},
		{"*bar", "foobar", true},
		{"foo*bar", "foo123bar", true},
		{"foo*bar", "foobar", true},
		{"foo*bar", "foo123", false},
		{"*", "anything", true},
	}
	for _, c := range cases {
		if got := matchPattern(c.pattern, c.name); got != c.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", c.pattern, c.name, got, c.want)
		}
	}
}

func TestAddPackageAndElementAreIdempotent(t *testing.T) {
	db := New()
	db.AddElement("math", "sin", KindFunction, "math.ajs", 10)
	db.AddElement("math", "sin", KindFunction, "other.ajs", 99)

	pkgs := db.FindPackages("math")
	if len(pkgs) != 1 {
		t.Fatalf("expected one package, got %d", len(pkgs))
	}
	elems := pkgs[0].FindElements("sin")
	if len(elems) != 1 || elems[0].Filename != "math.ajs" {
		t.Fatalf("expected first insertion to win, got %+v", elems)
	}
}

func TestFindPackagesAndElementsGlobbing(t *testing.T) {
	db := New()
	db.AddElement("math.trig", "sin", KindFunction, "trig.ajs", 1)
	db.AddElement("math.algebra", "solve", KindFunction, "algebra.ajs", 1)
	db.AddElement("io", "read", KindFunction, "io.ajs", 1)

	pkgs := db.FindPackages("math.*")
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 math.* packages, got %d", len(pkgs))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packages.db")

	db := New()
	db.path = path
	db.AddElement("strings", "upper", KindFunction, "strings.ajs", 5)
	db.AddElement("strings", "Point", KindClass, "strings.ajs", 40)

	if err := db.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if db.Dirty() {
		t.Fatal("expected dirty to clear after save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	pkgs := loaded.FindPackages("strings")
	if len(pkgs) != 1 {
		t.Fatalf("expected one package, got %d", len(pkgs))
	}
	elems := pkgs[0].FindElements("*")
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
}

func TestLoadMissingFileIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	db, err := Load(filepath.Join(dir, "does-not-exist.db"))
	if err != nil {
		t.Fatalf("expected no error for missing db, got %v", err)
	}
	if len(db.FindPackages("*")) != 0 {
		t.Fatal("expected empty database")
	}
}

func TestLoadInvalidJSONIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.db")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadInternalPackagesExcludesBootstrap(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "global")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"as2js_init.ajs", "array.ajs", "string.ajs"} {
		if err := os.WriteFile(filepath.Join(pkgDir, f), []byte("// stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	db := New()
	if err := LoadInternalPackages(db, dir, "global"); err != nil {
		t.Fatalf("LoadInternalPackages failed: %v", err)
	}

	pkgs := db.FindPackages("global")
	if len(pkgs) != 1 {
		t.Fatalf("expected global package, got %d", len(pkgs))
	}
	elems := pkgs[0].FindElements("*")
	if len(elems) != 2 {
		t.Fatalf("expected 2 indexed files (bootstrap excluded), got %d: %+v", len(elems), elems)
	}
	for _, e := range elems {
		if e.Name == "as2js_init" {
			t.Fatal("bootstrap file must not be indexed")
		}
	}
}
