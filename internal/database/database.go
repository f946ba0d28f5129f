// Package database implements the persistent package database (spec
// §3.4, §4.4, §6.2): a two-level JSON index of
// `package -> element -> {type, filename, line}` used to discover and
// lazily load modules referenced by `import` or by an unresolved
// identifier.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ElementKind is one of the recognized element types (spec §3.4).
type ElementKind string

const (
	KindClass       ElementKind = "class"
	KindFunction    ElementKind = "function"
	KindGetter      ElementKind = "getter"
	KindSetter      ElementKind = "setter"
	KindVariable    ElementKind = "variable"
	KindEnumeration ElementKind = "enumeration"
)

// Element is one entry under a package: `{type, filename, line}`.
type Element struct {
	Name     string
	Type     ElementKind
	Filename string
	Line     int
}

// Package is a named bag of elements, keyed by element name.
type Package struct {
	Name     string
	Elements map[string]*Element
}

// Database is the in-memory form of the package database file. It is
// not safe for concurrent use across compiler instances (spec §5:
// "concurrent compile runs must not share a compiler instance").
type Database struct {
	path     string
	packages map[string]*Package
	dirty    bool
}

// New returns an empty, path-less database (used when no `.rc` database
// path is configured yet, or by tests).
func New() *Database {
	return &Database{packages: make(map[string]*Package)}
}

// Load reads the database JSON file at path. A missing file is not an
// error -- it yields an empty database that Save later creates (the
// first invocation on a fresh install has nothing to load yet).
func Load(path string) (*Database, error) {
	db := &Database{path: path, packages: make(map[string]*Package)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("db", path).Debug("as2js: no existing package database, starting empty")
			return db, nil
		}
		return nil, fmt.Errorf("database: cannot read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("database: %s: not valid JSON", path)
	}

	root := gjson.ParseBytes(data)
	root.ForEach(func(pkgKey, pkgVal gjson.Result) bool {
		pkg := db.AddPackage(pkgKey.String())
		pkgVal.ForEach(func(elemKey, elemVal gjson.Result) bool {
			pkg.Elements[elemKey.String()] = &Element{
				Name:     elemKey.String(),
				Type:     ElementKind(elemVal.Get("type").String()),
				Filename: elemVal.Get("filename").String(),
				Line:     int(elemVal.Get("line").Int()),
			}
			return true
		})
		return true
	})
	return db, nil
}

// AddPackage inserts-or-gets the named package record.
func (db *Database) AddPackage(name string) *Package {
	if pkg, ok := db.packages[name]; ok {
		return pkg
	}
	pkg := &Package{Name: name, Elements: make(map[string]*Element)}
	db.packages[name] = pkg
	db.dirty = true
	return pkg
}

// AddElement inserts-or-gets the named element within a package,
// adding the package first if needed.
func (db *Database) AddElement(pkgName, elemName string, kind ElementKind, filename string, line int) *Element {
	pkg := db.AddPackage(pkgName)
	if e, ok := pkg.Elements[elemName]; ok {
		return e
	}
	e := &Element{Name: elemName, Type: kind, Filename: filename, Line: line}
	pkg.Elements[elemName] = e
	db.dirty = true
	return e
}

// FindPackages returns packages whose name matches pattern (spec §4.4,
// §8 testable property 3), sorted by name for deterministic output.
func (db *Database) FindPackages(pattern string) []*Package {
	var out []*Package
	for name, pkg := range db.packages {
		if matchPattern(pattern, name) {
			out = append(out, pkg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindElements returns the elements of pkg whose name matches pattern.
func (pkg *Package) FindElements(pattern string) []*Element {
	var out []*Element
	for name, e := range pkg.Elements {
		if matchPattern(pattern, name) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dirty reports whether the database has unsaved changes.
func (db *Database) Dirty() bool { return db.dirty }

// Save serializes the database back to its path in place (spec §4.4,
// §6.2). Saving to an empty path is a programmer error (no `.rc`
// database configured), reported as a plain error rather than panic
// since it can be reached from I/O-adjacent call sites.
func (db *Database) Save() error {
	if db.path == "" {
		return fmt.Errorf("database: cannot save, no path configured")
	}

	json := "{}"
	var err error

	pkgNames := make([]string, 0, len(db.packages))
	for name := range db.packages {
		pkgNames = append(pkgNames, name)
	}
	sort.Strings(pkgNames)

	for _, pkgName := range pkgNames {
		pkg := db.packages[pkgName]
		elemNames := make([]string, 0, len(pkg.Elements))
		for name := range pkg.Elements {
			elemNames = append(elemNames, name)
		}
		sort.Strings(elemNames)

		for _, elemName := range elemNames {
			e := pkg.Elements[elemName]
			base := sjsonPath(pkgName, elemName)
			if json, err = sjson.Set(json, base+".type", string(e.Type)); err != nil {
				return fmt.Errorf("database: encoding %s.%s: %w", pkgName, elemName, err)
			}
			if json, err = sjson.Set(json, base+".filename", e.Filename); err != nil {
				return fmt.Errorf("database: encoding %s.%s: %w", pkgName, elemName, err)
			}
			if json, err = sjson.Set(json, base+".line", e.Line); err != nil {
				return fmt.Errorf("database: encoding %s.%s: %w", pkgName, elemName, err)
			}
		}
	}

	if err := os.WriteFile(db.path, []byte(json), 0o644); err != nil {
		return fmt.Errorf("database: saving %s: %w", db.path, err)
	}
	db.dirty = false
	return nil
}

// sjsonPath builds an sjson path from a package/element name pair.
// Package names may be dotted (`math.trig`), so every `.` inside a
// name is escaped; the package then stays a single top-level key
// rather than being nested one level per dot.
func sjsonPath(pkgName, elemName string) string {
	return strings.ReplaceAll(pkgName, ".", `\.`) + "." + strings.ReplaceAll(elemName, ".", `\.`)
}

// LoadInternalPackages globs `<scriptDir>/<name>/*.ajs` (excluding the
// bootstrap `as2js_init.ajs`, spec §4.3/§6.3) and indexes every file it
// finds as a package element under name, recording each file's base
// name, without its extension, as its element key. Every element is
// recorded with kind variable and line 0; nothing later replaces that
// kind, so the entry only associates the name with its file.
func LoadInternalPackages(db *Database, scriptDir, name string) error {
	pattern := filepath.Join(scriptDir, name, "*.ajs")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("database: globbing %s: %w", pattern, err)
	}

	pkg := db.AddPackage(name)
	for _, m := range matches {
		base := filepath.Base(m)
		if base == "as2js_init.ajs" {
			continue
		}
		elemName := base[:len(base)-len(filepath.Ext(base))]
		if _, ok := pkg.Elements[elemName]; ok {
			continue
		}
		pkg.Elements[elemName] = &Element{
			Name:     elemName,
			Type:     KindVariable,
			Filename: m,
		}
		db.dirty = true
	}
	return nil
}
