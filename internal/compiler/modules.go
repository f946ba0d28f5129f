package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/database"
	"github.com/as2js-go/as2js/internal/parser"
	"github.com/as2js-go/as2js/internal/resources"
)

// findModule implements spec §4.3 "Module loading": consult the cache
// first, then the injected InputRetriever, then the filesystem. It
// returns the loaded PROGRAM root, parsing and caching it on first
// access. Parser-reported syntax errors surface through c.Msgs the
// normal way (user errors, counted and returned, not fatal); only
// missing/unreadable files raise a *resources.FatalError (spec
// "Installation/IO failures... raise a fatal terminator").
func (c *Compiler) findModule(filename string) (*ast.Node, error) {
	if prog, ok := c.modules[filename]; ok {
		return prog, nil
	}
	if c.loading[filename] {
		return nil, fmt.Errorf("compiler: import cycle loading %s", filename)
	}
	c.loading[filename] = true
	defer delete(c.loading, filename)

	source, ok, err := c.retrieve(filename)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &resources.FatalError{Message: fmt.Sprintf("cannot locate module %s", filename)}
	}

	prog := parser.Parse(filename, source, c.Msgs, c.Opts)
	c.modules[filename] = prog
	return prog, nil
}

// retrieve consults c.retriever first (spec: "either calls an injected
// input_retriever or opens the file on disk"), then falls back to
// reading filename directly off disk.
func (c *Compiler) retrieve(filename string) (string, bool, error) {
	if c.retriever != nil {
		if source, ok, err := c.retriever(filename); ok || err != nil {
			return source, ok, err
		}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, &resources.FatalError{Message: fmt.Sprintf("cannot read %s: %v", filename, err)}
	}
	return string(data), true, nil
}

// loadInternalPackages globs every `<scriptDir>/<name>/*.ajs` file
// (spec §4.3, §4.4) and indexes it in c.DB, without parsing any of
// them yet -- find_module parses lazily, on first actual reference.
func (c *Compiler) loadInternalPackages(name string) error {
	if c.DB == nil || c.Res == nil {
		return nil
	}
	for _, dir := range c.Res.Scripts {
		if err := database.LoadInternalPackages(c.DB, dir, name); err != nil {
			return &resources.FatalError{Message: err.Error()}
		}
	}
	return nil
}

// findExternalPackage implements find_external_package (spec §4.3): it
// queries the Database for name, loads the file that declares it via
// findModule, and returns that file's PROGRAM root's PACKAGE/CLASS
// declaration matching name, compiling the file (through Compile) if
// this is the first time it is seen.
func (c *Compiler) findExternalPackage(name string) (*ast.Node, error) {
	if pkg, ok := c.packagesByName[name]; ok {
		return pkg, nil
	}
	if err := c.loadInternalPackages(rootSegment(name)); err != nil {
		return nil, err
	}
	if c.DB == nil {
		return nil, nil
	}

	matches := c.DB.FindPackages(name)
	var elemFilename string
	for _, pkg := range matches {
		if pkg.Name != name {
			continue
		}
		for _, e := range pkg.Elements {
			elemFilename = e.Filename
			break
		}
	}
	if elemFilename == "" {
		elemFilename = c.moduleFilename(name)
		if _, err := os.Stat(elemFilename); err != nil {
			return nil, nil
		}
	}

	prog, err := c.findModule(elemFilename)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		return nil, nil
	}
	c.Compile(prog)

	if found, ok := c.packagesByName[name]; ok {
		return found, nil
	}
	return nil, nil
}

// rootSegment returns the first dotted segment of a package path, the
// name load_internal_packages globs under the script search path
// (spec §4.3/§6.3).
func rootSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// moduleFilename turns a dotted package path into the `.ajs` file path
// find_module expects, relative to the first matching script search
// directory.
func (c *Compiler) moduleFilename(name string) string {
	rel := filepath.Join(strings.Split(name, ".")...) + ".ajs"
	if c.Res == nil {
		return rel
	}
	for _, dir := range c.Res.Scripts {
		candidate := filepath.Join(dir, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return rel
}
