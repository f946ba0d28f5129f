// Package resources loads the `.rc` configuration file (spec §4.5,
// §6.1): script search paths, the package database path, and the
// compiler's synthesized-variable name prefix.
package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// FatalError marks an installation/IO failure that must abort the
// compile run outright (spec §4.3 "Failure semantics": "Installation/IO
// failures during .rc or Database load raise a fatal terminator").
type FatalError struct{ Message string }

func (e *FatalError) Error() string { return e.Message }

func fatalf(format string, args ...any) *FatalError {
	return &FatalError{Message: fmt.Sprintf(format, args...)}
}

// Resources holds the resolved `.rc` configuration.
type Resources struct {
	Scripts               []string
	DB                     string
	TemporaryVariableName string

	// RCFile is the path the configuration was actually loaded from,
	// empty if defaults were kept because no file was found.
	RCFile string
}

const (
	defaultScripts = "as2js/scripts:/usr/lib/as2js/scripts"
	defaultDB      = "/tmp/as2js_packages.db"
	defaultTemp    = "@temp"
)

func defaults() *Resources {
	return &Resources{
		Scripts:               splitScripts(defaultScripts),
		DB:                     defaultDB,
		TemporaryVariableName: defaultTemp,
	}
}

// searchPaths returns the `.rc` lookup order from spec §4.5, stopping
// at the first file that exists.
func searchPaths() []string {
	var paths []string
	if env := os.Getenv("AS2JS_RC"); env != "" {
		paths = append(paths, filepath.Join(env, "as2js.rc"))
	}
	paths = append(paths, filepath.Join("as2js", "as2js.rc"))
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "as2js", "as2js.rc"))
	}
	paths = append(paths, filepath.Join("/etc", "as2js", "as2js.rc"))
	return paths
}

// Load resolves and parses the `.rc` file per spec §4.5/§8 testable
// property 2 (first match in the documented order wins). If no file is
// found: acceptIfMissing=true keeps defaults, acceptIfMissing=false
// returns a *FatalError.
func Load(acceptIfMissing bool) (*Resources, error) {
	for _, p := range searchPaths() {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		logrus.WithField("rcfile", p).Debug("as2js: loaded resource file")
		return parse(p, data)
	}
	if !acceptIfMissing {
		return nil, fatalf("no as2js.rc found in any of the configured locations")
	}
	logrus.Debug("as2js: no resource file found, using defaults")
	return defaults(), nil
}

// LoadFrom parses the `.rc` content directly, bypassing the search
// path -- used by tests and by the CLI's `--rc` flag.
func LoadFrom(path string) (*Resources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fatalf("cannot read %s: %v", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Resources, error) {
	if !gjson.ValidBytes(data) {
		return nil, fatalf("%s: not valid JSON", path)
	}
	root := gjson.ParseBytes(data)
	r := defaults()
	r.RCFile = path

	if v := root.Get("scripts"); v.Exists() {
		if v.Type != gjson.String {
			return nil, fatalf("%s: \"scripts\" must be a string", path)
		}
		r.Scripts = splitScripts(v.String())
	}
	if v := root.Get("db"); v.Exists() {
		if v.Type != gjson.String {
			return nil, fatalf("%s: \"db\" must be a string", path)
		}
		if v.String() == "" {
			return nil, fatalf("%s: \"db\" must not be empty", path)
		}
		r.DB = v.String()
	}
	if v := root.Get("temporary_variable_name"); v.Exists() {
		if v.Type != gjson.String {
			return nil, fatalf("%s: \"temporary_variable_name\" must be a string", path)
		}
		if v.String() == "" {
			return nil, fatalf("%s: \"temporary_variable_name\" must not be empty", path)
		}
		r.TemporaryVariableName = v.String()
	}
	// Unknown top-level keys are silently ignored (spec §6.1): we never
	// iterate root's other keys, we only Get() the three recognized ones.
	return r, nil
}

// splitScripts canonicalizes a colon-separated path list: it resolves
// each entry to an absolute path, drops entries that cannot be made
// absolute, and de-duplicates while preserving first-seen order (spec
// §4.5).
func splitScripts(raw string) []string {
	parts := strings.Split(raw, ":")
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			logrus.WithField("path", p).Warn("as2js: dropping inaccessible script path")
			continue
		}
		if real, err := filepath.EvalSymlinks(abs); err == nil {
			abs = real
		}
		// Inaccessible (non-existent) entries are warned about and
		// dropped rather than causing a hard failure (spec §4.5): a
		// script path is advisory until something actually tries to
		// load from it.
		if _, err := os.Stat(abs); err != nil {
			logrus.WithField("path", abs).Warn("as2js: script search path does not exist")
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out
}
