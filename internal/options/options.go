// Package options implements the dialect/pragma flag set consulted by
// the parser and compiler (spec §4.2 "Dialect gates", §4.5 defaults).
package options

import (
	"fmt"

	"github.com/spf13/cast"
)

// Name identifies one pragma-controlled dialect flag.
type Name string

const (
	ExtendedOperators       Name = "extended_operators"
	ExtendedStatements      Name = "extended_statements"
	AllowWith               Name = "allow_with"
	Octal                   Name = "octal"
	Strict                  Name = "strict"
	Debug                   Name = "debug"
	Trace                   Name = "trace"
	Coverage                Name = "coverage"
	UnsafeMath              Name = "unsafe_math"
	ExtendedEscapeSequences Name = "extended_escape_sequences"
)

// defaults mirrors the baseline dialect: extended syntax is opt-in,
// `with` is accepted unless allow_with is turned off (it defaults on),
// and the tracing/coverage/debug knobs default off.
var defaults = map[Name]any{
	ExtendedOperators:       false,
	ExtendedStatements:      false,
	AllowWith:               true,
	Octal:                   false,
	Strict:                  false,
	Debug:                   false,
	Trace:                   false,
	Coverage:                false,
	UnsafeMath:              false,
	ExtendedEscapeSequences: false,
}

// Options holds the live value of every pragma-controlled flag plus any
// scalar argument it was last set with. Pragmas may carry an argument
// beyond a plain on/off, e.g. `use strict(2);` — Options stores the raw
// value via spf13/cast so numeric, string, and boolean pragma arguments
// all coerce predictably (spec §4.2: "Pragmas take an optional scalar
// argument").
type Options struct {
	values map[Name]any
}

// New returns an Options initialized to the documented defaults.
func New() *Options {
	o := &Options{values: make(map[Name]any, len(defaults))}
	for k, v := range defaults {
		o.values[k] = v
	}
	return o
}

// Set assigns value to name, coercing it to a bool through spf13/cast
// so `use strict(1);` and `use strict(true);` behave identically. Set
// is the "non-prima" pragma form (spec §4.2).
func (o *Options) Set(name Name, value any) error {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return fmt.Errorf("options: pragma %q has non-boolean argument %v: %w", name, value, err)
	}
	o.values[name] = b
	return nil
}

// SetScalar stores an arbitrary scalar argument for a pragma without
// boolean coercion (used by pragmas like a named numeric subrange
// width that are not simple on/off switches).
func (o *Options) SetScalar(name Name, value any) {
	o.values[name] = value
}

// Get returns the current value of name as a bool. Names not in the
// defaults table return false.
func (o *Options) Get(name Name) bool {
	v, ok := o.values[name]
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// GetScalar returns the raw stored value for name, or nil if unset.
func (o *Options) GetScalar(name Name) any {
	return o.values[name]
}

// Prima implements the "prima" pragma form (`use strict?;`): it asserts
// the option currently equals expected, returning an error if not
// (spec §4.2, "prima asserts the option currently has that value").
// Prima never mutates state -- spec §8 testable property 4 requires it
// be "a pure query".
func (o *Options) Prima(name Name, expected any) error {
	got, ok := o.values[name]
	if !ok {
		got = defaults[name]
	}
	wantBool, err := cast.ToBoolE(expected)
	if err != nil {
		return fmt.Errorf("options: prima %q: bad expected value %v: %w", name, expected, err)
	}
	gotBool, err := cast.ToBoolE(got)
	if err != nil {
		return fmt.Errorf("options: prima %q: stored value is not boolean", name)
	}
	if gotBool != wantBool {
		return fmt.Errorf("options: prima mismatch for %q: have %v, want %v", name, gotBool, wantBool)
	}
	return nil
}

// Clone returns an independent copy of o; changes to the copy do not
// affect o.
func (o *Options) Clone() *Options {
	c := &Options{values: make(map[Name]any, len(o.values))}
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}
