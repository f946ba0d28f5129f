// Package token defines the lexical token vocabulary and source-position
// bookkeeping shared by the lexer, parser, and compiler.
package token

import "fmt"

// Position identifies a single point in a source file. It is attached to
// every token and, through the token, to every AST node built from it.
//
// Page and Paragraph are derived counters, not independently tracked by
// the caller: Page advances on a form-feed character and Paragraph
// advances on a blank line, mirroring how the original as2js diagnostics
// grouped long generated sources into printable pages. Most callers only
// care about Line/Column; Page/Paragraph exist so a diagnostic sink can
// group errors by page when formatting very large listings.
type Position struct {
	Filename  string
	Function  string
	Line      int
	Column    int
	Page      int
	Paragraph int
}

// NewPosition returns the starting position of a file: line 1, column 1,
// page 1, paragraph 1.
func NewPosition(filename string) Position {
	return Position{Filename: filename, Line: 1, Column: 1, Page: 1, Paragraph: 1}
}

// NewLine advances the position to the start of the next line, the way a
// lexer does each time it consumes a '\n'. It never mutates p; it returns
// the new value.
func (p Position) NewLine() Position {
	p.Line++
	p.Column = 1
	return p
}

// NewParagraph advances the paragraph counter in addition to the line,
// called when the lexer consumes a blank line.
func (p Position) NewParagraph() Position {
	p = p.NewLine()
	p.Paragraph++
	return p
}

// NewPage advances the page counter in addition to the line, called when
// the lexer consumes a form-feed.
func (p Position) NewPage() Position {
	p = p.NewLine()
	p.Page++
	return p
}

// Advance moves the column forward by n runes on the same line.
func (p Position) Advance(n int) Position {
	p.Column += n
	return p
}

// String renders "file(line:col)" when a filename is known, or "line:col"
// otherwise -- matching the diagnostic format in spec §6.4.
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s(%d:%d)", p.Filename, p.Line, p.Column)
}

// WithFunction returns a copy of p annotated with the enclosing function
// name, used when a diagnostic needs to say "in function f".
func (p Position) WithFunction(name string) Position {
	p.Function = name
	return p
}
