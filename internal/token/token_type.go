package token

// Type identifies the lexical category of a Token. The grouping below
// follows spec §3.2's node-kind taxonomy (literals, identifiers,
// operators, structural keywords) since tokens and node kinds largely
// mirror each other in a hand-written recursive-descent front end.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	COMMENT

	identStart
	IDENTIFIER  // foo, _bar, $dyn (plain identifier)
	VIDENTIFIER // identifier introduced by a dynamic/variable construct (e.g. inside `with`)
	identEnd

	literalStart
	INTEGER
	FLOATING_POINT
	STRING
	REGULAR_EXPRESSION
	TRUE
	FALSE
	NULL
	UNDEFINED
	literalEnd

	opStart
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	POWER    // **
	ROTATE_LEFT  // <%
	ROTATE_RIGHT // >%
	MIN_OP   // <?
	MAX_OP   // >?
	MATCH_OP  // ~~
	NOT_MATCH_OP // !~
	COMPARE  // <=>

	ASSIGN        // =
	PLUS_ASSIGN   // +=
	MINUS_ASSIGN  // -=
	STAR_ASSIGN   // *=
	SLASH_ASSIGN  // /=
	PERCENT_ASSIGN // %=
	POWER_ASSIGN  // **=
	MIN_ASSIGN    // <?=
	MAX_ASSIGN    // >?=
	ROTATE_LEFT_ASSIGN  // <%=
	ROTATE_RIGHT_ASSIGN // >%=
	AND_ASSIGN    // &=
	OR_ASSIGN     // |=
	XOR_ASSIGN    // ^=
	SHL_ASSIGN    // <<=
	SHR_ASSIGN    // >>=
	USHR_ASSIGN   // >>>=

	EQ        // ==
	STRICT_EQ // ===
	NE        // !=
	STRICT_NE // !==
	LT        // <
	LE        // <=
	GT        // >
	GE        // >=

	SHL  // <<
	SHR  // >>
	USHR // >>>

	AMP      // &
	PIPE     // |
	CARET    // ^
	TILDE    // ~

	LOGICAL_AND // &&
	LOGICAL_OR  // ||
	LOGICAL_XOR // ^^
	NOT         // !

	INCREMENT // ++
	DECREMENT // --

	SCOPE // ::
	opEnd

	punctStart
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	DOT       // .
	RANGE     // ..
	REST      // ...
	QUESTION  // ?
	ARROW     // =>
	AT        // @
	punctEnd

	keywordStart
	VAR
	CONST
	FUNCTION
	CLASS
	INTERFACE
	ENUM
	PACKAGE
	PROGRAM
	IMPORT
	EXTENDS
	IMPLEMENTS
	RETURN
	IF
	ELSE
	FOR
	WHILE
	DO
	SWITCH
	CASE
	DEFAULT
	WITH
	BREAK
	CONTINUE
	GOTO
	LABEL
	TRY
	CATCH
	FINALLY
	THROW
	NEW
	DELETE
	TYPEOF
	INSTANCEOF
	IN
	IS
	AS
	VOID
	USE
	NAMESPACE
	REQUIRE
	ENSURE
	MOD
	GET
	SET
	SYNCHRONIZED
	keywordEnd
)

var names = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENTIFIER: "IDENTIFIER", VIDENTIFIER: "VIDENTIFIER",
	INTEGER: "INTEGER", FLOATING_POINT: "FLOATING_POINT", STRING: "STRING",
	REGULAR_EXPRESSION: "REGULAR_EXPRESSION", TRUE: "true", FALSE: "false",
	NULL: "null", UNDEFINED: "undefined",

	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	ROTATE_LEFT: "<%", ROTATE_RIGHT: ">%", MIN_OP: "<?", MAX_OP: ">?",
	MATCH_OP: "~~", NOT_MATCH_OP: "!~", COMPARE: "<=>",

	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", POWER_ASSIGN: "**=",
	MIN_ASSIGN: "<?=", MAX_ASSIGN: ">?=",
	ROTATE_LEFT_ASSIGN: "<%=", ROTATE_RIGHT_ASSIGN: ">%=",
	AND_ASSIGN: "&=", OR_ASSIGN: "|=", XOR_ASSIGN: "^=",
	SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=", USHR_ASSIGN: ">>>=",

	EQ: "==", STRICT_EQ: "===", NE: "!=", STRICT_NE: "!==",
	LT: "<", LE: "<=", GT: ">", GE: ">=",
	SHL: "<<", SHR: ">>", USHR: ">>>",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~",
	LOGICAL_AND: "&&", LOGICAL_OR: "||", LOGICAL_XOR: "^^", NOT: "!",
	INCREMENT: "++", DECREMENT: "--", SCOPE: "::",

	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", COMMA: ",", SEMICOLON: ";", COLON: ":",
	DOT: ".", RANGE: "..", REST: "...", QUESTION: "?", ARROW: "=>", AT: "@",

	VAR: "var", CONST: "const", FUNCTION: "function", CLASS: "class",
	INTERFACE: "interface", ENUM: "enum", PACKAGE: "package", PROGRAM: "program",
	IMPORT: "import", EXTENDS: "extends", IMPLEMENTS: "implements",
	RETURN: "return", IF: "if", ELSE: "else", FOR: "for", WHILE: "while",
	DO: "do", SWITCH: "switch", CASE: "case", DEFAULT: "default", WITH: "with",
	BREAK: "break", CONTINUE: "continue", GOTO: "goto", LABEL: "label",
	TRY: "try", CATCH: "catch", FINALLY: "finally", THROW: "throw",
	NEW: "new", DELETE: "delete", TYPEOF: "typeof", INSTANCEOF: "instanceof",
	IN: "in", IS: "is", AS: "as", VOID: "void", USE: "use", NAMESPACE: "namespace",
	REQUIRE: "require", ENSURE: "ensure", MOD: "mod", GET: "get", SET: "set",
	SYNCHRONIZED: "synchronized",
}

// String returns the canonical spelling of t, used both for debug output
// and as the stored spelling of operator-overload function names (spec
// §4.2, "Operator-overload function names").
func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsOperator reports whether t is one of the operator tokens (spec's
// "full set of arithmetic, bitwise, logical, comparison, assignment,
// extended ops").
func (t Type) IsOperator() bool { return t > opStart && t < opEnd }

// IsLiteral reports whether t is a literal-kind token.
func (t Type) IsLiteral() bool { return t > literalStart && t < literalEnd }

// IsKeyword reports whether t is a reserved keyword token.
func (t Type) IsKeyword() bool { return t > keywordStart && t < keywordEnd }

// Keywords maps the reserved-word spelling to its token type. Attribute
// keywords (public/private/.../volatile) are intentionally NOT reserved
// words at the lexer level: spec §4.2 treats them as ordinary
// identifiers that the parser recognizes contextually while accumulating
// an ATTRIBUTES node, so they are looked up by the parser, not the
// lexer.
var Keywords = map[string]Type{
	"var": VAR, "const": CONST, "function": FUNCTION, "class": CLASS,
	"interface": INTERFACE, "enum": ENUM, "package": PACKAGE, "program": PROGRAM,
	"import": IMPORT, "extends": EXTENDS, "implements": IMPLEMENTS,
	"return": RETURN, "if": IF, "else": ELSE, "for": FOR, "while": WHILE,
	"do": DO, "switch": SWITCH, "case": CASE, "default": DEFAULT, "with": WITH,
	"break": BREAK, "continue": CONTINUE, "goto": GOTO, "label": LABEL,
	"try": TRY, "catch": CATCH, "finally": FINALLY, "throw": THROW,
	"new": NEW, "delete": DELETE, "typeof": TYPEOF, "instanceof": INSTANCEOF,
	"in": IN, "is": IS, "as": AS, "void": VOID, "use": USE, "namespace": NAMESPACE,
	"require": REQUIRE, "ensure": ENSURE, "mod": MOD, "get": GET, "set": SET,
	"synchronized": SYNCHRONIZED,
	"true": TRUE, "false": FALSE, "null": NULL, "undefined": UNDEFINED,
}

// LookupIdent classifies an identifier-shaped lexeme as a keyword token
// if it matches a reserved word, or returns IDENTIFIER otherwise.
func LookupIdent(ident string) Type {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}
