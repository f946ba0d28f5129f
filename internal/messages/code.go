package messages

// Code identifies the specific diagnostic, grouped by the taxonomy in
// spec §7. Code values are stable once published: downstream tooling
// may match on them.
type Code int

const (
	CodeNone Code = iota

	// --- Syntactic ---
	CodeUnexpectedToken
	CodeMissingDelimiter
	CodeMissingLabel
	CodeUnterminatedString
	CodeInvalidEscape

	// --- Declaration ---
	CodeDuplicateParameter
	CodeDuplicateFunctionSignature
	CodeDuplicateLabel
	CodeInvalidAttributeCombination
	CodeNativeWithBody
	CodeConstructorReturnsValue
	CodeFinalOverridden
	CodeUnnamedForwardEnum

	// --- Resolution ---
	CodeInaccessibleStatement
	CodeNameNotFound
	CodeAmbiguousOverload
	CodeVisibilityViolation
	CodeInstanceRequired
	CodeNotAClass
	CodeAbstractInstantiation
	CodeCircularAttributeVariable
	CodeCallOperatorNotImplemented // spec §9 open question: () via resolve_name

	// --- Pragma ---
	CodeUnknownPragma
	CodeBadPragmaArgument
	CodePrimaMismatch

	// --- Installation / IO ---
	CodeMissingResourceFile
	CodeInaccessibleScriptPath
	CodeDatabaseLoadFailure
	CodeDatabaseSaveFailure
	CodeModuleNotFound

	// --- Internal ---
	CodeInternalInvariant
)

var codeNames = map[Code]string{
	CodeNone:                       "none",
	CodeUnexpectedToken:            "unexpected-token",
	CodeMissingDelimiter:           "missing-delimiter",
	CodeMissingLabel:               "missing-label",
	CodeUnterminatedString:         "unterminated-string",
	CodeInvalidEscape:              "invalid-escape",
	CodeDuplicateParameter:         "duplicate-parameter",
	CodeDuplicateFunctionSignature: "duplicate-function-signature",
	CodeDuplicateLabel:             "duplicate-label",
	CodeInvalidAttributeCombination: "invalid-attribute-combination",
	CodeNativeWithBody:             "native-with-body",
	CodeConstructorReturnsValue:    "constructor-returns-value",
	CodeFinalOverridden:            "final-overridden",
	CodeUnnamedForwardEnum:         "unnamed-forward-enum",
	CodeInaccessibleStatement:      "inaccessible-statement",
	CodeNameNotFound:               "name-not-found",
	CodeAmbiguousOverload:          "ambiguous-overload",
	CodeVisibilityViolation:        "visibility-violation",
	CodeInstanceRequired:           "instance-required",
	CodeNotAClass:                  "not-a-class",
	CodeAbstractInstantiation:      "abstract-instantiation",
	CodeCircularAttributeVariable:  "circular-attribute-variable",
	CodeCallOperatorNotImplemented: "call-operator-not-implemented",
	CodeUnknownPragma:              "unknown-pragma",
	CodeBadPragmaArgument:          "bad-pragma-argument",
	CodePrimaMismatch:              "prima-mismatch",
	CodeMissingResourceFile:        "missing-resource-file",
	CodeInaccessibleScriptPath:     "inaccessible-script-path",
	CodeDatabaseLoadFailure:        "database-load-failure",
	CodeDatabaseSaveFailure:        "database-save-failure",
	CodeModuleNotFound:             "module-not-found",
	CodeInternalInvariant:          "internal-invariant",
}

// String returns the kebab-case code name used in diagnostic output.
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown-code"
}
