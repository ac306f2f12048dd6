// Package kernelerr centralizes the catalog's error taxonomy. Every kind
// shares the single *Error type, so callers use errors.As to recover it
// and read its Kind and other structured detail, and a package-level
// sentinel per kind makes errors.Is work for simple membership checks.
// There is no exception framework: errors propagate as ordinary returned
// values, wrapped with fmt.Errorf("...: %w") at call boundaries.
package kernelerr

import "fmt"

// Module tags which subsystem raised an error, surfaced alongside the
// message for diagnostics so every error carries a module tag.
type Module string

const (
	ModuleParser    Module = "parser"
	ModuleCatalog   Module = "catalog"
	ModuleFileID    Module = "fileid"
	ModuleLock      Module = "lock"
	ModuleLogFile   Module = "logfile"
	ModuleSerialize Module = "serialize"
)

// Kind enumerates the error taxonomy.
type Kind string

const (
	KindSQLSyntaxError        Kind = "SQLSyntaxError"
	KindInvalidIdentifier     Kind = "InvalidIdentifier"
	KindInvalidDefault        Kind = "InvalidDefault"
	KindNotSupported          Kind = "NotSupported"
	KindMetaDatabaseCorrupted Kind = "MetaDatabaseCorrupted"
	KindBadArgument           Kind = "BadArgument"
	KindLockTimeout           Kind = "LockTimeout"
	KindNumericValueOutOfRange Kind = "NumericValueOutOfRange"
)

// Error is the single error type for all kernel-taxonomy errors. Fields
// beyond Kind/Module/Message are optional detail used by specific call
// sites (e.g. Line for parser errors).
type Error struct {
	Kind    Kind
	Module  Module
	Message string
	File    string
	Line    int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s/%s] %s at line %d", e.Module, e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Module, e.Kind, e.Message)
}

// Is makes errors.Is(err, kernelerr.SQLSyntaxError) etc. work: against a
// target with an empty Message, two *Error values match by Kind alone, so
// callers can test "is this a syntax error" without caring about the
// message; a target with a Message also has to match that Message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" {
		return e.Kind == t.Kind && e.Message == t.Message
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is membership checks against a bare kind.
var (
	SQLSyntaxError        = &Error{Kind: KindSQLSyntaxError}
	InvalidIdentifier     = &Error{Kind: KindInvalidIdentifier}
	InvalidDefault        = &Error{Kind: KindInvalidDefault}
	NotSupported          = &Error{Kind: KindNotSupported}
	MetaDatabaseCorrupted = &Error{Kind: KindMetaDatabaseCorrupted}
	BadArgument           = &Error{Kind: KindBadArgument}
	LockTimeout           = &Error{Kind: KindLockTimeout}
	NumericValueOutOfRange = &Error{Kind: KindNumericValueOutOfRange}
)

// New constructs a taxonomy error.
func New(kind Kind, module Module, format string, args ...any) *Error {
	return &Error{Kind: kind, Module: module, Message: fmt.Sprintf(format, args...)}
}

// AtLine constructs a syntax error carrying a source line, matching the
// parser's "... at line N" message convention.
func AtLine(module Module, line int, format string, args ...any) *Error {
	return &Error{Kind: KindSQLSyntaxError, Module: module, Message: fmt.Sprintf(format, args...), Line: line}
}

// Recoverable reports whether the error kind leaves no catalog side
// effects and can be reported straight to the caller. MetaDatabaseCorrupted
// is the one fatal kind.
func (e *Error) Recoverable() bool {
	return e.Kind != KindMetaDatabaseCorrupted
}
