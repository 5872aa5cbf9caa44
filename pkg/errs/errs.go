// Package errs collects the sentinel error kinds shared by the Assembler and the
// Jack front end (spec §7). Every hard failure in either pipeline boils down to one
// of these, wrapped with '%w' together with whatever position/token context the
// detecting call site has available, so callers can still `errors.Is` across the
// package boundary instead of pattern-matching on message text.
package errs

import "errors"

var (
	// ErrInvalidIdentifier: identifier begins with a digit.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrUnterminatedString: end of line reached inside a string literal.
	ErrUnterminatedString = errors.New("unterminated string literal")
	// ErrUnknownMnemonic: comp/dest/jump mnemonic not present in its translation table.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrDuplicateLabel: a label is declared more than once in the same assembly input.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrUnexpectedToken: parser encountered a token disallowed by the grammar at that point.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUnexpectedEndOfInput: token stream exhausted mid-production.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	// ErrIO: propagated from the external input/output stream.
	ErrIO = errors.New("i/o error")
)
