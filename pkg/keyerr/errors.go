// Package keyerr classifies failures raised by key derivation and address
// encoding.
//
// Every failure is terminal for the operation that raised it: the input
// (seed, path, key, prefix) has to change before the call can succeed, so
// nothing in this module retries.
package keyerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind uint8

const (
	// KindUnknown is never produced by this module.
	KindUnknown Kind = iota
	// KindMnemonic: invalid phrase word or checksum.
	KindMnemonic
	// KindCurve: scalar out of range, zero scalar, invalid point encoding.
	KindCurve
	// KindPath: malformed derivation path, or a path that cannot be
	// followed from the given key.
	KindPath
	// KindBech32: invalid human-readable prefix, charset or length.
	KindBech32
	// KindSeed: seed outside the 16..64 byte range.
	KindSeed
	// KindAddress: textual address or extended key that fails to parse.
	KindAddress
)

// String returns the short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMnemonic:
		return "mnemonic"
	case KindCurve:
		return "curve"
	case KindPath:
		return "path"
	case KindBech32:
		return "bech32"
	case KindSeed:
		return "seed"
	case KindAddress:
		return "address"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrMnemonic = &Error{Kind: KindMnemonic}
	ErrCurve    = &Error{Kind: KindCurve}
	ErrPath     = &Error{Kind: KindPath}
	ErrBech32   = &Error{Kind: KindBech32}
	ErrSeed     = &Error{Kind: KindSeed}
	ErrAddress  = &Error{Kind: KindAddress}
)

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "parse path".
	Op  string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	default:
		return e.Kind.String() + " error"
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a kind sentinel (or *Error) of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// New builds a classified error from a message.
func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

// Newf builds a classified error from a format string. %w is honored.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err. Returns nil if err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Mnemonic classifies err as a mnemonic failure.
func Mnemonic(op string, err error) error { return Wrap(KindMnemonic, op, err) }

// Curve classifies err as a curve failure.
func Curve(op string, err error) error { return Wrap(KindCurve, op, err) }

// Path classifies err as a derivation path failure.
func Path(op string, err error) error { return Wrap(KindPath, op, err) }

// Bech32 classifies err as a bech32 failure.
func Bech32(op string, err error) error { return Wrap(KindBech32, op, err) }

// KindOf returns the kind of the first classified error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
