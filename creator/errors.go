package creator

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the registry, the interpreter and the argument
// shape guards. Callers match them with errors.Is.
var (
	// ErrInvalidKey reports a name that lacks the namespace separator.
	ErrInvalidKey = errors.New("invalid key: missing namespace separator")
	// ErrNamespaceNotFound reports an unknown namespace.
	ErrNamespaceNotFound = errors.New("namespace not found")
	// ErrSymbolNotFound reports a namespace that exists but has no such symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrInvalidPlaceholderName reports delimited text whose inner name is not
	// a valid identifier.
	ErrInvalidPlaceholderName = errors.New("invalid placeholder name")
	// ErrMalformedSpec reports an instantiation spec whose argument could not
	// be interpreted.
	ErrMalformedSpec = errors.New("malformed instantiation spec")
	// ErrArgShape reports a factory reading arguments through the wrong shape.
	ErrArgShape = errors.New("unexpected argument shape")
	// ErrNotRegistered reports a name with no registered factory.
	ErrNotRegistered = errors.New("not registered")
)

// ConstructionError wraps a failure raised by a factory during instantiation.
// Symbol is the resolved name and Args the interpreted argument handed to the
// factory.
type ConstructionError struct {
	Symbol string
	Args   any
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct %s: %v", e.Symbol, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
