package value

import "fmt"

// ErrorKind is the fail-fast taxonomy every runtime failure falls into.
// Evaluation stops at the first error; the kind prefixes the message the
// caller sees.
type ErrorKind string

const (
	ErrParseVersion  ErrorKind = "ParseVersionError"
	ErrUndefinedName ErrorKind = "UndefinedNameError"
	ErrArity         ErrorKind = "ArityError"
	ErrType          ErrorKind = "TypeError"
	ErrShape         ErrorKind = "ShapeError"
	ErrDimensional   ErrorKind = "DimensionalError"
	ErrArithmetic    ErrorKind = "ArithmeticError"
	ErrControlFlow   ErrorKind = "ControlFlowError"
	ErrImport        ErrorKind = "ImportError"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func Errorf(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}
