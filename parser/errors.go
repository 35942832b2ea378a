package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrGrammarMismatch indicates the tokens do not reduce to the root rule.
	ErrGrammarMismatch = errors.New("grammar mismatch")

	// ErrArityMismatch indicates an operator matched the wrong number of arguments.
	ErrArityMismatch = errors.New("incorrect number of arguments")

	// ErrUnsupportedForm indicates an expression shape that cannot be handled.
	ErrUnsupportedForm = errors.New("unsupported form")

	// ErrDivisionByZero indicates a zero divisor during evaluation.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrMultipleVariables indicates more than one variable letter in an equation.
	ErrMultipleVariables = errors.New("multiple variables")

	// ErrUnknownVariable indicates a letter other than the configured variable.
	ErrUnknownVariable = errors.New("unknown variable")
)

// SyntaxError locates a failure in the equation text.
type SyntaxError struct {
	Offset int    // byte offset of the offending token
	Text   string // offending token text; empty at end of input
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%v: unexpected end of equation", e.Err)
	}
	return fmt.Sprintf("%v at offset %d: unexpected %q", e.Err, e.Offset, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
