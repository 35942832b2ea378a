package plot

import (
	"errors"
	"fmt"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/parser"
)

// ErrInternal wraps a panic recovered while compiling.
var ErrInternal = errors.New("internal error")

// Stage is the step of compilation that failed.
type Stage string

const (
	StageParse    Stage = "parse"
	StageClassify Stage = "classify"
)

// CompileError is the single error type returned by Compile.
type CompileError struct {
	Equation string
	Stage    Stage
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Equation, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Result is a compiled equation.
type Result struct {
	Equation string
	Root     parser.Node
	Locus    locus.Locus
}

// Compile parses and classifies an equation. Every failure, including a
// panic in either step, is returned as a *CompileError.
func Compile(equation string, opts ...parser.Option) (res *Result, err error) {
	stage := StageParse
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &CompileError{Equation: equation, Stage: stage, Err: fmt.Errorf("%w: %v", ErrInternal, r)}
		}
	}()

	root, err := parser.Parse(equation, opts...)
	if err != nil {
		return nil, &CompileError{Equation: equation, Stage: stage, Err: err}
	}

	stage = StageClassify
	loc, err := locus.Classify(root)
	if err != nil {
		return nil, &CompileError{Equation: equation, Stage: stage, Err: err}
	}
	return &Result{Equation: equation, Root: root, Locus: loc}, nil
}
