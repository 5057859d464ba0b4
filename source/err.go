package source

import (
	"errors"

	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

var (
	// ErrIo is the class of all source reading errors.
	ErrIo = errors.New(f("i/o error"))

	ErrEvalType  = errors.New(f("not an integer"))
	ErrEvalRange = errors.New(f("out of range $0000-$FFFF"))
)

// ErrToken is a statement token that is neither `command=operand` nor a
// single character.
type ErrToken string

func (err ErrToken) Error() string {
	return f("bad token '%v'", string(err))
}

func (err ErrToken) Unwrap() error {
	return expr.ErrSyntax
}

// ErrLine is a line with a malformed label.
type ErrLine string

func (err ErrLine) Error() string {
	return f("bad line '%v'", string(err))
}

func (err ErrLine) Unwrap() error {
	return expr.ErrSyntax
}

// ErrEval is a failed compile-time $(...) evaluation.
type ErrEval struct {
	Expr string
	Err  error
}

func (err *ErrEval) Error() string {
	return f("$(%v): %v", err.Expr, err.Err)
}

func (err *ErrEval) Unwrap() []error {
	return []error{expr.ErrSyntax, err.Err}
}

// ErrPredefine is a predefined constant that is not an integer.
type ErrPredefine struct {
	Name  string
	Value string
}

func (err *ErrPredefine) Error() string {
	return f("predefine %v=%v is not an integer", err.Name, err.Value)
}

func (err *ErrPredefine) Unwrap() error {
	return ErrEvalType
}

// ErrInclude is an include file that could not be read.
type ErrInclude struct {
	Name string
	Err  error
}

func (err *ErrInclude) Error() string {
	return f("include %v: %v", err.Name, err.Err)
}

func (err *ErrInclude) Unwrap() []error {
	return []error{ErrIo, err.Err}
}

// ErrIncludeCircular is a file that includes itself, directly or not.
type ErrIncludeCircular string

func (err ErrIncludeCircular) Error() string {
	return f("circular include of %v", string(err))
}

func (err ErrIncludeCircular) Unwrap() error {
	return ErrIo
}

// ErrSyntax attaches the source position to an error.
type ErrSyntax struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("%v:%d '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
