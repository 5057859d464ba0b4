package macro

import (
	"errors"

	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

var (
	// ErrMacro is the class of all malformed control construct errors.
	ErrMacro = errors.New(f("macro error"))
)

// ErrLoopUnmatched is a loop close `@=COND` without an open loop.
type ErrLoopUnmatched struct{}

func (err ErrLoopUnmatched) Error() string {
	return f("unmatch do loop")
}

func (err ErrLoopUnmatched) Unwrap() error {
	return ErrMacro
}

// ErrCondition is a condition that is not a comparison.
type ErrCondition string

func (err ErrCondition) Error() string {
	return f("invalid condition '%v'", string(err))
}

func (err ErrCondition) Unwrap() error {
	return ErrMacro
}

// ErrLoopUnclosed is a do loop still open at the end of the source.
type ErrLoopUnclosed struct {
	Label  string
	LineNo int
}

func (err *ErrLoopUnclosed) Error() string {
	return f("unclosed do loop %v from line %d", err.Label, err.LineNo)
}

func (err *ErrLoopUnclosed) Unwrap() error {
	return ErrMacro
}
