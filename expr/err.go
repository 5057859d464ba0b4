package expr

import (
	"errors"
	"fmt"

	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

var (
	// ErrSyntax is the class of all malformed operand errors.
	ErrSyntax = errors.New(f("syntax error"))

	// ErrUnresolved is the class of label references that cannot be
	// resolved yet.
	ErrUnresolved = errors.New(f("unresolved label"))

	ErrDivideByZero    = fmt.Errorf("%w: %v", ErrSyntax, f("division by zero"))
	ErrNotAnAddress    = fmt.Errorf("%w: %v", ErrSyntax, f("expression is not an address"))
	ErrNotEvaluable    = fmt.Errorf("%w: %v", ErrSyntax, f("expression cannot be evaluated"))
	ErrAddressOperator = fmt.Errorf("%w: %v", ErrSyntax, f("operator not allowed between addresses"))
)

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("'%v' is not a valid expression", string(err))
}

func (err ErrParseExpression) Unwrap() error {
	return ErrSyntax
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrSyntax
}

type ErrParseString string

func (err ErrParseString) Error() string {
	return f("unterminated string in '%v'", string(err))
}

func (err ErrParseString) Unwrap() error {
	return ErrSyntax
}

// ErrLabelMissing is returned when an identifier has no label entry.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label not found: %v", string(err))
}

func (err ErrLabelMissing) Unwrap() error {
	return ErrUnresolved
}

// ErrOperator reports an operator that cannot combine two addresses.
type ErrOperator struct {
	Left, Right Address
	Op          Operator
}

func (err ErrOperator) Error() string {
	return f("cannot %v %v and %v", err.Op.String(), err.Left.String(), err.Right.String())
}

func (err ErrOperator) Unwrap() error {
	return ErrAddressOperator
}
