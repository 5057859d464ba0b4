package assembler

import (
	"errors"

	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

// ErrProgram is the class of all program counter and pseudo command errors.
var ErrProgram = errors.New(f("program error"))

// ErrStatus is a program error without further detail.
type ErrStatus string

func (err ErrStatus) Error() string {
	return string(err)
}

func (err ErrStatus) Unwrap() error {
	return ErrProgram
}

var (
	ErrAddressNotSet   = ErrStatus(f("address not set"))
	ErrAddressOverflow = ErrStatus(f("address overflow"))
	ErrLabelDefLabel   = ErrStatus(f("label def need label"))
	ErrDataInvalid     = ErrStatus(f("invalid data command"))
	ErrFillInvalid     = ErrStatus(f("invalid fill command"))
	ErrSizeChanged     = ErrStatus(f("statement size changed between passes"))
)

// ErrBranchRange is a branch target too far from the branch.
type ErrBranchRange struct {
	Address uint16 // Address of the branch.
	Target  uint16
}

func (err *ErrBranchRange) Error() string {
	return f("branch from $%04X to $%04X out of range", err.Address, err.Target)
}

func (err *ErrBranchRange) Unwrap() error {
	return ErrProgram
}

// ErrByteRange is a value that does not fit its single byte.
type ErrByteRange struct {
	Expr  string
	Value uint16
}

func (err *ErrByteRange) Error() string {
	return f("%v is $%04X, not a byte", err.Expr, err.Value)
}

func (err *ErrByteRange) Unwrap() error {
	return ErrProgram
}
