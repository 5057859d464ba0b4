package opcode

import (
	"errors"

	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

var (
	// ErrOpcode is the class of all opcode table errors.
	ErrOpcode = errors.New(f("opcode error"))
)

// ErrOpcodeNotFound is returned for an addressing mode the mnemonic does
// not support.
type ErrOpcodeNotFound struct {
	Mnemonic Mnemonic
	Mode     Mode
}

func (err *ErrOpcodeNotFound) Error() string {
	return f("opcode not found: %v %v", err.Mnemonic.String(), err.Mode.String())
}

func (err *ErrOpcodeNotFound) Unwrap() error {
	return ErrOpcode
}
