package output

import (
	"github.com/ezrec/sym6502/source"
	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

// ErrWrite is a failure creating or writing an output file.
type ErrWrite struct {
	Name string
	Err  error
}

func (err *ErrWrite) Error() string {
	return f("can't write %v: %v", err.Name, err.Err)
}

func (err *ErrWrite) Unwrap() []error {
	return []error{source.ErrIo, err.Err}
}
