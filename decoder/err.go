package decoder

import (
	"errors"

	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

// errNoMatch is the recoverable failure of a single matcher.
var errNoMatch = errors.New(f("no match"))

// ErrDecode names a statement that no decoder alternative matched.
type ErrDecode struct {
	Statement string
}

func (err ErrDecode) Error() string {
	return f("bad expression: %v", err.Statement)
}

func (err ErrDecode) Is(target error) (ok bool) {
	_, ok = target.(ErrDecode)
	return
}
