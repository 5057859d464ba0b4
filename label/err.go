package label

import (
	"errors"

	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

var (
	// ErrLabel is the class of all label definition errors.
	ErrLabel = errors.New(f("label error"))
)

// ErrLabelDuplicate is returned when a label name is defined twice.
type ErrLabelDuplicate struct {
	Name        string
	LineNo      int
	PriorLineNo int
}

func (err *ErrLabelDuplicate) Error() string {
	return f("line %d label <%v> already used on line %d", err.LineNo, err.Name, err.PriorLineNo)
}

func (err *ErrLabelDuplicate) Unwrap() error {
	return ErrLabel
}

// ErrGlobalLabelMissing is returned for a local label with no enclosing
// global label.
type ErrGlobalLabelMissing string

func (err ErrGlobalLabelMissing) Error() string {
	return f("global label not found for %v", string(err))
}

func (err ErrGlobalLabelMissing) Unwrap() []error {
	return []error{ErrLabel, expr.ErrUnresolved}
}
