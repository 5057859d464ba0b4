package expr

import (
	"fmt"
)

// AddressKind tells whether an address fits the zero page.
type AddressKind int

const (
	AddressFull     = AddressKind(0) // 16 bit address
	AddressZeroPage = AddressKind(1) // $00-$FF
)

// Address is a resolved address, remembering whether it is a zero page
// address. Zero page addresses select the shorter addressing modes.
type Address struct {
	Kind  AddressKind
	Value uint16
}

// Full returns a 16 bit address.
func Full(value uint16) Address {
	return Address{Kind: AddressFull, Value: value}
}

// ZeroPage returns a zero page address.
func ZeroPage(value uint8) Address {
	return Address{Kind: AddressZeroPage, Value: uint16(value)}
}

// IsZeroPage returns true for zero page addresses.
func (a Address) IsZeroPage() bool {
	return a.Kind == AddressZeroPage
}

// Byte returns the low byte of the address.
func (a Address) Byte() uint8 {
	return uint8(a.Value & 0xff)
}

func (a Address) String() string {
	if a.IsZeroPage() {
		return fmt.Sprintf("ZeroPage($%02X)", a.Value)
	}
	return fmt.Sprintf("Full($%04X)", a.Value)
}

// CalculateWith combines two addresses. Two zero page addresses wrap within
// the zero page; any full address promotes the result to a full address.
func (a Address) CalculateWith(other Address, op Operator) (result Address, err error) {
	if a.IsZeroPage() && other.IsZeroPage() {
		var value uint16
		value, err = arithmetic(a.Value, other.Value, op)
		if err != nil {
			err = a.opError(other, op, err)
			return
		}
		result = ZeroPage(uint8(value))
		return
	}

	value, err := arithmetic(a.Value, other.Value, op)
	if err != nil {
		err = a.opError(other, op, err)
		return
	}
	result = Full(value)
	return
}

func (a Address) opError(other Address, op Operator, err error) error {
	if err == ErrDivideByZero {
		return err
	}
	return ErrOperator{Left: a, Right: other, Op: op}
}

// arithmetic applies an arithmetic operator with 16 bit wrapping.
func arithmetic(a, b uint16, op Operator) (value uint16, err error) {
	switch op {
	case Add:
		value = a + b
	case Sub:
		value = a - b
	case Mul:
		value = a * b
	case Div:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		value = a / b
	case And:
		value = a & b
	case Or:
		value = a | b
	case Xor:
		value = a ^ b
	default:
		err = ErrAddressOperator
	}
	return
}

// Labels resolves label names to addresses. A name with no entry fails
// with an error in the ErrUnresolved class.
type Labels interface {
	Lookup(name string) (addr Address, err error)
}

func lookup(labels Labels, name string) (addr Address, err error) {
	if labels == nil {
		err = ErrLabelMissing(name)
		return
	}
	return labels.Lookup(name)
}

// CalculateAddress resolves literals, labels and arithmetic into an Address.
func CalculateAddress(e Expr, labels Labels) (addr Address, err error) {
	switch e := e.(type) {
	case Decimal:
		if e <= 0xff {
			addr = ZeroPage(uint8(e))
		} else {
			addr = Full(uint16(e))
		}
	case Byte:
		addr = ZeroPage(uint8(e))
	case Word:
		addr = Full(uint16(e))
	case Ident:
		addr, err = lookup(labels, string(e))
	case Paren:
		addr, err = CalculateAddress(e.X, labels)
	case HiByte:
		addr, err = CalculateAddress(e.X, labels)
		addr = ZeroPage(uint8(addr.Value >> 8))
	case LoByte:
		addr, err = CalculateAddress(e.X, labels)
		addr = ZeroPage(addr.Byte())
	case BinOp:
		var left, right Address
		left, err = CalculateAddress(e.Left, labels)
		if err != nil {
			return
		}
		right, err = CalculateAddress(e.Right, labels)
		if err != nil {
			return
		}
		addr, err = left.CalculateWith(right, e.Op)
	default:
		err = ErrNotAnAddress
	}

	return
}

// Evaluate computes the numeric value of an expression. `*` is the current
// program counter, and comparisons evaluate to 0 or 1.
func Evaluate(e Expr, labels Labels, pc uint16) (value uint16, err error) {
	switch e := e.(type) {
	case Decimal:
		value = uint16(e)
	case Byte:
		value = uint16(e)
	case Word:
		value = uint16(e)
	case Ident:
		var addr Address
		addr, err = lookup(labels, string(e))
		value = addr.Value
	case SysOp:
		if e != "*" {
			err = ErrNotEvaluable
			return
		}
		value = pc
	case Paren:
		value, err = Evaluate(e.X, labels, pc)
	case HiByte:
		value, err = Evaluate(e.X, labels, pc)
		value >>= 8
	case LoByte:
		value, err = Evaluate(e.X, labels, pc)
		value &= 0xff
	case BinOp:
		var left, right uint16
		left, err = Evaluate(e.Left, labels, pc)
		if err != nil {
			return
		}
		right, err = Evaluate(e.Right, labels, pc)
		if err != nil {
			return
		}
		if e.Op.IsComparison() {
			value = compare(left, right, e.Op)
			return
		}
		value, err = arithmetic(left, right, e.Op)
		if err == ErrAddressOperator {
			err = ErrNotEvaluable
		}
	default:
		err = ErrNotEvaluable
	}

	return
}

func compare(a, b uint16, op Operator) uint16 {
	var ok bool
	switch op {
	case Greater:
		ok = a > b
	case Less:
		ok = a < b
	case Equal:
		ok = a == b
	case NotEqual:
		ok = a != b
	}
	if ok {
		return 1
	}
	return 0
}
