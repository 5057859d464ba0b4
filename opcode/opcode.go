// Package opcode holds the NMOS 6502 opcode table, and the decoded
// instruction form produced by the statement decoder.
package opcode

// Mnemonic is a 6502 instruction mnemonic.
type Mnemonic int

//go:generate go tool stringer -type=Mnemonic
const (
	ADC = Mnemonic(iota)
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

// Mode is an addressing mode.
type Mode int

//go:generate go tool stringer -type=Mode
const (
	Implied = Mode(iota)
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

// Length is the number of bytes of an instruction in this mode, opcode
// byte included.
func (mode Mode) Length() int {
	switch mode {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		return 2
	}
}

// Widen returns the absolute form of a zero page mode.
func (mode Mode) Widen() (wide Mode, ok bool) {
	switch mode {
	case ZeroPage:
		return Absolute, true
	case ZeroPageX:
		return AbsoluteX, true
	case ZeroPageY:
		return AbsoluteY, true
	}
	return mode, false
}

type key struct {
	mnemonic Mnemonic
	mode     Mode
}

// table is built from groups at init.
var table = map[key]byte{}

type encoding struct {
	mode Mode
	code byte
}

// groups lists the legal addressing modes of every mnemonic.
var groups = map[Mnemonic][]encoding{
	ADC: {{Immediate, 0x69}, {ZeroPage, 0x65}, {ZeroPageX, 0x75}, {Absolute, 0x6d}, {AbsoluteX, 0x7d}, {AbsoluteY, 0x79}, {IndirectX, 0x61}, {IndirectY, 0x71}},
	AND: {{Immediate, 0x29}, {ZeroPage, 0x25}, {ZeroPageX, 0x35}, {Absolute, 0x2d}, {AbsoluteX, 0x3d}, {AbsoluteY, 0x39}, {IndirectX, 0x21}, {IndirectY, 0x31}},
	CMP: {{Immediate, 0xc9}, {ZeroPage, 0xc5}, {ZeroPageX, 0xd5}, {Absolute, 0xcd}, {AbsoluteX, 0xdd}, {AbsoluteY, 0xd9}, {IndirectX, 0xc1}, {IndirectY, 0xd1}},
	EOR: {{Immediate, 0x49}, {ZeroPage, 0x45}, {ZeroPageX, 0x55}, {Absolute, 0x4d}, {AbsoluteX, 0x5d}, {AbsoluteY, 0x59}, {IndirectX, 0x41}, {IndirectY, 0x51}},
	LDA: {{Immediate, 0xa9}, {ZeroPage, 0xa5}, {ZeroPageX, 0xb5}, {Absolute, 0xad}, {AbsoluteX, 0xbd}, {AbsoluteY, 0xb9}, {IndirectX, 0xa1}, {IndirectY, 0xb1}},
	ORA: {{Immediate, 0x09}, {ZeroPage, 0x05}, {ZeroPageX, 0x15}, {Absolute, 0x0d}, {AbsoluteX, 0x1d}, {AbsoluteY, 0x19}, {IndirectX, 0x01}, {IndirectY, 0x11}},
	SBC: {{Immediate, 0xe9}, {ZeroPage, 0xe5}, {ZeroPageX, 0xf5}, {Absolute, 0xed}, {AbsoluteX, 0xfd}, {AbsoluteY, 0xf9}, {IndirectX, 0xe1}, {IndirectY, 0xf1}},
	STA: {{ZeroPage, 0x85}, {ZeroPageX, 0x95}, {Absolute, 0x8d}, {AbsoluteX, 0x9d}, {AbsoluteY, 0x99}, {IndirectX, 0x81}, {IndirectY, 0x91}},

	ASL: {{Accumulator, 0x0a}, {ZeroPage, 0x06}, {ZeroPageX, 0x16}, {Absolute, 0x0e}, {AbsoluteX, 0x1e}},
	LSR: {{Accumulator, 0x4a}, {ZeroPage, 0x46}, {ZeroPageX, 0x56}, {Absolute, 0x4e}, {AbsoluteX, 0x5e}},
	ROL: {{Accumulator, 0x2a}, {ZeroPage, 0x26}, {ZeroPageX, 0x36}, {Absolute, 0x2e}, {AbsoluteX, 0x3e}},
	ROR: {{Accumulator, 0x6a}, {ZeroPage, 0x66}, {ZeroPageX, 0x76}, {Absolute, 0x6e}, {AbsoluteX, 0x7e}},
	DEC: {{ZeroPage, 0xc6}, {ZeroPageX, 0xd6}, {Absolute, 0xce}, {AbsoluteX, 0xde}},
	INC: {{ZeroPage, 0xe6}, {ZeroPageX, 0xf6}, {Absolute, 0xee}, {AbsoluteX, 0xfe}},

	LDX: {{Immediate, 0xa2}, {ZeroPage, 0xa6}, {ZeroPageY, 0xb6}, {Absolute, 0xae}, {AbsoluteY, 0xbe}},
	LDY: {{Immediate, 0xa0}, {ZeroPage, 0xa4}, {ZeroPageX, 0xb4}, {Absolute, 0xac}, {AbsoluteX, 0xbc}},
	STX: {{ZeroPage, 0x86}, {ZeroPageY, 0x96}, {Absolute, 0x8e}},
	STY: {{ZeroPage, 0x84}, {ZeroPageX, 0x94}, {Absolute, 0x8c}},
	CPX: {{Immediate, 0xe0}, {ZeroPage, 0xe4}, {Absolute, 0xec}},
	CPY: {{Immediate, 0xc0}, {ZeroPage, 0xc4}, {Absolute, 0xcc}},
	BIT: {{ZeroPage, 0x24}, {Absolute, 0x2c}},

	JMP: {{Absolute, 0x4c}, {Indirect, 0x6c}},
	JSR: {{Absolute, 0x20}},

	BCC: {{Relative, 0x90}},
	BCS: {{Relative, 0xb0}},
	BEQ: {{Relative, 0xf0}},
	BMI: {{Relative, 0x30}},
	BNE: {{Relative, 0xd0}},
	BPL: {{Relative, 0x10}},
	BVC: {{Relative, 0x50}},
	BVS: {{Relative, 0x70}},

	BRK: {{Implied, 0x00}},
	CLC: {{Implied, 0x18}},
	CLD: {{Implied, 0xd8}},
	CLI: {{Implied, 0x58}},
	CLV: {{Implied, 0xb8}},
	DEX: {{Implied, 0xca}},
	DEY: {{Implied, 0x88}},
	INX: {{Implied, 0xe8}},
	INY: {{Implied, 0xc8}},
	NOP: {{Implied, 0xea}},
	PHA: {{Implied, 0x48}},
	PHP: {{Implied, 0x08}},
	PLA: {{Implied, 0x68}},
	PLP: {{Implied, 0x28}},
	RTI: {{Implied, 0x40}},
	RTS: {{Implied, 0x60}},
	SEC: {{Implied, 0x38}},
	SED: {{Implied, 0xf8}},
	SEI: {{Implied, 0x78}},
	TAX: {{Implied, 0xaa}},
	TAY: {{Implied, 0xa8}},
	TSX: {{Implied, 0xba}},
	TXA: {{Implied, 0x8a}},
	TXS: {{Implied, 0x9a}},
	TYA: {{Implied, 0x98}},
}

func init() {
	for mnemonic, encodings := range groups {
		for _, enc := range encodings {
			table[key{mnemonic, enc.mode}] = enc.code
		}
	}
}

// Lookup returns the opcode byte of a mnemonic in an addressing mode.
func Lookup(mnemonic Mnemonic, mode Mode) (code byte, err error) {
	code, ok := table[key{mnemonic, mode}]
	if !ok {
		err = &ErrOpcodeNotFound{Mnemonic: mnemonic, Mode: mode}
	}
	return
}

// Has returns true if the mnemonic supports the addressing mode.
func Has(mnemonic Mnemonic, mode Mode) bool {
	_, ok := table[key{mnemonic, mode}]
	return ok
}
