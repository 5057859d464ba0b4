package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/label"
	"github.com/ezrec/sym6502/opcode"
	"github.com/ezrec/sym6502/source"
)

func testTable() *label.Table {
	tbl := &label.Table{}
	for _, entry := range [](struct {
		name string
		addr expr.Address
	}){
		{"zp", expr.ZeroPage(0x12)},
		{"ptr", expr.ZeroPage(0xfb)},
		{"screen", expr.Full(0x0400)},
		{"MAIN", expr.Full(0x8000)},
		{".loop", expr.Full(0x8002)},
	} {
		name, err := tbl.Define(entry.name, 1, 0)
		if err != nil {
			panic(err)
		}
		if err = tbl.Fix(name, entry.addr); err != nil {
			panic(err)
		}
	}
	return tbl
}

func decode(text string, labels expr.Labels) (opcode.Instruction, error) {
	st, err := source.ParseToken(text)
	if err != nil {
		return opcode.Instruction{}, err
	}
	return Decode(st, labels)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()

	table := [](struct {
		text     string
		mnemonic opcode.Mnemonic
		mode     opcode.Mode
		value    opcode.Value
	}){
		// Loads
		{"X=$12", opcode.LDX, opcode.Immediate, opcode.Byte(0x12)},
		{"X=31", opcode.LDX, opcode.Immediate, opcode.Byte(31)},
		{"X=zp", opcode.LDX, opcode.Immediate, opcode.Byte(0x12)},
		{"X=($1F)", opcode.LDX, opcode.ZeroPage, opcode.Byte(0x1f)},
		{"X=(31)", opcode.LDX, opcode.ZeroPage, opcode.Byte(31)},
		{"X=(zp)", opcode.LDX, opcode.ZeroPage, opcode.Byte(0x12)},
		{"X=(screen)", opcode.LDX, opcode.Absolute, opcode.Word(0x0400)},
		{"X=($0012)", opcode.LDX, opcode.Absolute, opcode.Word(0x0012)},
		{"X=(zp+Y)", opcode.LDX, opcode.ZeroPageY, opcode.Byte(0x12)},
		{"X=(screen+Y)", opcode.LDX, opcode.AbsoluteY, opcode.Word(0x0400)},
		{"Y=(zp+X)", opcode.LDY, opcode.ZeroPageX, opcode.Byte(0x12)},
		{"Y=(screen+1+X)", opcode.LDY, opcode.AbsoluteX, opcode.Word(0x0401)},
		{"A=(zp+1)", opcode.LDA, opcode.ZeroPage, opcode.Byte(0x13)},
		{"A=[ptr+X]", opcode.LDA, opcode.IndirectX, opcode.Byte(0xfb)},
		{"A=[ptr]+Y", opcode.LDA, opcode.IndirectY, opcode.Byte(0xfb)},
		{"A=<screen", opcode.LDA, opcode.Immediate, opcode.Byte(0x00)},
		{"A=>screen", opcode.LDA, opcode.Immediate, opcode.Byte(0x04)},
		{"A=(screen+Y)", opcode.LDA, opcode.AbsoluteY, opcode.Word(0x0400)},
		// Increments and transfers
		{"X=+", opcode.INX, opcode.Implied, opcode.None{}},
		{"X=X+1", opcode.INX, opcode.Implied, opcode.None{}},
		{"Y=-", opcode.DEY, opcode.Implied, opcode.None{}},
		{"Y=Y-1", opcode.DEY, opcode.Implied, opcode.None{}},
		{"X=A", opcode.TAX, opcode.Implied, opcode.None{}},
		{"Y=A", opcode.TAY, opcode.Implied, opcode.None{}},
		{"A=X", opcode.TXA, opcode.Implied, opcode.None{}},
		{"A=Y", opcode.TYA, opcode.Implied, opcode.None{}},
		{"X=S", opcode.TSX, opcode.Implied, opcode.None{}},
		{"S=X", opcode.TXS, opcode.Implied, opcode.None{}},
		// Arithmetic and logic
		{"A=AC+1", opcode.ADC, opcode.Immediate, opcode.Byte(1)},
		{"A=AC+(zp)", opcode.ADC, opcode.ZeroPage, opcode.Byte(0x12)},
		{"A=AC+(screen+Y)", opcode.ADC, opcode.AbsoluteY, opcode.Word(0x0400)},
		{"A=AC-[ptr]+Y", opcode.SBC, opcode.IndirectY, opcode.Byte(0xfb)},
		{"A=A|$80", opcode.ORA, opcode.Immediate, opcode.Byte(0x80)},
		{"A=A&(zp)", opcode.AND, opcode.ZeroPage, opcode.Byte(0x12)},
		{"A=A^$FF", opcode.EOR, opcode.Immediate, opcode.Byte(0xff)},
		{"A=<", opcode.ASL, opcode.Accumulator, opcode.None{}},
		{"A=>", opcode.LSR, opcode.Accumulator, opcode.None{}},
		{"A=(", opcode.ROL, opcode.Accumulator, opcode.None{}},
		{"A=)", opcode.ROR, opcode.Accumulator, opcode.None{}},
		// Stack
		{"A=]", opcode.PLA, opcode.Implied, opcode.None{}},
		{"[=A", opcode.PHA, opcode.Implied, opcode.None{}},
		{"[=P", opcode.PHP, opcode.Implied, opcode.None{}},
		{"P=]", opcode.PLP, opcode.Implied, opcode.None{}},
		// Compare
		{"T=A-10", opcode.CMP, opcode.Immediate, opcode.Byte(10)},
		{"T=X-(zp)", opcode.CPX, opcode.ZeroPage, opcode.Byte(0x12)},
		{"T=Y-(screen)", opcode.CPY, opcode.Absolute, opcode.Word(0x0400)},
		{"T=A&(zp)", opcode.BIT, opcode.ZeroPage, opcode.Byte(0x12)},
		// Flags
		{"C=0", opcode.CLC, opcode.Implied, opcode.None{}},
		{"C=1", opcode.SEC, opcode.Implied, opcode.None{}},
		{"I=1", opcode.SEI, opcode.Implied, opcode.None{}},
		{"V=0", opcode.CLV, opcode.Implied, opcode.None{}},
		{"D=0", opcode.CLD, opcode.Implied, opcode.None{}},
		// Flow
		{"!=MAIN", opcode.JSR, opcode.Absolute, opcode.Word(0x8000)},
		{"!=$FFD2", opcode.JSR, opcode.Absolute, opcode.Word(0xffd2)},
		{"#=MAIN", opcode.JMP, opcode.Absolute, opcode.Word(0x8000)},
		{"#=[$FFFC]", opcode.JMP, opcode.Indirect, opcode.Word(0xfffc)},
		{"#=!", opcode.RTS, opcode.Implied, opcode.None{}},
		{"#=~", opcode.RTI, opcode.Implied, opcode.None{}},
		{`;=\,.loop`, opcode.BNE, opcode.Relative, opcode.UnresolvedLabel(".loop")},
		{";==,$8000", opcode.BEQ, opcode.Relative, opcode.UnresolvedRelative(0x8000)},
		{";=CS,MAIN", opcode.BCS, opcode.Relative, opcode.UnresolvedLabel("MAIN")},
		{";=<,MAIN", opcode.BCC, opcode.Relative, opcode.UnresolvedLabel("MAIN")},
		{";=-,MAIN", opcode.BMI, opcode.Relative, opcode.UnresolvedLabel("MAIN")},
		{";=PL,MAIN", opcode.BPL, opcode.Relative, opcode.UnresolvedLabel("MAIN")},
		{";=_,MAIN", opcode.BVC, opcode.Relative, opcode.UnresolvedLabel("MAIN")},
		{";=^,MAIN", opcode.BVS, opcode.Relative, opcode.UnresolvedLabel("MAIN")},
		// Stores and memory operations
		{"(zp)=A", opcode.STA, opcode.ZeroPage, opcode.Byte(0x12)},
		{"(screen+X)=A", opcode.STA, opcode.AbsoluteX, opcode.Word(0x0400)},
		{"[ptr]+Y=A", opcode.STA, opcode.IndirectY, opcode.Byte(0xfb)},
		{"[ptr+X]=A", opcode.STA, opcode.IndirectX, opcode.Byte(0xfb)},
		{"(zp+Y)=X", opcode.STX, opcode.ZeroPageY, opcode.Byte(0x12)},
		{"(screen)=Y", opcode.STY, opcode.Absolute, opcode.Word(0x0400)},
		{"(zp)=+", opcode.INC, opcode.ZeroPage, opcode.Byte(0x12)},
		{"(screen+X)=-", opcode.DEC, opcode.AbsoluteX, opcode.Word(0x0400)},
		{"(zp)=<", opcode.ASL, opcode.ZeroPage, opcode.Byte(0x12)},
		{"(screen)=)", opcode.ROR, opcode.Absolute, opcode.Word(0x0400)},
		{"<=A", opcode.ASL, opcode.Accumulator, opcode.None{}},
		{">=(zp)", opcode.LSR, opcode.ZeroPage, opcode.Byte(0x12)},
	}

	for _, entry := range table {
		in, err := decode(entry.text, tbl)
		if !assert.NoError(err, entry.text) {
			continue
		}
		assert.Equal(opcode.Instruction{Mnemonic: entry.mnemonic, Mode: entry.mode, Value: entry.value}, in, entry.text)
	}
}

func TestDecodeResolvedKind(t *testing.T) {
	assert := assert.New(t)

	zp := &label.Table{}
	name, _ := zp.Define("label", 1, 0)
	assert.NoError(zp.Fix(name, expr.ZeroPage(0x40)))

	full := &label.Table{}
	_, _ = full.Define("label", 1, 0x1234)

	in, err := decode("X=(label)", zp)
	assert.NoError(err)
	assert.Equal(opcode.ZeroPage, in.Mode)
	assert.Equal(2, in.Length())

	in, err = decode("X=(label)", full)
	assert.NoError(err)
	assert.Equal(opcode.Absolute, in.Mode)
	assert.Equal(3, in.Length())
}

func TestDecodeForward(t *testing.T) {
	assert := assert.New(t)

	tbl := &label.Table{}

	table := [](struct {
		text  string
		mode  opcode.Mode
		value opcode.Value
	}){
		{"!=later", opcode.Absolute, opcode.UnresolvedLabel("later")},
		{"X=(later)", opcode.Absolute, opcode.UnresolvedLabel("later")},
		{"A=(later+2+X)", opcode.AbsoluteX, opcode.UnresolvedExpr{Expr: expr.Binary(expr.Ident("later"), expr.Add, expr.Decimal(2))}},
		{"A=<later", opcode.Immediate, opcode.UnresolvedExpr{Expr: expr.LoByte{X: expr.Ident("later")}}},
		{"A=[later]+Y", opcode.IndirectY, opcode.UnresolvedLabel("later")},
		{"(later+Y)=X", opcode.ZeroPageY, opcode.UnresolvedLabel("later")},
		{";=NE,later", opcode.Relative, opcode.UnresolvedLabel("later")},
	}

	for _, entry := range table {
		in, err := decode(entry.text, tbl)
		if !assert.NoError(err, entry.text) {
			continue
		}
		assert.Equal(entry.mode, in.Mode, entry.text)
		assert.Equal(entry.value, in.Value, entry.text)
	}
}

func TestDecodeError(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()

	for _, text := range []string{
		"A=$1234",
		"X=[ptr+X]",
		"A=A+1",
		"C=2",
		"V=1",
		"T=A*2",
		";=X>10",
		";=?,MAIN",
		"#=$12+X",
		"(zp)=~",
		"Q=1",
		"X=later",
		"(screen+Y)=X",
	} {
		_, err := decode(text, tbl)
		assert.Equal(ErrDecode{Statement: text}, err, text)
		assert.True(errors.Is(err, ErrDecode{}), text)
		assert.Contains(err.Error(), text)
	}
}
