package expr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		expr Expr
	}){
		{"", Empty{}},
		{"1", Decimal(1)},
		{"65535", Decimal(65535)},
		{"$10", Byte(0x10)},
		{"$F", Byte(0x0f)},
		{"$80FF", Word(0x80ff)},
		{"$100", Word(0x100)},
		{`"hello world"`, String("hello world")},
		{`"say \"hi\""`, String(`say "hi"`)},
		{"label", Ident("label")},
		{".loop", Ident(".loop")},
		{"MAIN.loop", Ident("MAIN.loop")},
		{"#macro_3.1", Ident("#macro_3.1")},
		{"<label", LoByte{Ident("label")}},
		{">label", HiByte{Ident("label")}},
		{"+", SysOp("+")},
		{"++", SysOp("++")},
		{"----", SysOp("----")},
		{"!", SysOp("!")},
		{"~", SysOp("~")},
		{"]", SysOp("]")},
		{"(", SysOp("(")},
		{")", SysOp(")")},
		{"[", SysOp("[")},
		{"*", SysOp("*")},
		{"$", SysOp("$")},
		{"_", SysOp("_")},
		{"($10)", Paren{Byte(0x10)}},
		{"[ptr]", Bracket{Ident("ptr")}},
		{"$10+X", Binary(Byte(0x10), Add, Ident("X"))},
		{"(label+X)", Paren{Binary(Ident("label"), Add, Ident("X"))}},
		{"[ptr]+Y", Binary(Bracket{Ident("ptr")}, Add, Ident("Y"))},
		{"[ptr+X]", Bracket{Binary(Ident("ptr"), Add, Ident("X"))}},
		{"AC+label+1", Binary(Ident("AC"), Add, Binary(Ident("label"), Add, Decimal(1)))},
		{"A&$80", Binary(Ident("A"), And, Byte(0x80))},
		{"A|$80", Binary(Ident("A"), Or, Byte(0x80))},
		{"A^$FF", Binary(Ident("A"), Xor, Byte(0xff))},
		{"X>10", Binary(Ident("X"), Greater, Decimal(10))},
		{"X<10", Binary(Ident("X"), Less, Decimal(10))},
		{"X=10", Binary(Ident("X"), Equal, Decimal(10))},
		{`X\10`, Binary(Ident("X"), NotEqual, Decimal(10))},
		{"=,.skip", Binary(SysOp("="), Comma, Ident(".skip"))},
		{">,label", Binary(SysOp(">"), Comma, Ident("label"))},
		{"NE,$1234", Binary(Ident("NE"), Comma, Word(0x1234))},
		{"$FF,12", Binary(Byte(0xff), Comma, Decimal(12))},
		{"$00,$9000-*", Binary(Byte(0), Comma, Binary(Word(0x9000), Sub, SysOp("*")))},
		{`"hi",0,label`, Binary(String("hi"), Comma, Binary(Decimal(0), Comma, Ident("label")))},
	}

	for _, entry := range table {
		e, err := Parse(entry.text)
		if !assert.NoError(err, entry.text) {
			continue
		}
		assert.Equal(entry.expr, e, entry.text)
	}
}

func TestParseError(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"$12345",
		"65536",
		`"open`,
		"(label",
		"[ptr",
		"label)",
		"A+",
		"%",
	}

	for _, text := range table {
		_, err := Parse(text)
		assert.Error(err, text)
		assert.True(errors.Is(err, ErrSyntax), text)
	}
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"$10+X",
		"(label+X)",
		"[ptr]+Y",
		"=,.skip",
		`"a\"b",$1234`,
		">label",
		"<label",
		"X>10",
	}

	for _, text := range table {
		assert.Equal(text, MustParse(text).String())
	}
}

func TestTraverseComma(t *testing.T) {
	assert := assert.New(t)

	list := TraverseComma(MustParse(`$01,$0203,"ab",label`))
	assert.Equal([]Expr{Byte(1), Word(0x0203), String("ab"), Ident("label")}, list)

	list = TraverseComma(MustParse("label+1"))
	assert.Equal([]Expr{Binary(Ident("label"), Add, Decimal(1))}, list)
}
