package expr

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
)

// operandLexer splits operand text into tokens. Punct is a single
// character; runs of system operators are assembled by the grammar.
var operandLexer = lexer.Must(lexer.Regexp(
	`(?P<String>"(?:\\.|[^"\\])*")` +
		`|(?P<Hex>\$[0-9A-Fa-f]+)` +
		`|(?P<Decimal>[0-9]+)` +
		`|(?P<Ident>[A-Za-z][A-Za-z0-9_.]*|[._#][A-Za-z0-9_][A-Za-z0-9_.]*)` +
		`|(?P<Punct>[-<>=/\\+_#!^~\[\]:?*$@;()&|,])`,
))

// operandList := compare ( ',' operandList )?
type operandList struct {
	Head *operandCompare `@@`
	Tail *operandList    `[ "," @@ ]`
}

// operandCompare := arith ( cmpop arith )?
type operandCompare struct {
	Left  *operandArith `@@`
	Op    string        `[ @( ">" | "<" | "=" | "\\" )`
	Right *operandArith `  @@ ]`
}

// operandArith := term ( arithop arith )?
type operandArith struct {
	Left  *operandTerm  `@@`
	Op    string        `[ @( "+" | "-" | "*" | "/" | "&" | "|" | "^" )`
	Right *operandArith `  @@ ]`
}

// operandTerm is a literal, a label, a byte selector, a group, or a run of
// one repeated system operator character. An opening bracket that does not
// start a group is a system operator of its own.
type operandTerm struct {
	Hex     *string      `  @Hex`
	Decimal *string      `| @Decimal`
	String  *string      `| @String`
	Ident   *string      `| @Ident`
	Lo      *string      `| "<" @Ident`
	Hi      *string      `| ">" @Ident`
	Paren   *operandList `| "(" @@ ")"`
	Bracket *operandList `| "[" @@ "]"`
	Run     []string     `| ( @"-" { @"-" } | @"<" { @"<" } | @">" { @">" } | @"=" { @"=" } | @"/" { @"/" } | @"\\" { @"\\" } | @"+" { @"+" } | @"_" { @"_" } | @"#" { @"#" } | @"!" { @"!" } | @"^" { @"^" } | @"~" { @"~" } | @"]" { @"]" } | @":" { @":" } | @"?" { @"?" } | @"*" { @"*" } | @"$" { @"$" } | @"@" { @"@" } | @";" { @";" } | @")" { @")" } | @"(" | @"[" )`
}

var operandParser = participle.MustBuild(&operandList{},
	participle.Lexer(operandLexer),
	participle.UseLookahead(4),
)

// arithmetic operators, in source spelling.
var arithOps = map[string]Operator{
	"+": Add,
	"-": Sub,
	"*": Mul,
	"/": Div,
	"&": And,
	"|": Or,
	"^": Xor,
}

// comparison operators, in source spelling.
var compareOps = map[string]Operator{
	">":  Greater,
	"<":  Less,
	"=":  Equal,
	"\\": NotEqual,
}

// Parse parses operand text into an expression. Empty text parses as Empty.
//
// Arithmetic has no precedence and groups to the right, so `lab-1-1` is
// `lab-(1-1)`. Use parentheses for left to right evaluation.
func Parse(text string) (e Expr, err error) {
	if len(text) == 0 {
		e = Empty{}
		return
	}

	ast := &operandList{}
	err = operandParser.ParseString(text, ast)
	if err != nil {
		if unterminated(text) {
			err = ErrParseString(text)
		} else {
			err = ErrParseExpression(text)
		}
		return
	}

	e, err = ast.expr()
	if err != nil {
		e = nil
	}

	return
}

// MustParse is Parse that panics on error, for tables of known-good operands.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

// unterminated is true when text opens a string it never closes.
func unterminated(text string) bool {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch {
		case text[n] == '"':
			quoted = !quoted
		case text[n] == '\\' && quoted:
			n++
		}
	}
	return quoted
}

func (l *operandList) expr() (e Expr, err error) {
	e, err = l.Head.expr()
	if err != nil || l.Tail == nil {
		return
	}

	right, err := l.Tail.expr()
	if err != nil {
		return
	}
	e = Binary(e, Comma, right)
	return
}

func (c *operandCompare) expr() (e Expr, err error) {
	e, err = c.Left.expr()
	if err != nil || c.Right == nil {
		return
	}

	right, err := c.Right.expr()
	if err != nil {
		return
	}
	e = Binary(e, compareOps[c.Op], right)
	return
}

func (a *operandArith) expr() (e Expr, err error) {
	e, err = a.Left.expr()
	if err != nil || a.Right == nil {
		return
	}

	right, err := a.Right.expr()
	if err != nil {
		return
	}
	e = Binary(e, arithOps[a.Op], right)
	return
}

func (t *operandTerm) expr() (e Expr, err error) {
	switch {
	case t.Hex != nil:
		return hexNumber(*t.Hex)
	case t.Decimal != nil:
		var value uint64
		value, err = strconv.ParseUint(*t.Decimal, 10, 16)
		if err != nil {
			err = ErrParseNumber(*t.Decimal)
			return
		}
		e = Decimal(value)
	case t.String != nil:
		e = unquote(*t.String)
	case t.Ident != nil:
		e = Ident(*t.Ident)
	case t.Lo != nil:
		e = LoByte{X: Ident(*t.Lo)}
	case t.Hi != nil:
		e = HiByte{X: Ident(*t.Hi)}
	case t.Paren != nil:
		var inner Expr
		inner, err = t.Paren.expr()
		e = Paren{X: inner}
	case t.Bracket != nil:
		var inner Expr
		inner, err = t.Bracket.expr()
		e = Bracket{X: inner}
	case len(t.Run) != 0:
		e = SysOp(strings.Join(t.Run, ""))
	default:
		err = ErrSyntax
	}
	return
}

// hexNumber is a byte for one or two digits, and a word for three or four.
func hexNumber(text string) (e Expr, err error) {
	digits := text[1:]
	if len(digits) > 4 {
		err = ErrParseNumber(text)
		return
	}
	value, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}
	if len(digits) <= 2 {
		e = Byte(value)
	} else {
		e = Word(value)
	}
	return
}

// unquote strips the quotes of a string token. A backslash takes the next
// character literally.
func unquote(token string) String {
	body := token[1 : len(token)-1]
	var sb strings.Builder
	for n := 0; n < len(body); n++ {
		if body[n] == '\\' && n+1 < len(body) {
			n++
		}
		sb.WriteByte(body[n])
	}
	return String(sb.String())
}
