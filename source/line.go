package source

import (
	"strings"

	"github.com/ezrec/sym6502/expr"
)

// Statement is a single `command=expression` token of a line.
type Statement struct {
	Command    expr.Expr
	Expression expr.Expr
}

// NewStatement builds a statement from a command and an expression.
func NewStatement(command expr.Expr, expression expr.Expr) Statement {
	if expression == nil {
		expression = expr.Empty{}
	}
	return Statement{Command: command, Expression: expression}
}

func (st Statement) String() string {
	if expr.IsEmpty(st.Expression) {
		return st.Command.String()
	}
	return st.Command.String() + "=" + st.Expression.String()
}

// Line is one logical source line after include expansion.
type Line struct {
	LineNo      int         // Line number within File.
	File        string      // Source file name.
	Text        string      // Original text, for diagnostics.
	Address     uint16      // Program counter at the start of the line.
	Label       string      // Label defined on the line, if any.
	Statements  []Statement // Statements, in order.
	ObjectCodes []byte      // Bytes emitted by pass 2.
}

// WithLabel returns a label-only line sharing the position of the line.
func (ln *Line) WithLabel(name string) *Line {
	return &Line{
		LineNo:  ln.LineNo,
		File:    ln.File,
		Text:    ln.Text,
		Address: ln.Address,
		Label:   name,
	}
}

// WithStatements returns an unlabelled line sharing the position of the line.
func (ln *Line) WithStatements(statements ...Statement) *Line {
	return &Line{
		LineNo:     ln.LineNo,
		File:       ln.File,
		Text:       ln.Text,
		Address:    ln.Address,
		Statements: statements,
	}
}

func (ln *Line) String() string {
	var sb strings.Builder
	sb.WriteString(ln.Label)
	for _, st := range ln.Statements {
		sb.WriteString(" ")
		sb.WriteString(st.String())
	}
	return sb.String()
}
