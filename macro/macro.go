// Package macro rewrites the control constructs of a source into plain
// labels, compares and branches.
//
// An if statement `;=X>10 A=A+1` becomes
//
//	#macro_0
//	 T=X-10
//	 ;=<,#macro_0.1
//	 C=0 A=AC+1
//	#macro_0.1
//
// and a do loop `@ ... @=X>10` repeats its body while the condition holds.
package macro

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/label"
	"github.com/ezrec/sym6502/source"
)

// inverted maps a comparison to the branch condition taken when it fails.
var inverted = map[expr.Operator]expr.SysOp{
	expr.Equal:    `\`,
	expr.NotEqual: "=",
	expr.Greater:  "<",
	expr.Less:     ">",
}

type loop struct {
	label  string
	lineNo int
}

// Expander expands the control constructs of a source. Generated labels
// are numbered from zero for each Expander.
type Expander struct {
	Verbose bool // If set, logs every generated line.

	counter int
	loops   Stack[loop]
}

// Expand returns the lines with all control constructs expanded.
func (ex *Expander) Expand(lines []*source.Line) (expanded []*source.Line, err error) {
	for _, line := range lines {
		var out []*source.Line
		out, err = ex.expandLine(line)
		if err != nil {
			err = source.ErrSyntax{File: line.File, LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}
		expanded = append(expanded, out...)
	}

	if open, ok := ex.loops.Peek(); ok {
		ex.loops.Reset()
		err = &ErrLoopUnclosed{Label: open.label, LineNo: open.lineNo}
		return
	}

	if ex.Verbose {
		for _, line := range expanded {
			log.Printf("%v: %v\n", line.LineNo, line)
		}
	}

	return
}

func (ex *Expander) newLabel() string {
	name := fmt.Sprintf("%v%d", label.MacroPrefix, ex.counter)
	ex.counter++
	return name
}

func isIf(st source.Statement) bool {
	return st.Command == expr.SysOp(";") && isComparison(st.Expression)
}

func isDo(st source.Statement) bool {
	return st.Command == expr.SysOp("@") && expr.IsEmpty(st.Expression)
}

func isWhile(st source.Statement) bool {
	return st.Command == expr.SysOp("@") && !expr.IsEmpty(st.Expression)
}

func isComparison(e expr.Expr) bool {
	bin, ok := e.(expr.BinOp)
	return ok && bin.Op.IsComparison()
}

// expandLine expands a single line. Statements before a control construct
// stay on a line of their own, with the label of the line.
func (ex *Expander) expandLine(line *source.Line) (lines []*source.Line, err error) {
	var pending []source.Statement
	name := line.Label

	flush := func() {
		if len(pending) == 0 && len(name) == 0 {
			return
		}
		out := line.WithStatements(pending...)
		out.Label = name
		lines = append(lines, out)
		pending = nil
		name = ""
	}

	for n, st := range line.Statements {
		switch {
		case isIf(st):
			flush()
			var out []*source.Line
			out, err = ex.ifThen(line, st, line.Statements[n+1:])
			lines = append(lines, out...)
			return
		case isDo(st):
			flush()
			head := ex.newLabel()
			ex.loops.Push(loop{label: head, lineNo: line.LineNo})
			lines = append(lines, line.WithLabel(head))
		case isWhile(st):
			flush()
			var out []*source.Line
			out, err = ex.while(line, st)
			if err != nil {
				return
			}
			lines = append(lines, out...)
		default:
			pending = append(pending, shorthand(st)...)
		}
	}

	flush()
	return
}

// condition returns the compare statement of a condition, and the branch
// condition that skips when the comparison fails.
func condition(e expr.Expr) (compare source.Statement, skip expr.SysOp, err error) {
	bin, ok := e.(expr.BinOp)
	if ok {
		skip, ok = inverted[bin.Op]
	}
	if !ok {
		err = ErrCondition(e.String())
		return
	}

	compare = source.NewStatement(expr.Ident("T"), expr.Binary(bin.Left, expr.Sub, bin.Right))
	return
}

func branch(cond expr.SysOp, target string) source.Statement {
	return source.NewStatement(expr.SysOp(";"), expr.Binary(cond, expr.Comma, expr.Ident(target)))
}

// ifThen expands `;=COND then...`.
func (ex *Expander) ifThen(line *source.Line, st source.Statement, then []source.Statement) (lines []*source.Line, err error) {
	compare, skip, err := condition(st.Expression)
	if err != nil {
		return
	}

	header := ex.newLabel()
	trailer := header + ".1"

	lines = append(lines,
		line.WithLabel(header),
		line.WithStatements(compare),
		line.WithStatements(branch(skip, trailer)),
	)

	if len(then) > 0 {
		var body []*source.Line
		body, err = ex.expandLine(line.WithStatements(then...))
		if err != nil {
			return
		}
		lines = append(lines, body...)
	}

	lines = append(lines, line.WithLabel(trailer))
	return
}

// while expands the `@=COND` close of a do loop.
func (ex *Expander) while(line *source.Line, st source.Statement) (lines []*source.Line, err error) {
	open, ok := ex.loops.Pop()
	if !ok {
		err = ErrLoopUnmatched{}
		return
	}

	compare, skip, err := condition(st.Expression)
	if err != nil {
		return
	}

	after := open.label + ".1"
	lines = append(lines,
		line.WithStatements(compare),
		line.WithStatements(branch(skip, after)),
		line.WithStatements(source.NewStatement(expr.SysOp("#"), expr.Ident(open.label))),
		line.WithLabel(after),
	)
	return
}

// shorthand rewrites the register shorthand forms of a statement.
func shorthand(st source.Statement) []source.Statement {
	if st.Command == expr.Ident("A") {
		if bin, ok := st.Expression.(expr.BinOp); ok && bin.Left == expr.Ident("A") {
			switch bin.Op {
			case expr.Add:
				return []source.Statement{
					source.NewStatement(expr.Ident("C"), expr.Decimal(0)),
					source.NewStatement(expr.Ident("A"), expr.Binary(expr.Ident("AC"), expr.Add, bin.Right)),
				}
			case expr.Sub:
				return []source.Statement{
					source.NewStatement(expr.Ident("C"), expr.Decimal(1)),
					source.NewStatement(expr.Ident("A"), expr.Binary(expr.Ident("AC"), expr.Sub, bin.Right)),
				}
			}
		}
	}

	if run, ok := st.Expression.(expr.SysOp); ok && len(run) > 1 && strings.Trim(string(run), "+-") == "" {
		switch st.Command.(type) {
		case expr.Ident, expr.Paren, expr.Bracket, expr.BinOp:
			if ident, ok := st.Command.(expr.Ident); ok && ident != "X" && ident != "Y" {
				break
			}
			sts := make([]source.Statement, len(run))
			for n := range sts {
				sts[n] = source.NewStatement(st.Command, run[:1])
			}
			return sts
		}
	}

	return []source.Statement{st}
}
