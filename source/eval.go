package source

import (
	"fmt"
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var reParenEval = regexp.MustCompile(`\$\([^\$]*\)`)

// parenEval does compile-time $(...) evaluations
func (rd *Reader) parenEval(text string, lineNo int) (value uint16, err error) {
	thread := starlark.Thread{Name: "sym6502"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineNo),
	}
	for key, str := range rd.Predefine {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			err = &ErrEval{Expr: text, Err: &ErrPredefine{Name: key, Value: str}}
			return
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + text + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = &ErrEval{Expr: text, Err: err}
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = &ErrEval{Expr: text, Err: ErrEvalType}
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = &ErrEval{Expr: text, Err: ErrEvalRange}
		return
	}

	value = uint16(st_int64)
	return
}

// expand replaces every $(...) in a line with a hex literal.
func (rd *Reader) expand(text string, lineNo int) (line string, err error) {
	line = reParenEval.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := rd.parenEval(str[2:len(str)-1], lineNo)
		if _err != nil {
			err = _err
			return str
		}
		if value <= 0xff {
			return fmt.Sprintf("$%02X", value)
		}
		return fmt.Sprintf("$%04X", value)
	})
	return
}
