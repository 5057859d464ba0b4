package source

import (
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sym6502/expr"
)

func TestStripComment(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text   string
		result string
	}){
		{"", ""},
		{"MAIN X=$05", "MAIN X=$05"},
		{"MAIN X=$05 ;; load", "MAIN X=$05 "},
		{";; only a comment", ""},
		{` ?=";;not a comment" ;; but this is`, ` ?=";;not a comment" `},
		{" ;=X>10 A=A+1", " ;=X>10 A=A+1"},
	}

	for _, entry := range table {
		assert.Equal(entry.result, StripComment(entry.text), entry.text)
	}
}

func TestParseLine(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text       string
		label      string
		statements []string
	}){
		{"", "", nil},
		{"   ", "", nil},
		{"MAIN X=$05", "MAIN", []string{"X=$05"}},
		{".loop X=+ ;=\\,.loop", ".loop", []string{"X=+", `;=\,.loop`}},
		{" *=$8000", "", []string{"*=$8000"}},
		{` ?="a b",$00`, "", []string{`?="a b",$00`}},
		{" @", "", []string{"@"}},
		{" ;=X>10 A=A+1 Y=Y+1", "", []string{";=X>10", "A=A+1", "Y=Y+1"}},
		{" (ptr+X)=A", "", []string{"(ptr+X)=A"}},
		{"SUB #=! ;; return", "SUB", []string{"#=!"}},
	}

	for _, entry := range table {
		line, err := ParseLine(entry.text, 7)
		if !assert.NoError(err, entry.text) {
			continue
		}
		assert.Equal(7, line.LineNo)
		assert.Equal(entry.label, line.Label, entry.text)
		var statements []string
		for _, st := range line.Statements {
			statements = append(statements, st.String())
		}
		assert.Equal(entry.statements, statements, entry.text)
	}
}

func TestParseToken(t *testing.T) {
	assert := assert.New(t)

	st, err := ParseToken("X=$05")
	assert.NoError(err)
	assert.Equal(NewStatement(expr.Ident("X"), expr.Byte(5)), st)
	assert.Equal("X=$05", st.String())

	st, err = ParseToken("@")
	assert.NoError(err)
	assert.Equal(expr.SysOp("@"), st.Command)
	assert.Equal(expr.Empty{}, st.Expression)

	_, err = ParseToken("XY")
	assert.Equal(ErrToken("XY"), err)
	assert.True(errors.Is(err, expr.ErrSyntax))

	_, err = ParseToken("X=$12345")
	assert.True(errors.Is(err, expr.ErrSyntax))

	_, err = ParseLine("MAIN: X=1", 1)
	assert.Equal(ErrLine("MAIN: X=1"), err)

	line, err := ParseLine("*=$8000 X=1", 1)
	assert.NoError(err)
	assert.Equal("", line.Label)
	assert.Equal(2, len(line.Statements))
}

func testReader(fsys fstest.MapFS) *Reader {
	return &Reader{
		Open: func(name string) (io.ReadCloser, error) {
			return fsys.Open(name)
		},
	}
}

func TestReadFileInclude(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"main.s": &fstest.MapFile{Data: []byte(
			" *=$8000\n" +
				"  +=\"lib/util.s\"\n" +
				"MAIN #=UTIL\n")},
		"lib/util.s": &fstest.MapFile{Data: []byte(
			"  +=\"zp.s\"\n" +
				"UTIL #=!\n")},
		"lib/zp.s": &fstest.MapFile{Data: []byte(
			"ptr :=$fb\n")},
	}

	lines, err := testReader(fsys).ReadFile("main.s")
	if !assert.NoError(err) {
		return
	}

	table := [](struct {
		file   string
		lineNo int
		label  string
	}){
		{"main.s", 1, ""},
		{"lib/zp.s", 1, "ptr"},
		{"lib/util.s", 2, "UTIL"},
		{"main.s", 3, "MAIN"},
	}

	if assert.Equal(len(table), len(lines)) {
		for n, entry := range table {
			assert.Equal(entry.file, lines[n].File, n)
			assert.Equal(entry.lineNo, lines[n].LineNo, n)
			assert.Equal(entry.label, lines[n].Label, n)
		}
	}
}

func TestReadFileErrors(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"missing.s": &fstest.MapFile{Data: []byte("  +=\"nowhere.s\"\n")},
		"loop_a.s":  &fstest.MapFile{Data: []byte("  +=\"loop_b.s\"\n")},
		"loop_b.s":  &fstest.MapFile{Data: []byte("  +=\"loop_a.s\"\n")},
		"bad.s":     &fstest.MapFile{Data: []byte(" X=1\n X=)(\n")},
	}

	_, err := testReader(fsys).ReadFile("missing.s")
	assert.True(errors.Is(err, ErrIo))
	var errInclude *ErrInclude
	if assert.True(errors.As(err, &errInclude)) {
		assert.Equal("nowhere.s", errInclude.Name)
	}

	_, err = testReader(fsys).ReadFile("loop_a.s")
	assert.True(errors.Is(err, ErrIo))
	assert.True(errors.Is(err, ErrIncludeCircular("loop_a.s")))

	_, err = testReader(fsys).ReadFile("bad.s")
	var errSyntax ErrSyntax
	if assert.True(errors.As(err, &errSyntax)) {
		assert.Equal("bad.s", errSyntax.File)
		assert.Equal(2, errSyntax.LineNo)
	}
	assert.True(errors.Is(err, expr.ErrSyntax))
}

func TestParenEval(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"eval.s": &fstest.MapFile{Data: []byte(
			" X=$(1+2)\n" +
				" *=$(BASE+0x100)\n" +
				" Y=$(LINENO*2)\n")},
		"range.s": &fstest.MapFile{Data: []byte(" X=$(0x10000)\n")},
		"type.s":  &fstest.MapFile{Data: []byte(" X=$(\"x\")\n")},
	}

	rd := testReader(fsys)
	rd.Predefine = map[string]string{"BASE": "0x8000"}

	lines, err := rd.ReadFile("eval.s")
	if assert.NoError(err) && assert.Equal(3, len(lines)) {
		assert.Equal(expr.Byte(3), lines[0].Statements[0].Expression)
		assert.Equal(expr.Word(0x8100), lines[1].Statements[0].Expression)
		assert.Equal(expr.Byte(6), lines[2].Statements[0].Expression)
		assert.Equal(" X=$(1+2)", lines[0].Text)
	}

	_, err = rd.ReadFile("range.s")
	assert.True(errors.Is(err, ErrEvalRange))

	_, err = rd.ReadFile("type.s")
	assert.True(errors.Is(err, ErrEvalType))

	rd.Predefine = map[string]string{"BASE": "0x8000", "NAME": "sym"}
	_, err = rd.ReadFile("eval.s")
	var predef *ErrPredefine
	if assert.ErrorAs(err, &predef) {
		assert.Equal("NAME", predef.Name)
		assert.Equal("sym", predef.Value)
	}
	assert.ErrorIs(err, ErrEvalType)
	assert.ErrorIs(err, expr.ErrSyntax)
}
