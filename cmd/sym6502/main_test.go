package main

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sym6502/assembler"
	"github.com/ezrec/sym6502/source"
)

func TestParseArgs(t *testing.T) {
	assert := assert.New(t)

	fs := flag.NewFlagSet("sym6502", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ihex := fs.Bool("ihex", false, "")
	c64 := fs.Bool("c64", false, "")
	predefine := defines{}
	fs.Var(predefine, "D", "")

	args, err := parseArgs(fs, []string{"prog.s", "--ihex", "-D", "WIDTH=40", "prog.hex", "-D", "HEIGHT=$(25)"})
	assert.NoError(err)
	assert.Equal([]string{"prog.s", "prog.hex"}, args)
	assert.True(*ihex)
	assert.False(*c64)
	assert.Equal(defines{"WIDTH": "40", "HEIGHT": "$(25)"}, predefine)

	_, err = parseArgs(fs, []string{"prog.s", "-D", "WIDTH"})
	assert.Error(err)

	_, err = parseArgs(fs, []string{"--bogus"})
	assert.Error(err)
}

func TestWriteListing(t *testing.T) {
	assert := assert.New(t)

	rd := &source.Reader{}
	lines, err := rd.Read(strings.NewReader("*=$C000\nMAIN X=$05\n A=X\n #=!"), "list.s")
	if !assert.NoError(err) {
		return
	}
	asm := &assembler.Assembler{}
	prog, err := asm.Assemble(lines)
	if !assert.NoError(err) {
		return
	}

	var buf bytes.Buffer
	assert.NoError(writeListing(&buf, prog))
	assert.Equal(
		"$C000  A2 05     list.s:2 MAIN X=$05\n"+
			"$C002  8A        list.s:3  A=X\n"+
			"$C003  60        list.s:4  #=!\n",
		buf.String())
}
