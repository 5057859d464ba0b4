// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/sym6502/assembler"
	"github.com/ezrec/sym6502/output"
	"github.com/ezrec/sym6502/source"
	"github.com/ezrec/sym6502/translate"
)

var f = translate.From

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var list []string
	for key, value := range d {
		list = append(list, key+"="+value)
	}
	return strings.Join(list, ",")
}

func (d defines) Set(text string) error {
	key, value, ok := strings.Cut(text, "=")
	if !ok || len(key) == 0 {
		return errors.New(f("'%v' is not NAME=VALUE", text))
	}
	d[key] = value
	return nil
}

// parseArgs parses flags mixed in anywhere with the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) (positional []string, err error) {
	for {
		err = fs.Parse(args)
		if err != nil {
			return
		}
		if fs.NArg() == 0 {
			return
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// writeListing writes the address, object codes and source of every line
// that emitted object codes, in address order of the program.
func writeListing(w io.Writer, prog *assembler.Program) (err error) {
	for addr := range prog.Codes() {
		dbg := prog.Debug(addr)
		if dbg.Line == nil || dbg.Index != 0 {
			continue
		}
		_, err = fmt.Fprintf(w, "$%04X  %-9v %v:%d %v\n", addr, fmt.Sprintf("% X", dbg.ObjectCodes), dbg.File, dbg.LineNo, dbg.Text)
		if err != nil {
			return
		}
	}
	return
}

func main() {
	var ihex bool
	var c64 bool
	var labels string
	var verbose bool
	var lang string
	predefine := defines{}

	flag.BoolVar(&ihex, "ihex", false, "Use Intel HEX format")
	flag.BoolVar(&c64, "c64", false, "Prefix the C64 PRG load address")
	flag.StringVar(&labels, "labels", output.LabelsFile, "Label listing file, none if empty")
	flag.Var(predefine, "D", "Predefine NAME=VALUE for $(...) expressions")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, such as en-US")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%v\n", f("usage: %v <src_file> <obj_file> [--ihex] [--c64]", os.Args[0]))
		flag.PrintDefaults()
	}

	args, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}
	srcFile, objFile := args[0], args[1]

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	rd := &source.Reader{Predefine: predefine, Verbose: verbose}
	lines, err := rd.ReadFile(srcFile)
	if err != nil {
		log.Fatalf("%v: %v", srcFile, err)
	}

	asm := &assembler.Assembler{Verbose: verbose}
	prog, err := asm.Assemble(lines)
	if err != nil {
		log.Fatalf("%v: %v", srcFile, err)
	}
	log.Print(f("assemble done. object size = %d bytes", prog.Size()))
	if verbose {
		err = writeListing(log.Writer(), prog)
		if err != nil {
			log.Fatalf("%v: %v", srcFile, err)
		}
	}

	wr := &output.Writer{Labels: labels, Verbose: verbose}
	switch {
	case ihex:
		wr.Format = output.IntelHex
	case c64:
		wr.Format = output.C64
	}

	err = wr.Write(objFile, prog)
	if err != nil {
		log.Fatalf("%v: %v", objFile, err)
	}
}
