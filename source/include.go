package source

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Reader reads source files into lines, expanding `+="file"` includes and
// compile-time $(...) expressions.
type Reader struct {
	Open      func(name string) (io.ReadCloser, error) // Opens a file, os.Open if nil.
	Predefine map[string]string                        // Constants visible to $(...).
	Verbose   bool                                     // If set, logs each file read.

	including map[string]bool
}

func (rd *Reader) open(name string) (io.ReadCloser, error) {
	if rd.Open != nil {
		return rd.Open(name)
	}
	return os.Open(name)
}

// ReadFile reads a source file, and every file it includes.
func (rd *Reader) ReadFile(name string) (lines []*Line, err error) {
	if rd.including[name] {
		err = ErrIncludeCircular(name)
		return
	}

	inf, err := rd.open(name)
	if err != nil {
		err = &ErrInclude{Name: name, Err: err}
		return
	}
	defer inf.Close()

	if rd.including == nil {
		rd.including = map[string]bool{}
	}
	rd.including[name] = true
	defer delete(rd.including, name)

	if rd.Verbose {
		log.Printf("reading %v", name)
	}

	return rd.Read(inf, name)
}

// Read reads source text from r. Includes are opened relative to the
// directory of name.
func (rd *Reader) Read(r io.Reader, name string) (lines []*Line, err error) {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()

		if include, ok := IncludeFile(text); ok {
			var included []*Line
			included, err = rd.ReadFile(filepath.Join(filepath.Dir(name), include))
			if err != nil {
				err = ErrSyntax{File: name, LineNo: lineNo, Line: text, Err: err}
				return
			}
			lines = append(lines, included...)
			continue
		}

		var expanded string
		expanded, err = rd.expand(text, lineNo)
		if err != nil {
			err = ErrSyntax{File: name, LineNo: lineNo, Line: text, Err: err}
			return
		}

		var line *Line
		line, err = ParseLine(expanded, lineNo)
		if err != nil {
			err = ErrSyntax{File: name, LineNo: lineNo, Line: text, Err: err}
			return
		}
		line.File = name
		line.Text = text
		lines = append(lines, line)
	}

	if err = scanner.Err(); err != nil {
		err = &ErrInclude{Name: name, Err: err}
		return
	}

	return
}
