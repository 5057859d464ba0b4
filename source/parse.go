// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package source

import (
	"regexp"
	"strings"

	"github.com/ezrec/sym6502/expr"
)

var (
	reLabel      = regexp.MustCompile(`^([.A-Za-z][A-Za-z0-9_]*)(\s+.*)?$`)
	reToken      = regexp.MustCompile(`("[^"]*"|\S)+`)
	reAssignment = regexp.MustCompile(`^([^=]+)=(.+)$`)
	reInclude    = regexp.MustCompile(`^\s+\+="([^"]+)"\s*$`)
)

// StripComment removes a `;;` comment, ignoring any inside quotes.
func StripComment(text string) string {
	inQuotes := false
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '"':
			inQuotes = !inQuotes
		case ';':
			if !inQuotes && n+1 < len(text) && text[n+1] == ';' {
				return text[:n]
			}
		}
	}
	return text
}

// Tokenize splits the body of a line into whitespace separated tokens,
// keeping quoted strings whole.
func Tokenize(text string) []string {
	return reToken.FindAllString(text, -1)
}

// IncludeFile returns the file named by an include directive line.
func IncludeFile(text string) (name string, ok bool) {
	match := reInclude.FindStringSubmatch(text)
	if match == nil {
		return
	}
	name, ok = match[1], true
	return
}

// ParseToken parses `command=operand`, or a lone command character.
func ParseToken(token string) (st Statement, err error) {
	var command, operand string
	if match := reAssignment.FindStringSubmatch(token); match != nil {
		command, operand = match[1], match[2]
	} else if len(token) == 1 {
		command = token
	} else {
		err = ErrToken(token)
		return
	}

	cmd, err := expr.Parse(command)
	if err != nil {
		return
	}

	operation, err := expr.Parse(operand)
	if err != nil {
		return
	}

	st = NewStatement(cmd, operation)
	return
}

func startsLabel(c byte) bool {
	return c == '.' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// ParseLine parses a source line into its label and statements. A line
// that does not start with a label character holds only statements.
func ParseLine(text string, lineNo int) (line *Line, err error) {
	body := strings.TrimRight(StripComment(text), " \t\r")

	var name string
	if len(body) > 0 && startsLabel(body[0]) {
		match := reLabel.FindStringSubmatch(body)
		if match == nil {
			err = ErrLine(text)
			return
		}
		name, body = match[1], match[2]
	}

	line = &Line{
		LineNo: lineNo,
		Text:   text,
		Label:  name,
	}

	for _, token := range Tokenize(body) {
		var st Statement
		st, err = ParseToken(token)
		if err != nil {
			line = nil
			return
		}
		line.Statements = append(line.Statements, st)
	}

	return
}
