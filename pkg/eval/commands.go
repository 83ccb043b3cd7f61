package eval

import (
	"strings"

	"github.com/xplshn/bspl/pkg/token"
)

// Version is the bspl release reported by the version command and the
// startup banner.
const Version = "0.3.0"

const helpText = `Operators, tightest binding first:
  ( )        grouping
  ~          bitwise NOT (unary)
  << >>      shift left, shift right (amount must be below 32)
  &          bitwise AND
  ^          bitwise XOR
  |          bitwise OR
Literals are unsigned 32-bit integers, written in decimal (4096) or
hexadecimal with a 0x prefix (0x1000).
Commands:
  help       show this text
  license    show the license
  version    show the version
  exit       leave bspl (Ctrl-D works too)`

const licenseText = `MIT License

Copyright (c) 2025 xplshn and contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.`

// command runs a standalone keyword.
func command(tok token.Token) (*Result, error) {
	switch strings.ToLower(tok.Text) {
	case "version":
		return &Result{Trace: []string{"bspl " + Version}}, nil
	case "help":
		return &Result{Trace: strings.Split(helpText, "\n")}, nil
	case "license":
		return &Result{Trace: strings.Split(licenseText, "\n")}, nil
	case "exit":
		return nil, ErrExit
	}
	return nil, &Error{Err: ErrUnknownKeyword, Col: tok.Pos}
}
