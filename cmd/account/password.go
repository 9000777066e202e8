package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Swapped in tests.
var (
	isTerminal           = term.IsTerminal
	readTerminalPassword = term.ReadPassword
)

type fdReader interface {
	io.Reader
	Fd() uintptr
}

// readPassword prompts without echo when in is a terminal. Otherwise it reads
// the first line of in, so the password can be piped.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(fdReader); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := readTerminalPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", errors.Wrap(err, "failed to read password from terminal")
		}

		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read password from stdin")
	}

	return strings.TrimRight(line, "\r\n"), nil
}
