// Package console is the interactive I/O boundary: line prompts, secret
// prompts, and user-facing output. The auth flow and menu only see the
// Prompter interface, so they run the same against a terminal or a script.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for a line of input
type Prompter interface {
	// Prompt prints label and returns the next input line without its line ending
	Prompt(label string) (string, error)

	// PromptSecret is like Prompt but does not echo input when possible
	PromptSecret(label string) (string, error)
}

// readPassword is a test seam for term.ReadPassword
var readPassword = term.ReadPassword

// Console reads prompts from an input stream and writes to an output stream
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal file descriptor for secret input, or -1
	fd int
}

// New creates a Console over arbitrary streams. Secret prompts echo like
// normal prompts because there is no terminal to switch off.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
}

// NewTerminal creates a Console on stdin/stdout. When stdin is a terminal,
// secret prompts are read without echo.
func NewTerminal() *Console {
	c := New(os.Stdin, os.Stdout)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		c.fd = fd
	}
	return c
}

// Out returns the output stream
func (c *Console) Out() io.Writer {
	return c.out
}

// Prompt prints label and reads one line. If EOF occurs after some input was
// read, the partial line is returned.
func (c *Console) Prompt(label string) (string, error) {
	if _, err := fmt.Fprint(c.out, label); err != nil {
		return "", err
	}
	return c.readLine()
}

// PromptSecret prints label and reads one line without echo
func (c *Console) PromptSecret(label string) (string, error) {
	if c.fd < 0 {
		return c.Prompt(label)
	}

	if _, err := fmt.Fprint(c.out, label); err != nil {
		return "", err
	}
	pw, err := readPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
