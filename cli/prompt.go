package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers line by line, writing a prompt before each.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	Echo    bool // echo each answer after its prompt (for script playback)
}

// NewPrompter returns a Prompter reading from in and prompting on out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// ReadLine prints prompt and returns the next line, trimmed. It returns
// io.EOF once input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(p.scanner.Text())
	if p.Echo {
		fmt.Fprintln(p.out, line)
	}
	return line, nil
}

// ReadValidated prompts until parse accepts the answer, printing each
// rejection. It fails only when input ends.
func ReadValidated[T any](p *Prompter, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "%s\n", capitalize(err.Error()))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
