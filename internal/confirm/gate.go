// Package confirm holds the single policy deciding whether a destructive
// step proceeds. The gate is the only suspension point in a run: it blocks
// the one logical thread of control until the operator answers.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Gate answers yes/no questions, either from the global auto-confirm flag
// or from an operator line. The answer source is injectable so a
// non-interactive harness can script responses.
type Gate struct {
	auto bool
	in   *bufio.Reader
	out  io.Writer
}

// NewGate builds a gate reading answers from in and writing prompts to out.
func NewGate(autoConfirm bool, in io.Reader, out io.Writer) *Gate {
	return &Gate{auto: autoConfirm, in: bufio.NewReader(in), out: out}
}

// Confirm asks the operator the given question and blocks until answered.
// With auto-confirm set it returns true before any terminal I/O. Only "y"
// and "yes" (case-insensitive) affirm; anything else — including EOF — is a
// no. There is no timeout.
func (g *Gate) Confirm(prompt string) bool {
	if g.auto {
		return true
	}

	_, _ = fmt.Fprintf(g.out, "%s [y/N]: ", prompt)

	line, err := g.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
