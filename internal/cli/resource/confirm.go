package resource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// StdinConfirmer asks for a yes/no answer on a line-oriented reader.
type StdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	return &StdinConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt and accepts s, si, sí, y or yes. Anything else,
// including end of input, declines.
func (c *StdinConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprintf(c.out, "%s [s/N]: ", prompt)

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case r := <-ch:
		if r.err != nil && r.err != io.EOF {
			return false, r.err
		}
		switch strings.ToLower(strings.TrimSpace(r.line)) {
		case "s", "si", "sí", "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
