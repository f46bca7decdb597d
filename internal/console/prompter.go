package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/mine/internal/errors"
)

// Prompter asks for a choice on out and reads answers from in, one per line
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter over the given streams
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Select asks until an answer matches an option name, ignoring case. It only
// fails when the input ends or ctx is done.
func (p *Prompter) Select(ctx context.Context, prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.InvalidArgument("nothing to choose from")
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, errors.Wrap(err, "selection interrupted")
		}

		fmt.Fprintf(p.out, "%s [%s]: ", prompt, strings.Join(options, ", "))
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, errors.Wrap(err, "reading selection")
			}
			return 0, errors.InvalidArgumentf("input ended before %q was answered", prompt)
		}

		answer := strings.TrimSpace(p.in.Text())
		for i, option := range options {
			if strings.EqualFold(answer, option) {
				return i, nil
			}
		}

		if answer != "" {
			fmt.Fprintf(p.out, "%q is not one of the options.\n", answer)
		}
	}
}
