// Package prompt implements the interactive terminal session: yes/no and
// length prompts with re-prompting on bad input, and the
// generate-another-password loop.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrInputClosed is returned when input ends while an answer is expected.
var ErrInputClosed = errors.New("input closed before an answer was given")

const invalidEntry = "Invalid entry!"

// answer is one line read from input, or the error that ended input.
type answer struct {
	text string
	err  error
}

// Prompter asks questions on w and reads answers line by line from r.
// Reading happens on a background goroutine so a pending question can be
// abandoned when its context is cancelled.
type Prompter struct {
	r       io.Reader
	w       io.Writer
	start   sync.Once
	answers chan answer
}

// NewPrompter creates a Prompter.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: r, w: w, answers: make(chan answer)}
}

// Println writes a line of output.
func (p *Prompter) Println(a ...any) error {
	_, err := fmt.Fprintln(p.w, a...)
	return err
}

// YesNo asks msg until the answer is y or n, in any case.
func (p *Prompter) YesNo(ctx context.Context, msg string) (bool, error) {
	for {
		reply, err := p.ask(ctx, msg)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(reply) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		if err := p.Println(invalidEntry); err != nil {
			return false, err
		}
	}
}

// Length asks msg until the answer is an integer in [0, 255]. A leading plus
// sign is accepted.
func (p *Prompter) Length(ctx context.Context, msg string) (int, error) {
	for {
		reply, err := p.ask(ctx, msg)
		if err != nil {
			return 0, err
		}

		n, err := strconv.ParseUint(strings.TrimPrefix(reply, "+"), 10, 8)
		if err == nil {
			return int(n), nil
		}

		if err := p.Println(invalidEntry); err != nil {
			return 0, err
		}
	}
}

func (p *Prompter) ask(ctx context.Context, msg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.Println(msg); err != nil {
		return "", err
	}

	p.start.Do(func() { go p.read() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a, ok := <-p.answers:
		if !ok {
			return "", ErrInputClosed
		}
		return a.text, a.err
	}
}

// read forwards input lines until it ends, then reports why and closes the
// channel.
func (p *Prompter) read() {
	defer close(p.answers)

	scanner := bufio.NewScanner(p.r)
	for scanner.Scan() {
		p.answers <- answer{text: strings.TrimSpace(scanner.Text())}
	}

	err := ErrInputClosed
	if scanErr := scanner.Err(); scanErr != nil {
		err = fmt.Errorf("reading answer: %w", scanErr)
	}
	p.answers <- answer{err: err}
}
