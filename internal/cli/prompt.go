package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers line by line from an input stream.
// Reads honor context cancellation; a Prompter must not be reused after
// a cancelled read.
type Prompter struct {
	reader  *bufio.Reader
	writer  io.Writer
	secret  func() ([]byte, error)
	maxSize int
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithSecretReader sets the function used to read answers without echo.
func WithSecretReader(fn func() ([]byte, error)) PrompterOption {
	return func(p *Prompter) {
		p.secret = fn
	}
}

// WithMaxAnswerSize overrides DefaultMaxAnswerSize. Zero disables the limit.
func WithMaxAnswerSize(n int) PrompterOption {
	return func(p *Prompter) {
		p.maxSize = n
	}
}

// NewPrompter creates a Prompter. Nil streams default to stdin and stdout.
func NewPrompter(r io.Reader, w io.Writer, opts ...PrompterOption) *Prompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	p := &Prompter{reader: bufio.NewReader(r), writer: w, maxSize: DefaultMaxAnswerSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TerminalSecretReader returns a secret reader for f when it is a terminal,
// or nil otherwise.
func TerminalSecretReader(f *os.File) func() ([]byte, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func() ([]byte, error) {
		return term.ReadPassword(fd)
	}
}

type answer struct {
	text string
	err  error
}

// Ask prints label and returns the trimmed, sanitized answer.
// Answers SanitizeAnswer rejects return its error; the read itself succeeded
// and the next Ask continues with the following line.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.writer, label)
	return p.await(ctx, func() (string, error) {
		text, err := p.reader.ReadString('\n')
		if text != "" {
			return text, nil
		}
		return "", err
	})
}

// AskSecret is Ask without echo. Without a secret reader it behaves like Ask.
func (p *Prompter) AskSecret(ctx context.Context, label string) (string, error) {
	if p.secret == nil {
		return p.Ask(ctx, label)
	}
	fmt.Fprint(p.writer, label)
	text, err := p.await(ctx, func() (string, error) {
		b, err := p.secret()
		return string(b), err
	})
	fmt.Fprintln(p.writer)
	return text, err
}

func (p *Prompter) await(ctx context.Context, read func() (string, error)) (string, error) {
	ch := make(chan answer, 1)
	go func() {
		text, err := read()
		ch <- answer{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		if a.err != nil {
			return "", a.err
		}
		text, err := SanitizeAnswer(a.text, p.maxSize)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}
}
