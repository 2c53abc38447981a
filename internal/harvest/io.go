package harvest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	DefaultPrompt            = "Days until harvest: "
	DefaultProgressFormat    = "Day %d"
	DefaultCompletionMessage = "Harvest time!"
)

// Reporter receives the signals a Session emits.
type Reporter interface {
	Progress(day int)
	Complete()
}

// WriterReporter prints progress and completion lines to W.
type WriterReporter struct {
	W                 io.Writer
	ProgressFormat    string
	CompletionMessage string
}

// NewWriterReporter returns a reporter printing the default messages to w.
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{
		W:                 w,
		ProgressFormat:    DefaultProgressFormat,
		CompletionMessage: DefaultCompletionMessage,
	}
}

func (r *WriterReporter) Progress(day int) {
	format := r.ProgressFormat
	if format == "" {
		format = DefaultProgressFormat
	}
	fmt.Fprintf(r.W, format+"\n", day)
}

func (r *WriterReporter) Complete() {
	msg := r.CompletionMessage
	if msg == "" {
		msg = DefaultCompletionMessage
	}
	fmt.Fprintln(r.W, msg)
}

// TargetSource supplies the day count when a session starts.
type TargetSource interface {
	Target(ctx context.Context) (int, error)
}

// FixedSource always returns the same target.
type FixedSource int

func (f FixedSource) Target(context.Context) (int, error) { return int(f), nil }

// PromptSource asks for the target on Out and reads one line from In.
type PromptSource struct {
	In     *bufio.Reader
	Out    io.Writer
	Prompt string
}

// Target prints the prompt and blocks until one line is read.
func (p *PromptSource) Target(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := p.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	fmt.Fprint(p.Out, prompt)

	line, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseTarget(line)
}

// ParseTarget converts user input to a day count.
func ParseTarget(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	return n, nil
}
