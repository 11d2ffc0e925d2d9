// Package prompt implements the blocking line-oriented questions used by the
// CLI: yes/no confirmations before destructive actions and free-text
// questions with defaults for the first-run configuration.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer gates an action behind a yes/no answer.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Asker asks a free-text question and falls back to def on an empty answer.
type Asker interface {
	Ask(label, def string) (string, error)
}

// Prompter reads answers from r and writes questions to w.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// New returns a Prompter over the given input and output.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// Confirm asks message until the answer is empty, "y", or "n" (any case).
// Empty and "y" accept. Running out of input before a valid answer declines.
func (p *Prompter) Confirm(message string) (bool, error) {
	for {
		fmt.Fprintf(p.w, "%s [y/n]: ", message)

		line, err := p.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.w)
				return false, nil
			}
			return false, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(line) {
		case "", "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

// Ask writes "label [def]: " and returns the trimmed answer, or def when the
// answer is empty or input is exhausted.
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.w)
			return def, nil
		}
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// readLine returns the next trimmed line. A final line without a trailing
// newline is returned normally; io.EOF is only reported when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Always is a Confirmer that accepts without asking, used by --yes.
type Always struct{}

// Confirm implements Confirmer.
func (Always) Confirm(string) (bool, error) { return true, nil }
