package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrAborted is returned when input ends before a question is answered.
var ErrAborted = errors.New("prompt aborted")

const maxAttempts = 3

type Prompter interface {
	// Select returns the index of the chosen option.
	Select(label string, options []string) (int, error)
	// Input returns the answer, or def when the answer is empty.
	Input(label, def string) (string, error)
}

// Line asks numbered questions over a plain line oriented stream.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) Select(label string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%s: no options", label)
	}

	fmt.Fprintf(l.out, "? %s\n", label)
	for i, opt := range options {
		fmt.Fprintf(l.out, "  %d) %s\n", i+1, opt)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(l.out, "Choice [1-%d]: ", len(options))
		answer, err := l.readLine()
		if err != nil {
			return 0, err
		}

		idx, err := strconv.Atoi(answer)
		if err == nil && idx >= 1 && idx <= len(options) {
			return idx - 1, nil
		}
		for i, opt := range options {
			if strings.EqualFold(answer, opt) {
				return i, nil
			}
		}
		fmt.Fprintf(l.out, "Invalid choice %q.\n", answer)
	}

	return 0, fmt.Errorf("%s: no valid choice after %d attempts", label, maxAttempts)
}

func (l *Line) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(l.out, "? %s (%s): ", label, def)
	} else {
		fmt.Fprintf(l.out, "? %s: ", label)
	}

	answer, err := l.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (l *Line) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
