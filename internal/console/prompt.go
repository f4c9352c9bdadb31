package console

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Domenick1991/airbooking-console/internal/domain"
)

// ErrAborted means the user chose to leave the current action.
var ErrAborted = errors.New("aborted")

// NoExit disables the exit sentinel of an Int question.
const NoExit = math.MinInt

const defaultRetry = "\tInvalid entry. Try again or enter 1 to exit. "

// Rejection is returned by a validator to ask again; Prompt replaces the default retry text.
type Rejection struct {
	Prompt string
}

func (r Rejection) Error() string {
	if r.Prompt == "" {
		return "rejected"
	}
	return strings.TrimSpace(r.Prompt)
}

// Question describes a prompt that is repeated until the answer is accepted.
type Question struct {
	Label string
	// Invalid is printed on its own line after a rejected answer.
	Invalid string
	// Retry replaces Label for later attempts.
	Retry string
}

func (q Question) next() string {
	if q.Retry != "" {
		return q.Retry
	}
	return q.Label
}

type Prompter struct {
	in  LineReader
	out io.Writer
}

func NewPrompter(in LineReader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Line asks once and returns the trimmed answer.
func (p *Prompter) Line(prompt string) (string, error) {
	s, err := p.in.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Field asks for a value until validate accepts it. After a rejection the user may answer 1 to leave.
func (p *Prompter) Field(label string, validate func(string) error) (string, error) {
	for {
		v, err := p.Line(label)
		if err != nil {
			return "", err
		}
		err = validate(v)
		if err == nil {
			return v, nil
		}
		retry, ok := retryPrompt(err)
		if !ok {
			return "", err
		}
		answer, err := p.Line(retry)
		if err != nil {
			return "", err
		}
		if answer == "1" {
			return "", ErrAborted
		}
	}
}

// Int asks for a number until validate accepts it. Answering exit aborts.
func (p *Prompter) Int(q Question, exit int, validate func(int) error) (int, error) {
	prompt := q.Label
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(s)
		if convErr == nil && exit != NoExit && n == exit {
			return 0, ErrAborted
		}
		if convErr == nil {
			err = validate(n)
			if err == nil {
				return n, nil
			}
			if _, ok := retryPrompt(err); !ok {
				return 0, err
			}
		}
		if q.Invalid != "" {
			fmt.Fprintln(p.out, q.Invalid)
		}
		prompt = q.next()
	}
}

// YesNo accepts yes or no in any case. Exit aborts.
func (p *Prompter) YesNo(q Question) (bool, error) {
	prompt := q.Label
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		case "exit":
			return false, ErrAborted
		}
		if q.Invalid != "" {
			fmt.Fprintln(p.out, q.Invalid)
		}
		prompt = q.next()
	}
}

// TryAgain asks "0 to try again or 1 to exit" and returns ErrAborted for 1.
func (p *Prompter) TryAgain(prompt string) error {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return err
		}
		switch s {
		case "0":
			return nil
		case "1":
			return ErrAborted
		}
		fmt.Fprintln(p.out, "\tYou did not enter a valid choice.")
	}
}

// retryPrompt reports whether err means "ask again" and which prompt offers the exit.
func retryPrompt(err error) (string, bool) {
	var r Rejection
	if errors.As(err, &r) {
		if r.Prompt == "" {
			return defaultRetry, true
		}
		return r.Prompt, true
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return defaultRetry, true
	}
	return "", false
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty answer", domain.ErrInvalidInput)
	}
	return nil
}

func atLeastOne(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}
