package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader prints a prompt and returns the next line without its newline.
// It returns io.EOF once input is exhausted or the user hits Ctrl-C/Ctrl-D.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader picks line editing with history for a terminal and plain buffered reads otherwise.
func NewLineReader(in *os.File, out io.Writer) (LineReader, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return NewScriptReader(in, out), nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		HistoryLimit:    200,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("init line editor: %w", err)
	}
	return &terminalReader{rl: rl}, nil
}

type terminalReader struct {
	rl *readline.Instance
}

func (r *terminalReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *terminalReader) Close() error {
	return r.rl.Close()
}

type scriptReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewScriptReader reads answers from a pipe or file and echoes prompts to out.
func NewScriptReader(in io.Reader, out io.Writer) LineReader {
	return &scriptReader{in: bufio.NewReader(in), out: out}
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *scriptReader) Close() error {
	return nil
}
