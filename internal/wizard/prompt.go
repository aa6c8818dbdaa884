// Package wizard runs the interactive questions that assemble a ResourceRequest
package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theWizardsBaker/sbatch-gen/internal/utils"
)

// ErrInputClosed indicates the operator's input ended before a valid answer
var ErrInputClosed = errors.New("input closed before all questions were answered")

// Prompter reads one line per question from in and writes prompts to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over in and out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Printf writes formatted text to the prompt output
func (p *Prompter) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Println writes a line to the prompt output
func (p *Prompter) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Ask prints label and returns the next input line without its line ending.
// Returns ErrInputClosed once input is exhausted.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err == io.EOF {
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskUntil asks label until check accepts the answer. Each rejection is
// reported and the question repeated; the accepted value is returned.
func (p *Prompter) AskUntil(label string, check func(string) (string, error)) (string, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		value, err := check(answer)
		if err == nil {
			return value, nil
		}
		utils.PrintError("%v", err)
	}
}

// AskYesNo asks a yes/no question; a blank answer returns def
func (p *Prompter) AskYesNo(label string, def bool) (bool, error) {
	suffix := " [y/N]: "
	if def {
		suffix = " [Y/n]: "
	}
	answer, err := p.AskUntil(label+suffix, func(s string) (string, error) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "":
			if def {
				return "y", nil
			}
			return "n", nil
		case "y", "yes":
			return "y", nil
		case "n", "no":
			return "n", nil
		}
		return "", fmt.Errorf("please answer yes or no")
	})
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}
