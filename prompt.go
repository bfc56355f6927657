package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errNoAnswer = errors.New("no answer given")

// prompter asks questions on out and reads one line per answer from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) text(question string) (string, error) {
	fmt.Fprintf(p.out, "? %s ", question)

	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		// A final answer without a trailing newline still counts.
		if line == "" {
			return "", fmt.Errorf("%s: %w", question, errNoAnswer)
		}
	}
	return line, nil
}

func (p *prompter) integer(question string) (int, error) {
	answer, err := p.text(question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", answer)
	}
	return v, nil
}

func (p *prompter) float(question string) (float64, error) {
	answer, err := p.text(question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(answer, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", answer)
	}
	return v, nil
}

func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.text(question + " (y/N)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
