package console

import (
	"fmt"
	"io"
)

// Script is a Prompter that replays canned answers. Each prompt label is
// written to the output stream so transcripts read like a real session.
// Once the answers run out every prompt returns io.EOF.
type Script struct {
	out     io.Writer
	answers []string

	// Labels records every prompt label in order
	Labels []string
}

// NewScript creates a Script that answers prompts with answers, in order
func NewScript(out io.Writer, answers ...string) *Script {
	return &Script{out: out, answers: answers}
}

// Prompt returns the next canned answer
func (s *Script) Prompt(label string) (string, error) {
	s.Labels = append(s.Labels, label)
	if s.out != nil {
		fmt.Fprint(s.out, label)
	}
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	if s.out != nil {
		fmt.Fprintln(s.out)
	}
	return next, nil
}

// PromptSecret behaves like Prompt
func (s *Script) PromptSecret(label string) (string, error) {
	return s.Prompt(label)
}

// Remaining returns how many answers have not been consumed
func (s *Script) Remaining() int {
	return len(s.answers)
}
