package fuzzy

import (
	"fmt"
	"io"
	"os"
	"strings"

	fzf "github.com/junegunn/fzf/src"
	"golang.org/x/term"
)

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// Selector picks one value out of a list
type Selector interface {
	SetOptions(options []Option) error
	SetPrompt(prompt string)
	Select() (string, error)
}

// FzfFinder picks an option with the embedded fzf finder. When fzf cannot
// run, e.g. without a terminal, it falls back to the numbered Finder.
type FzfFinder struct {
	options []Option
	prompt  string
	runner  FzfRunner
	in      io.Reader
	out     io.Writer
}

// NewFzf creates a new fzf-style fuzzy finder
func NewFzf(prompt string) *FzfFinder {
	return NewFzfWithRunner(prompt, &DefaultFzfRunner{})
}

// NewFzfWithRunner creates a new fzf-style fuzzy finder with a custom runner (for testing)
func NewFzfWithRunner(prompt string, runner FzfRunner) *FzfFinder {
	return &FzfFinder{
		prompt:  prompt,
		options: make([]Option, 0),
		runner:  runner,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetIO sets the streams used by the fallback finder
func (f *FzfFinder) SetIO(in io.Reader, out io.Writer) {
	f.in = in
	f.out = out
}

// SetOptions sets the available options for selection
func (f *FzfFinder) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}

	f.options = make([]Option, len(options))
	copy(f.options, options)
	return nil
}

// SetPrompt sets the display prompt
func (f *FzfFinder) SetPrompt(prompt string) {
	f.prompt = prompt
}

// Select runs fzf over the options and returns the chosen value
func (f *FzfFinder) Select() (string, error) {
	if len(f.options) == 0 {
		return "", ErrNoOptions
	}

	args := []string{
		"--prompt=" + f.prompt + " ",
		"--height=10",
		"--layout=default",
		"--no-multi",
		"--cycle",
		"--tiebreak=length",
		"--no-mouse",
		"--border=none",
	}

	opts, err := fzf.ParseOptions(true, args)
	if err != nil {
		return "", fmt.Errorf("failed to parse fzf options: %w", err)
	}

	input := make(chan string, len(f.options))
	for _, option := range f.options {
		input <- option.label()
	}
	close(input)

	// buffered so fzf never blocks on us; drained after Run returns
	output := make(chan string, len(f.options))
	opts.Input = input
	opts.Output = output

	exitCode, err := f.runner.Run(opts)
	if err != nil {
		return f.fallbackSelect()
	}

	if exitCode != fzf.ExitOk {
		return "", fmt.Errorf("fzf selection cancelled or failed")
	}

	var selected string
	select {
	case selected = <-output:
	default:
	}

	selected = strings.TrimSpace(selected)
	if selected == "" {
		return "", fmt.Errorf("no selection made")
	}

	value := strings.TrimSpace(strings.SplitN(selected, "  │  ", 2)[0])
	for _, option := range f.options {
		if option.Value == value {
			return option.Value, nil
		}
	}

	return value, nil
}

// fallbackSelect provides a simple selection for when fzf fails
func (f *FzfFinder) fallbackSelect() (string, error) {
	finder := NewWithIO(f.prompt, f.in, f.out)
	for _, option := range f.options {
		finder.AddOption(option.Value, option.Description)
	}
	return finder.Select()
}

// NewSelector returns an fzf finder on a terminal and the numbered finder
// otherwise.
func NewSelector(prompt string, in io.Reader, out io.Writer) Selector {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		finder := NewFzf(prompt)
		finder.SetIO(in, out)
		return finder
	}
	return &lineSelector{Finder: NewWithIO(prompt, in, out)}
}

// lineSelector adapts Finder to Selector
type lineSelector struct {
	*Finder
}

func (s *lineSelector) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}
	s.options = append([]Option(nil), options...)
	return nil
}

func (s *lineSelector) SetPrompt(prompt string) {
	s.prompt = prompt
}

// Ensure FzfFinder implements the interface
var _ Selector = (*FzfFinder)(nil)
