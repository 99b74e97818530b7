package fuzzy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoOptions is returned by Select when there is nothing to choose from
var ErrNoOptions = errors.New("no options available")

// Option represents a selectable option in the fuzzy finder
type Option struct {
	Value       string
	Description string
}

// label is the single-line form shown to the user
func (o Option) label() string {
	if o.Description == "" {
		return o.Value
	}
	return o.Value + "  │  " + o.Description
}

// Finder is a line-based picker. Typing a number selects that entry, any
// other text narrows the list down.
type Finder struct {
	prompt  string
	options []Option
	in      io.Reader
	out     io.Writer
}

// New creates a new fuzzy finder reading from stdin and writing to stdout
func New(prompt string) *Finder {
	return NewWithIO(prompt, os.Stdin, os.Stdout)
}

// NewWithIO creates a finder on the given streams
func NewWithIO(prompt string, in io.Reader, out io.Writer) *Finder {
	return &Finder{
		prompt:  prompt,
		options: make([]Option, 0),
		in:      in,
		out:     out,
	}
}

// AddOption adds an option to the fuzzy finder
func (f *Finder) AddOption(value, description string) {
	f.options = append(f.options, Option{
		Value:       value,
		Description: description,
	})
}

// GetOptions returns all available options
func (f *Finder) GetOptions() []Option {
	return f.options
}

// Select lists the options and reads lines until one is chosen
func (f *Finder) Select() (string, error) {
	if len(f.options) == 0 {
		return "", ErrNoOptions
	}

	reader := bufio.NewReader(f.in)
	current := f.options

	for {
		fmt.Fprintln(f.out, f.prompt)
		fmt.Fprintln(f.out, strings.Repeat("-", len(f.prompt)))
		for i, option := range current {
			fmt.Fprintf(f.out, "%d. %s\n", i+1, option.label())
		}
		fmt.Fprintf(f.out, "\nSelect (1-%d) or type to filter: ", len(current))

		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if err != nil && input == "" {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			current = f.options
			continue
		}

		if selection, convErr := strconv.Atoi(input); convErr == nil {
			if selection >= 1 && selection <= len(current) {
				return current[selection-1].Value, nil
			}
			fmt.Fprintf(f.out, "Selection %d is out of range (1-%d)\n\n", selection, len(current))
		} else {
			filtered := f.filterOptions(input)
			switch len(filtered) {
			case 0:
				fmt.Fprintf(f.out, "No options match filter: %s\n\n", input)
			case 1:
				fmt.Fprintf(f.out, "Auto-selecting: %s\n", filtered[0].Value)
				return filtered[0].Value, nil
			default:
				current = filtered
			}
		}

		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// filterOptions filters options based on the input string
func (f *Finder) filterOptions(filter string) []Option {
	filter = strings.ToLower(filter)
	var filtered []Option

	for _, option := range f.options {
		if strings.Contains(strings.ToLower(option.Value), filter) ||
			strings.Contains(strings.ToLower(option.Description), filter) {
			filtered = append(filtered, option)
		}
	}

	return filtered
}
