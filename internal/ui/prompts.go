package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// reader is shared by all prompts so buffered input is not lost between them
func (p *Printer) reader() *bufio.Reader {
	if br, ok := p.In.(*bufio.Reader); ok {
		return br
	}
	br := bufio.NewReader(p.In)
	p.In = br
	return br
}

// IsTerminal reports whether input comes from a terminal
func (p *Printer) IsTerminal() bool {
	file, ok := p.In.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// AskYesNo prompts the user with a yes/no question.
// An empty answer returns defaultYes.
func (p *Printer) AskYesNo(prompt string, defaultYes bool) bool {
	if defaultYes {
		fmt.Fprintf(p.Out, "  %s [Y/n] ", prompt)
	} else {
		fmt.Fprintf(p.Out, "  %s [y/N] ", prompt)
	}

	response, _ := p.reader().ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	if response == "" {
		return defaultYes
	}

	return response == "y" || response == "yes"
}

// AskString prompts for a line of input. An empty answer returns def.
func (p *Printer) AskString(prompt, def string) string {
	if def != "" {
		fmt.Fprintf(p.Out, "  %s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(p.Out, "  %s: ", prompt)
	}

	response, _ := p.reader().ReadString('\n')
	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return response
}

// AskSecret prompts for a value without echoing it on a terminal
func (p *Printer) AskSecret(prompt string) (string, error) {
	fmt.Fprintf(p.Out, "  %s: ", prompt)

	if file, ok := p.In.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	response, err := p.reader().ReadString('\n')
	response = strings.TrimSpace(response)
	if err != nil && response == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return response, nil
}
