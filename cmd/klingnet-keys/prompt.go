package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecret reads one line from stdin. On a terminal the input is hidden.
func (a *app) readSecret(prompt string) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.errOut, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.errOut) // newline after hidden input
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if a.reader == nil {
		a.reader = bufio.NewReader(a.in)
	}
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readMnemonic returns the phrase from the flag or prompts for it.
func (a *app) readMnemonic(fromFlag string) (string, error) {
	if fromFlag != "" {
		a.ui.warning(a.errOut, "--mnemonic may be recorded in shell history")
		return fromFlag, nil
	}
	phrase, err := a.readSecret("Mnemonic: ")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(phrase) == "" {
		return "", fmt.Errorf("empty mnemonic")
	}
	return phrase, nil
}
