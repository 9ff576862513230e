// Package cmd provides CLI command implementations for AuthPilot.
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/authpilot/authpilot/internal/auth/redirect"
)

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// LoginOptions controls how the interactive login command runs.
type LoginOptions struct {
	// NoBrowser suppresses the automatic browser launch; the authorization
	// URL is printed for the user to open manually.
	NoBrowser bool
	// Manual skips the loopback listener entirely and reads the pasted
	// callback URL from stdin.
	Manual bool
}

// stdinPrompt returns a PromptFunc that writes the prompt and reads one line
// from r. EOF maps to io.EOF so handlers can treat it as cancellation.
func stdinPrompt(r io.Reader) redirect.PromptFunc {
	reader := bufio.NewReader(r)
	return func(prompt string) (string, error) {
		fmt.Print(prompt)
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return "", err
		}
		return line, nil
	}
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// maskSecret shortens a credential for display so status output never leaks
// the full value.
func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
