package util

import (
	"fmt"
	"os"
)

// PrintSSHTunnelInstructions tells a user on a remote shell how to forward
// the OAuth callback port to their local machine. It prints nothing when the
// session does not look like SSH.
func PrintSSHTunnelInstructions(port int) {
	if os.Getenv("SSH_CONNECTION") == "" && os.Getenv("SSH_TTY") == "" {
		return
	}
	fmt.Printf("Detected an SSH session. To receive the OAuth callback on this host, open a tunnel from your local machine:\n")
	fmt.Printf("  ssh -L %d:localhost:%d <user>@<this-host>\n", port, port)
	fmt.Printf("Then complete the login in your local browser.\n")
}
