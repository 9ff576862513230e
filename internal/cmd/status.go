package cmd

import (
	"fmt"

	"github.com/authpilot/authpilot/internal/config"
	"github.com/authpilot/authpilot/internal/secret"
)

// statusReport is the JSON shape of the status command.
type statusReport struct {
	SecretStore   string `json:"secret-store"`
	ClientID      string `json:"client-id"`
	Provisioned   bool   `json:"provisioned"`
	BaseURL       string `json:"base-url"`
	AuthorizePath string `json:"authorize-path"`
	TokenPath     string `json:"token-path"`
	RedirectURI   string `json:"redirect-uri"`
	Scope         string `json:"scope"`
	ProxyURL      string `json:"proxy-url,omitempty"`
}

// ShowStatus reports provisioning and endpoint configuration. It never
// prints the full client identifier, only a masked form.
func ShowStatus(cfg *config.Config, jsonOutput bool) error {
	secrets, err := secret.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open secret store: %w", err)
	}

	clientID, err := secrets.ClientID()
	if err != nil {
		return fmt.Errorf("failed to read client id: %w", err)
	}

	report := statusReport{
		SecretStore:   cfg.SecretStore,
		ClientID:      maskSecret(clientID),
		Provisioned:   clientID != "",
		BaseURL:       cfg.OAuth.BaseURL,
		AuthorizePath: cfg.OAuth.AuthorizePath,
		TokenPath:     cfg.OAuth.TokenPath,
		RedirectURI:   cfg.OAuth.RedirectURI,
		Scope:         cfg.OAuth.Scope,
		ProxyURL:      cfg.ProxyURL,
	}
	if report.SecretStore == "" {
		report.SecretStore = config.SecretStoreKeyring
	}

	if jsonOutput {
		return outputJSON(report)
	}

	fmt.Printf("\n%s%sAuthPilot Status%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("%s────────────────────────%s\n\n", colorDim, colorReset)

	provisioned := fmt.Sprintf("%sprovisioned%s", colorGreen, colorReset)
	if !report.Provisioned {
		provisioned = fmt.Sprintf("%snot provisioned%s", colorRed, colorReset)
	}
	fmt.Printf("  %-15s %s (%s)\n", "Client ID:", report.ClientID, provisioned)
	fmt.Printf("  %-15s %s\n", "Secret store:", report.SecretStore)
	fmt.Printf("  %-15s %s\n", "Provider:", report.BaseURL)
	fmt.Printf("  %-15s %s\n", "Authorize:", report.AuthorizePath)
	fmt.Printf("  %-15s %s\n", "Token:", report.TokenPath)
	fmt.Printf("  %-15s %s\n", "Redirect URI:", report.RedirectURI)
	fmt.Printf("  %-15s %s\n", "Scope:", report.Scope)
	if report.ProxyURL != "" {
		fmt.Printf("  %-15s %s\n", "Proxy:", report.ProxyURL)
	}
	if !report.Provisioned {
		fmt.Printf("\n  %sRun with -set-client-id <id> to provision this machine.%s\n", colorYellow, colorReset)
	}
	fmt.Println()
	return nil
}
