// Package main provides the entry point for the AuthPilot CLI.
// It drives the OAuth2 authorization code flow with PKCE against the
// configured provider and manages the locally provisioned client identifier.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/authpilot/authpilot/internal/cmd"
	"github.com/authpilot/authpilot/internal/config"
	"github.com/authpilot/authpilot/internal/logging"
	"github.com/authpilot/authpilot/internal/misc"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	Version           = "dev"
	Commit            = "none"
	BuildDate         = "unknown"
	DefaultConfigPath = ""
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
}

// main parses command-line flags, loads configuration, and runs the
// requested command (login, status, or client-id management).
func main() {
	fmt.Printf("AuthPilot Version: %s, Commit: %s, BuiltAt: %s\n", Version, Commit, BuildDate)

	var login bool
	var manual bool
	var noBrowser bool
	var showStatus bool
	var showVersion bool
	var setClientID string
	var clearClientID bool
	var configPath string
	var jsonOutput bool
	var quietMode bool
	var verboseMode bool

	flag.BoolVar(&login, "login", false, "Sign in via the OAuth2 authorization code flow")
	flag.BoolVar(&manual, "manual", false, "Skip the local callback server and paste the callback URL instead")
	flag.BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically for OAuth")
	flag.BoolVar(&showStatus, "status", false, "Show provisioning and endpoint status and exit")
	flag.BoolVar(&showVersion, "version", false, "Show AuthPilot version and exit")
	flag.StringVar(&setClientID, "set-client-id", "", "Store the OAuth client identifier in the secret store and exit")
	flag.BoolVar(&clearClientID, "clear-client-id", false, "Remove the stored OAuth client identifier and exit")
	flag.StringVar(&configPath, "config", DefaultConfigPath, "Configure File Path")
	flag.BoolVar(&jsonOutput, "json", false, "Output in JSON format (overrides --quiet)")
	flag.BoolVar(&quietMode, "quiet", false, "Run in quiet mode (overrides --verbose)")
	flag.BoolVar(&verboseMode, "verbose", false, "Run in verbose mode")

	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Errorf("failed to get working directory: %v", err)
		return
	}

	// Load environment variables from .env if present.
	if errLoad := godotenv.Load(filepath.Join(wd, ".env")); errLoad != nil {
		if !errors.Is(errLoad, os.ErrNotExist) {
			log.WithError(errLoad).Warn("failed to load .env file")
		}
	}

	// Determine and load the configuration file. A missing config file is
	// bootstrapped from the bundled template when one is available.
	configFilePath := configPath
	if configFilePath == "" {
		configFilePath = filepath.Join(wd, "config.yaml")
	}
	if _, statErr := os.Stat(configFilePath); errors.Is(statErr, os.ErrNotExist) {
		examplePath := filepath.Join(wd, "config.example.yaml")
		if _, errExample := os.Stat(examplePath); errExample == nil {
			if errCopy := misc.CopyConfigTemplate(examplePath, configFilePath); errCopy != nil {
				log.Errorf("failed to bootstrap config from template: %v", errCopy)
				return
			}
			log.Infof("config initialized from template: %s", configFilePath)
		}
	}

	cfg, err := config.LoadConfigOptional(configFilePath, true)
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return
	}

	// Perform basic semantic validation of the loaded configuration.
	if warnings, errValidate := config.ValidateConfig(cfg); errValidate != nil {
		log.Errorf("invalid configuration: %v", errValidate)
		return
	} else if len(warnings) > 0 {
		for _, w := range warnings {
			log.Warnf("config warning: %s", w)
		}
	}

	if err = logging.ConfigureLogOutput(cfg); err != nil {
		log.Errorf("failed to configure log output: %v", err)
		return
	}

	// CLI flags override config-based log level
	if quietMode {
		logging.SetLogLevel("quiet")
	} else if verboseMode {
		logging.SetLogLevel("verbose")
	}

	options := &cmd.LoginOptions{
		NoBrowser: noBrowser,
		Manual:    manual,
	}

	if showVersion {
		// Version already printed at startup, just exit
		return
	} else if setClientID != "" {
		if err := cmd.SetClientID(cfg, setClientID); err != nil {
			log.Errorf("set-client-id failed: %v", err)
			os.Exit(1)
		}
		return
	} else if clearClientID {
		if err := cmd.ClearClientID(cfg); err != nil {
			log.Errorf("clear-client-id failed: %v", err)
			os.Exit(1)
		}
		return
	} else if showStatus {
		if err := cmd.ShowStatus(cfg, jsonOutput); err != nil {
			log.Errorf("status failed: %v", err)
			os.Exit(1)
		}
		return
	} else if login {
		if err := cmd.DoLogin(cfg, options); err != nil {
			os.Exit(1)
		}
		return
	}

	flag.Usage()
}
