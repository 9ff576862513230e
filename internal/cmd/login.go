package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/authpilot/authpilot/internal/auth/oauth"
	"github.com/authpilot/authpilot/internal/auth/redirect"
	"github.com/authpilot/authpilot/internal/config"
	"github.com/authpilot/authpilot/internal/controller"
	"github.com/authpilot/authpilot/internal/secret"
	log "github.com/sirupsen/logrus"
)

// DoLogin runs one interactive authorization code flow and reports the
// outcome. The access token stays in process memory; nothing is written to
// disk, so the session ends with the process.
func DoLogin(cfg *config.Config, options *LoginOptions) error {
	if options == nil {
		options = &LoginOptions{}
	}

	secrets, err := secret.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open secret store: %w", err)
	}

	var handler redirect.Handler
	if options.Manual {
		handler = redirect.NewPrompt(cfg.OAuth.RedirectURI, stdinPrompt(os.Stdin))
	} else {
		loopback, errListen := redirect.NewLoopback(cfg.OAuth.RedirectURI, redirect.LoopbackOptions{
			Timeout:   cfg.CallbackTimeout(),
			NoBrowser: options.NoBrowser,
			Prompt:    stdinPrompt(os.Stdin),
		})
		if errListen != nil {
			return fmt.Errorf("failed to prepare callback listener: %w", errListen)
		}
		handler = loopback
	}

	ctrl := controller.New(cfg, handler, secrets)

	states, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()
	go func() {
		for state := range states {
			log.Debugf("auth state: authenticated=%t last_error=%q", state.Authenticated, state.LastError)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = ctrl.Login(ctx); err != nil {
		fmt.Println(oauth.GetUserFriendlyMessage(err))
		return err
	}

	state := ctrl.State()
	if state.Identity != nil {
		switch {
		case state.Identity.Email != "":
			fmt.Printf("Signed in as %s\n", state.Identity.Email)
		case state.Identity.Subject != "":
			fmt.Printf("Signed in as subject %s\n", state.Identity.Subject)
		}
	}
	fmt.Println("Authentication successful!")
	fmt.Println("The access token is held in memory only; it is gone when this process exits.")
	return nil
}
