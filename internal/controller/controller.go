// Package controller owns the authentication state machine: it runs login
// attempts end to end, publishes state snapshots to observers and hands out
// token-carrying http clients. It is the sole writer of AuthState.
package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/authpilot/authpilot/internal/auth/oauth"
	"github.com/authpilot/authpilot/internal/auth/pkce"
	"github.com/authpilot/authpilot/internal/auth/redirect"
	"github.com/authpilot/authpilot/internal/config"
	"github.com/authpilot/authpilot/internal/secret"
	"github.com/authpilot/authpilot/internal/util"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// ErrSuperseded reports that a newer Login or a Logout took over before this
// attempt finished; its outcome was discarded and the published state was
// not touched.
var ErrSuperseded = errors.New("login attempt superseded")

// Controller runs the authorization code flow and publishes the resulting
// authentication state. Overlapping Login calls follow last-call-wins: each
// call supersedes the one before it, and a superseded attempt can never
// write state, no matter when its callback or token response arrives.
type Controller struct {
	mu               sync.Mutex
	cfg              *config.Config
	httpClient       *http.Client
	handler          redirect.Handler
	clientID         string
	state            AuthState
	session          *authSession
	generation       uint64
	cancelAttempt    context.CancelFunc
	subscribers      map[uint64]chan AuthState
	nextSubscriberID uint64
	history          *stateHistory
}

// attempt carries the per-login material between the locked setup phase and
// the unlocked interactive phase.
type attempt struct {
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	session *authSession
	req     *oauth.Request
}

// New builds a controller wired to the given redirect handler and secret
// store. cfg must be validated. The client identifier is resolved once; a
// missing or unreadable identifier downgrades to an empty string, which the
// provider will reject at authorization time rather than the process failing
// at startup.
func New(cfg *config.Config, handler redirect.Handler, secrets secret.Store) *Controller {
	clientID := ""
	if secrets != nil {
		id, err := secrets.ClientID()
		if err != nil {
			log.Warnf("failed to load client id from secret store: %v", err)
		} else {
			clientID = id
		}
	}
	if clientID == "" {
		log.Warn("no client id provisioned; the provider will reject authorization requests")
	}

	return &Controller{
		cfg:         cfg,
		httpClient:  util.SetProxy(cfg, &http.Client{Timeout: cfg.RequestTimeout()}),
		handler:     handler,
		clientID:    clientID,
		subscribers: make(map[uint64]chan AuthState),
		history:     newStateHistory(defaultHistorySize),
	}
}

// Login runs one complete authorization attempt: fresh PKCE session,
// interactive authorization, callback capture and token exchange. Any prior
// in-flight attempt is superseded and its outcome discarded. The terminal
// outcome is recorded in the published state and returned; a discarded
// attempt returns ErrSuperseded.
func (c *Controller) Login(ctx context.Context) error {
	att, err := c.beginAttempt(ctx)
	defer att.cancel()
	if err != nil {
		return c.finish(att.gen, nil, err)
	}

	logger := log.WithField("attempt_id", att.session.id)
	logger.Debug("starting login attempt")

	authURL, err := oauth.BuildAuthorizationURL(att.req, att.session.codes.CodeChallenge)
	if err != nil {
		return c.finish(att.gen, nil, err)
	}

	expectedScheme := redirectScheme(att.req.RedirectURI)
	logger.Debug("waiting for authorization callback")
	raw, err := c.handler.Authenticate(att.ctx, authURL, expectedScheme)
	if err != nil {
		if errors.Is(err, redirect.ErrUserCancelled) {
			return c.finish(att.gen, nil, oauth.WrapFlowError(oauth.KindAuthenticationFailed, "authentication was cancelled", err))
		}
		return c.finish(att.gen, nil, oauth.NewFlowError(oauth.KindAuthenticationFailed, err.Error()))
	}

	code, err := oauth.ParseCallback(raw, expectedScheme)
	if err != nil {
		return c.finish(att.gen, nil, err)
	}

	logger.Debug("authorization code received, exchanging for token")
	exchangeCtx, cancel := context.WithTimeout(att.ctx, c.cfg.RequestTimeout())
	defer cancel()
	token, err := oauth.ExchangeCode(exchangeCtx, c.httpClient, att.req, code, att.session.codes.CodeVerifier)
	if err != nil {
		return c.finish(att.gen, nil, err)
	}

	if err = c.finish(att.gen, token, nil); err != nil {
		return err
	}
	logger.Info("authentication successful")
	return nil
}

// beginAttempt supersedes any in-flight attempt, creates the new session and
// publishes the attempt-started state. The returned attempt always carries a
// usable gen and cancel, even on error.
func (c *Controller) beginAttempt(ctx context.Context) (*attempt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelAttempt != nil {
		c.cancelAttempt()
	}
	attemptCtx, cancel := context.WithCancel(ctx)
	c.cancelAttempt = cancel
	c.generation++

	att := &attempt{gen: c.generation, ctx: attemptCtx, cancel: cancel}

	codes, err := pkce.Generate()
	if err != nil {
		return att, oauth.WrapFlowError(oauth.KindUnknown, "failed to generate PKCE codes", err)
	}

	att.session = &authSession{id: uuid.NewString(), codes: codes}
	c.session = att.session

	att.req = &oauth.Request{
		BaseURL:       c.cfg.OAuth.BaseURL,
		AuthorizePath: c.cfg.OAuth.AuthorizePath,
		TokenPath:     c.cfg.OAuth.TokenPath,
		ClientID:      c.clientID,
		RedirectURI:   c.cfg.OAuth.RedirectURI,
		Scope:         c.cfg.OAuth.Scope,
	}

	// A new attempt clears the previous failure but keeps any existing
	// token until the attempt resolves.
	c.state.LastError = ""
	c.state.UpdatedAt = time.Now()
	c.publishLocked()

	return att, nil
}

// finish records the terminal outcome of an attempt unless a newer attempt
// or a logout superseded it in the meantime.
func (c *Controller) finish(gen uint64, token *oauth.TokenResponse, ferr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		log.Debug("discarding outcome of superseded login attempt")
		return ErrSuperseded
	}

	if ferr != nil {
		log.Debugf("login attempt failed: %v", ferr)
		c.state = AuthState{LastError: oauth.MessageOf(ferr), UpdatedAt: time.Now()}
		c.publishLocked()
		return ferr
	}

	c.state = AuthState{
		Authenticated: true,
		AccessToken:   token.AccessToken,
		Identity:      oauth.PeekIdentity(token.IDToken),
		UpdatedAt:     time.Now(),
	}
	c.publishLocked()
	return nil
}

// Logout synchronously clears the token and the live session. It supersedes
// any login still in flight and is idempotent. The last recorded error is
// kept for display.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelAttempt != nil {
		c.cancelAttempt()
		c.cancelAttempt = nil
	}
	c.generation++
	c.session = nil
	c.state = AuthState{LastError: c.state.LastError, UpdatedAt: time.Now()}
	c.publishLocked()
}

// State returns a snapshot of the current authentication state.
func (c *Controller) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HTTPClient returns an http client that attaches the current access token
// to outgoing requests, for calling protected resources. It fails when no
// login has completed. The client does not refresh; when the token expires,
// the caller runs Login again.
func (c *Controller) HTTPClient(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	state := c.state
	base := c.httpClient
	c.mu.Unlock()

	if !state.Authenticated {
		return nil, fmt.Errorf("not authenticated")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: state.AccessToken,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(ctx, source), nil
}

func redirectScheme(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return ""
	}
	return u.Scheme
}
