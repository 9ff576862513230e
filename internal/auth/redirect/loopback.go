package redirect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/authpilot/authpilot/internal/browser"
	"github.com/authpilot/authpilot/internal/misc"
	"github.com/authpilot/authpilot/internal/util"
	log "github.com/sirupsen/logrus"
)

const (
	defaultCallbackTimeout = 5 * time.Minute
	promptFallbackDelay    = 15 * time.Second

	loginSuccessHTML = "<html><body><h1>Authentication successful!</h1><p>You can close this window.</p></body></html>"
	loginFailedHTML  = "<html><body><h1>Authentication failed</h1><p>Please check the CLI output.</p></body></html>"
)

// LoopbackOptions tunes the loopback handler.
type LoopbackOptions struct {
	// Timeout bounds the wait for the provider callback. Zero means the
	// default of five minutes.
	Timeout time.Duration
	// NoBrowser prints the authorization URL instead of opening a browser.
	NoBrowser bool
	// Prompt, when set, offers a manual paste fallback while the local
	// server keeps waiting for the callback.
	Prompt PromptFunc
}

// Loopback serves the redirect URI on the local interface and captures the
// first provider callback that arrives.
type Loopback struct {
	redirectURI string
	port        int
	path        string
	timeout     time.Duration
	noBrowser   bool
	prompt      PromptFunc

	server     *http.Server
	resultChan chan string
	errorChan  chan error
	mu         sync.Mutex
	running    bool
}

// NewLoopback builds a loopback handler for an http redirect URI such as
// http://localhost:8315/oauth/callback.
func NewLoopback(redirectURI string, opts LoopbackOptions) (*Loopback, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redirect URI: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "http") {
		return nil, fmt.Errorf("loopback redirect URI must use http, got %q", u.Scheme)
	}

	port := 80
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redirect URI port %q: %w", p, err)
		}
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallbackTimeout
	}

	return &Loopback{
		redirectURI: redirectURI,
		port:        port,
		path:        path,
		timeout:     timeout,
		noBrowser:   opts.NoBrowser,
		prompt:      opts.Prompt,
		resultChan:  make(chan string, 1),
		errorChan:   make(chan error, 1),
	}, nil
}

// Authenticate starts the callback server, directs the user to the
// authorization URL and waits for the provider to redirect back.
func (l *Loopback) Authenticate(ctx context.Context, authURL, expectedScheme string) (string, error) {
	if !strings.EqualFold(expectedScheme, "http") {
		return "", fmt.Errorf("loopback handler cannot serve %q redirect URIs", expectedScheme)
	}

	if err := l.start(); err != nil {
		return "", err
	}
	defer l.stop()

	l.openAuthorizationPage(authURL)
	fmt.Println("Waiting for authentication callback...")

	timeoutTimer := time.NewTimer(l.timeout)
	defer timeoutTimer.Stop()

	var manualPromptTimer *time.Timer
	var manualPromptC <-chan time.Time
	if l.prompt != nil {
		manualPromptTimer = time.NewTimer(promptFallbackDelay)
		manualPromptC = manualPromptTimer.C
		defer manualPromptTimer.Stop()
	}

	for {
		select {
		case raw := <-l.resultChan:
			return raw, nil
		case err := <-l.errorChan:
			return "", err
		case <-manualPromptC:
			manualPromptC = nil
			manualPromptTimer.Stop()
			// The callback may have landed while the prompt was being
			// offered; prefer it over manual input.
			select {
			case raw := <-l.resultChan:
				return raw, nil
			default:
			}
			input, errPrompt := l.prompt("Paste the callback URL (or press Enter to keep waiting): ")
			if errPrompt != nil {
				if errors.Is(errPrompt, io.EOF) {
					return "", ErrUserCancelled
				}
				return "", errPrompt
			}
			raw, errParse := misc.ParseOAuthCallback(input, l.redirectURI)
			if errParse != nil {
				return "", errParse
			}
			if raw == "" {
				continue
			}
			return raw, nil
		case <-timeoutTimer.C:
			return "", fmt.Errorf("timed out waiting for authentication callback")
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (l *Loopback) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return fmt.Errorf("callback server is already running")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("failed to listen on callback port %d: %w", l.port, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, l.handleCallback)

	l.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	l.running = true

	go func(srv *http.Server) {
		if errServe := srv.Serve(listener); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			l.sendError(fmt.Errorf("callback server failed: %w", errServe))
		}
	}(l.server)

	return nil
}

func (l *Loopback) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running || l.server == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = l.server.Shutdown(shutdownCtx)

	l.running = false
	l.server = nil
}

func (l *Loopback) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	l.sendResult("http://" + r.Host + r.URL.RequestURI())

	query := r.URL.Query()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if query.Get("code") != "" && query.Get("error") == "" {
		fmt.Fprint(w, loginSuccessHTML)
	} else {
		fmt.Fprint(w, loginFailedHTML)
	}
}

func (l *Loopback) sendResult(raw string) {
	select {
	case l.resultChan <- raw:
	default:
		log.Warn("Callback result channel is full, result dropped")
	}
}

func (l *Loopback) sendError(err error) {
	select {
	case l.errorChan <- err:
	default:
		log.Warnf("Callback error channel is full, error dropped: %v", err)
	}
}

func (l *Loopback) openAuthorizationPage(authURL string) {
	if l.noBrowser {
		util.PrintSSHTunnelInstructions(l.port)
		fmt.Printf("Visit the following URL to continue authentication:\n%s\n", authURL)
		return
	}

	fmt.Println("Opening browser for authentication")
	if !browser.IsAvailable() {
		log.Warn("No browser available; please open the URL manually")
		util.PrintSSHTunnelInstructions(l.port)
		fmt.Printf("Visit the following URL to continue authentication:\n%s\n", authURL)
	} else if err := browser.OpenURL(authURL); err != nil {
		log.Warnf("Failed to open browser automatically: %v", err)
		util.PrintSSHTunnelInstructions(l.port)
		fmt.Printf("Visit the following URL to continue authentication:\n%s\n", authURL)
	}
}
