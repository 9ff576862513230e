package util

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	xproxy "golang.org/x/net/proxy"

	"github.com/authpilot/authpilot/internal/config"
)

// SetProxy configures the HTTP client's transport according to the proxy-url
// setting. Supported schemes are http, https, and socks5. On any parse or
// setup failure the client is returned unchanged with a warning, matching
// the setting's advisory nature.
func SetProxy(cfg *config.Config, client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	if cfg == nil || strings.TrimSpace(cfg.ProxyURL) == "" {
		return client
	}

	proxyURL, err := url.Parse(strings.TrimSpace(cfg.ProxyURL))
	if err != nil {
		log.Warnf("ignoring unparseable proxy-url %q: %v", cfg.ProxyURL, err)
		return client
	}

	transport := &http.Transport{}
	switch strings.ToLower(proxyURL.Scheme) {
	case "http", "https":
		transport.Proxy = http.ProxyURL(proxyURL)
	case "socks5":
		var auth *xproxy.Auth
		if proxyURL.User != nil {
			auth = &xproxy.Auth{User: proxyURL.User.Username()}
			if password, ok := proxyURL.User.Password(); ok {
				auth.Password = password
			}
		}
		dialer, errDial := xproxy.SOCKS5("tcp", proxyURL.Host, auth, xproxy.Direct)
		if errDial != nil {
			log.Warnf("ignoring socks5 proxy %q: %v", cfg.ProxyURL, errDial)
			return client
		}
		if contextDialer, ok := dialer.(xproxy.ContextDialer); ok {
			transport.DialContext = contextDialer.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	default:
		log.Warnf("ignoring proxy-url with unsupported scheme %q", proxyURL.Scheme)
		return client
	}

	client.Transport = transport
	return client
}
