// Package http builds outbound HTTP clients with pooled transports and
// bounded timeouts.
package http

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a whole request including reading the body.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxIdleConnsPerHost keeps a few warm connections to one API host.
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout closes idle keep-alive connections.
	DefaultIdleConnTimeout = 90 * time.Second
	// DefaultResponseHeaderTimeout bounds the wait for response headers.
	DefaultResponseHeaderTimeout = 5 * time.Second
	// DefaultTLSHandshakeTimeout bounds the TLS handshake.
	DefaultTLSHandshakeTimeout = 5 * time.Second
)

// ClientConfig configures NewClient. Zero fields take the defaults above.
type ClientConfig struct {
	Timeout               time.Duration
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	ResponseHeaderTimeout time.Duration
	TLSHandshakeTimeout   time.Duration
}

// NewClient returns an *http.Client configured from cfg; nil means defaults.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = orDefault(cfg.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost)
	transport.IdleConnTimeout = orDefault(cfg.IdleConnTimeout, DefaultIdleConnTimeout)
	transport.ResponseHeaderTimeout = orDefault(cfg.ResponseHeaderTimeout, DefaultResponseHeaderTimeout)
	transport.TLSHandshakeTimeout = orDefault(cfg.TLSHandshakeTimeout, DefaultTLSHandshakeTimeout)

	return &http.Client{
		Timeout:   orDefault(cfg.Timeout, DefaultTimeout),
		Transport: transport,
	}
}

func orDefault[T int | time.Duration](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
