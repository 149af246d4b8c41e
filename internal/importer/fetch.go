package importer

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"geonest/internal/config"
)

// FetchCSV downloads the body of rawURL for a URL-based import. Size and
// timeout limits come from the import config; an optional SOCKS5 egress
// proxy is honored when configured.
func FetchCSV(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid import url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported import url scheme %q", parsed.Scheme)
	}

	cfg := config.GetConfig().Import
	timeout := time.Duration(cfg.FetchTimeout) * time.Millisecond

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	transport, err := createTransport(cfg.Socks5Proxy, timeout)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "geonest/1.0")

	client := &http.Client{Transport: transport}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("import fetch status %d", resp.StatusCode)
	}

	// Read one byte past the limit so an oversized body is detectable.
	body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxFetchBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > cfg.MaxFetchBytes {
		return "", fmt.Errorf("import body exceeds %d bytes", cfg.MaxFetchBytes)
	}

	return string(body), nil
}

func createTransport(socks5Addr string, timeout time.Duration) (*http.Transport, error) {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		DisableKeepAlives:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if socks5Addr != "" {
		socksDialer, err := proxy.SOCKS5("tcp", socks5Addr, nil, &net.Dialer{
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return socksDialer.Dial(network, addr)
		}
	}

	return transport, nil
}
