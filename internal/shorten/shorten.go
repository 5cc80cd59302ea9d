// Package shorten is the client for the URL-shortening collaborator.
// Shortening is strictly best effort: any transport error, bad status, or
// empty response falls back to the original URL.
package shorten

import (
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

const requestTimeout = 3 * time.Second

type Client struct {
	endpoint string
	client   *http.Client
}

// New creates a shortener client. An empty endpoint yields a pass-through
// client.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Shorten posts the URL to the shortening service and returns the short
// form, or the original URL when the service is unavailable or answers
// with anything unusable.
func (c *Client) Shorten(url string) string {
	if c == nil || c.endpoint == "" || url == "" {
		return url
	}

	resp, err := c.client.PostForm(c.endpoint, neturl.Values{"url": {url}})
	if err != nil {
		return url
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return url
	}

	// Created responses carry the short URL in the Location header,
	// plain responses in the body.
	if loc := resp.Header.Get("Location"); loc != "" {
		return loc
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return url
	}

	short := strings.TrimSpace(string(body))
	if short == "" || strings.ContainsAny(short, " \n") {
		return url
	}
	return short
}
