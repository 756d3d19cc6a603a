// Package rt is a count-only client for the Request Tracker REST 1.0
// interface. It logs in once per probe run, keeps the session cookie, and
// counts tickets matching a caller-supplied TicketSQL query.
package rt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// ErrAuthFailed indicates RT rejected the configured credentials.
var ErrAuthFailed = errors.New("rt: authentication failed")

const restPrefix = "/REST/1.0"

// Client talks to one RT instance. It is not safe for concurrent use; the
// probe runs a single query per invocation.
type Client struct {
	baseURL    string
	user       string
	pass       string
	httpClient *http.Client
	logger     *slog.Logger
	loggedIn   bool
}

// NewClient builds a Client for the RT instance at baseURL. The timeout
// bounds every individual HTTP exchange.
func NewClient(baseURL, user, pass string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("rt: invalid server URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rt: invalid server URL %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("rt: create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		user:    user,
		pass:    pass,
		httpClient: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: newLoggingTransport(logger),
		},
		logger: logger,
	}, nil
}

// Count logs in if needed, runs the ticket search, and returns the number
// of matching tickets. Errors are returned verbatim; the probe never
// retries.
func (c *Client) Count(ctx context.Context, query string) (int, error) {
	if !c.loggedIn {
		if err := c.login(ctx); err != nil {
			return 0, err
		}
		c.loggedIn = true
	}

	searchURL := c.baseURL + restPrefix + "/search/ticket?" + url.Values{
		"query":  {query},
		"format": {"i"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return 0, fmt.Errorf("rt: build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rt: search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("rt: read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rt: search returned HTTP %d", resp.StatusCode)
	}

	return parseSearchBody(string(body))
}

// login posts the credentials form to the REST root. RT answers HTTP 200
// even for bad credentials, so the RT status line in the body is
// authoritative.
func (c *Client) login(ctx context.Context) error {
	form := url.Values{
		"user": {c.user},
		"pass": {c.pass},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+restPrefix+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("rt: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rt: login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rt: read login response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rt: login returned HTTP %d", resp.StatusCode)
	}

	code, status, err := parseStatusLine(string(body))
	if err != nil {
		return fmt.Errorf("rt: login: %w", err)
	}
	if code == http.StatusUnauthorized {
		return ErrAuthFailed
	}
	if code != http.StatusOK {
		return fmt.Errorf("rt: login rejected: %s", status)
	}

	c.logger.Debug("rt login succeeded", "user", c.user)
	return nil
}

// parseStatusLine parses the "RT/<version> <code> <message>" line that
// heads every REST 1.0 response body.
func parseStatusLine(body string) (int, string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(body), "\n")
	line = strings.TrimSpace(line)

	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "RT/") {
		return 0, "", fmt.Errorf("unexpected response header %q", line)
	}

	var code int
	if _, err := fmt.Sscanf(fields[1], "%d", &code); err != nil {
		return 0, "", fmt.Errorf("unexpected status code in header %q", line)
	}
	return code, strings.Join(fields[1:], " "), nil
}

// parseSearchBody counts ticket lines in a format=i search response.
func parseSearchBody(body string) (int, error) {
	code, status, err := parseStatusLine(body)
	if err != nil {
		return 0, fmt.Errorf("rt: search: %w", err)
	}
	if code == http.StatusUnauthorized {
		return 0, ErrAuthFailed
	}
	if code != http.StatusOK {
		return 0, fmt.Errorf("rt: search rejected: %s", status)
	}

	count := 0
	for _, line := range strings.Split(body, "\n")[1:] {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "No matching results.":
			continue
		case strings.HasPrefix(line, "ticket/"):
			count++
		case strings.HasPrefix(line, "Invalid query"):
			return 0, fmt.Errorf("rt: %s", line)
		}
	}
	return count, nil
}
