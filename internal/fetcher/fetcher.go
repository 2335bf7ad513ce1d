// Package fetcher downloads a web page and reduces it to plain text that can
// be fed to the extractor exactly like pasted text.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/logging"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultMaxBytes  = 5 << 20
	defaultUserAgent = "hwk/1.0 (+homework tracker)"
)

// Config controls how pages are fetched
type Config struct {
	Timeout   time.Duration `koanf:"timeout"`
	ProxyURL  string        `koanf:"proxy_url"` // e.g. https://api.allorigins.win/get?url=
	UserAgent string        `koanf:"user_agent"`
	MaxBytes  int64         `koanf:"max_bytes"`
}

// NewDefaultConfig returns direct fetching with a 15s timeout
func NewDefaultConfig() Config {
	return Config{
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
		MaxBytes:  defaultMaxBytes,
	}
}

// Content is the text extracted from a page
type Content struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}

// Fetcher retrieves pages over HTTP
type Fetcher struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
	log    *logging.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithClock sets the time source for Content.Timestamp
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(f *Fetcher) { f.log = log.Named("fetcher") }
}

// New creates a Fetcher, filling zero config values with defaults
func New(cfg Config, opts ...Option) *Fetcher {
	defaults := NewDefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaults.MaxBytes
	}

	f := &Fetcher{
		cfg:    cfg,
		client: &http.Client{},
		now:    time.Now,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawURL and extracts its title and main text.
// Every failure is an *Error carrying the URL and a Kind.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Content, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateURL(rawURL); err != nil {
		return nil, newError(KindInvalidURL, rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	body, err := f.download(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page, err := parsePage(body)
	if err != nil {
		return nil, newError(KindParse, rawURL, err)
	}
	if page.text == "" {
		return nil, newError(KindNoContent, rawURL, nil)
	}

	f.log.Debug("content extracted", zap.String("url", rawURL), zap.Int("length", len(page.text)))

	return &Content{
		Title:     page.title,
		Content:   page.text,
		URL:       rawURL,
		Timestamp: f.now(),
	}, nil
}

// download performs the GET, going through the proxy when one is set
func (f *Fetcher) download(ctx context.Context, rawURL string) (string, error) {
	target := rawURL
	if f.cfg.ProxyURL != "" {
		target = f.cfg.ProxyURL + url.QueryEscape(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", newError(KindInvalidURL, rawURL, err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	f.log.Debug("fetching", zap.String("url", rawURL), zap.Bool("proxy", target != rawURL))

	resp, err := f.client.Do(req)
	if err != nil {
		return "", newError(KindNetwork, rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", newError(KindCORS, rawURL, fmt.Errorf("HTTP error! status: %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", newError(KindNetwork, rawURL, fmt.Errorf("HTTP error! status: %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes))
	if err != nil {
		return "", newError(KindNetwork, rawURL, err)
	}

	if f.cfg.ProxyURL == "" {
		return string(raw), nil
	}

	// The proxy wraps the page as {"contents": "<html>..."}
	var wrapped struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return "", newError(KindParse, rawURL, fmt.Errorf("invalid proxy response: %w", err))
	}
	return wrapped.Contents, nil
}

// validateURL accepts absolute http and https URLs only
func validateURL(rawURL string) error {
	if rawURL == "" {
		return errors.New("URL is empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}

var classroomDomains = []string{
	"classroom.google.com",
	"canvas.instructure.com",
	"blackboard.com",
	"moodle",
	"schoology.com",
	"edmodo.com",
	"brightspace.com",
}

// IsClassroomURL reports whether the URL looks like a learning platform,
// which usually needs a login and won't fetch anonymously
func IsClassroomURL(rawURL string) bool {
	for _, domain := range classroomDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}
