package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// VCardFetcher defines the contract for retrieving vCard data.
// This interface allows for mocking in tests and decoupling from the network layer.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements VCardFetcher using the standard net/http library.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch retrieves vCard data from a remote URL.
// Query parameters are stripped from logged URLs since they may carry tokens.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug("Initiating vCard download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser pairs a size-limited reader with the original body closer.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// Source locates a vCard file: a local path or an http(s) URL.
type Source struct {
	Location string
	User     string
	Pass     string
}

// IsRemote reports whether the location is an http(s) URL.
func (s Source) IsRemote() bool {
	return strings.HasPrefix(s.Location, config.SchemeHTTP+"://") ||
		strings.HasPrefix(s.Location, config.SchemeHTTPS+"://")
}

// Importer loads contacts from a Source.
type Importer struct {
	Fetcher VCardFetcher
}

// Import opens src and decodes its cards into records.
func (im *Importer) Import(ctx context.Context, src Source) ([]*addressbook.Record, ImportStats, error) {
	start := time.Now()

	reader, err := im.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ImportStats{}, ctx.Err()
		}
		return nil, ImportStats{}, err
	}
	defer func() { _ = reader.Close() }()

	records, stats, err := DecodeRecords(ctx, reader)
	if err != nil {
		return nil, stats, err
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, stats.Imported,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return records, stats, nil
}

func (im *Importer) open(ctx context.Context, src Source) (io.ReadCloser, error) {
	if src.Location == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if src.IsRemote() {
		if im.Fetcher == nil {
			im.Fetcher = NewHTTPFetcher()
		}
		return im.Fetcher.Fetch(ctx, src.Location, src.User, src.Pass)
	}
	return os.Open(src.Location)
}
