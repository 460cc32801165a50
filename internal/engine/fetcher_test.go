package engine_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// MockFetcher simulates the network layer for importer tests.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// -----------------------------------------------------------------------------
// HTTPFetcher
// -----------------------------------------------------------------------------

// TestHTTPFetcher_Fetch_Success checks headers (User-Agent, Basic Auth) and body integrity.
func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	const body = "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nTEL:1234567890\nEND:VCARD"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "alice", "s3cret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
			assert.Nil(t, rc)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestHTTPFetcher_Fetch_RejectsBadURLs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"Control character", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP scheme", "ftp://example.com/contacts.vcf", config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewHTTPFetcher().Fetch(context.Background(), tt.url, "", "")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// -----------------------------------------------------------------------------
// Importer
// -----------------------------------------------------------------------------

const twoCards = `BEGIN:VCARD
VERSION:3.0
FN:John Doe
TEL;TYPE=cell:050-123-4567
BDAY:1990-06-15
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Jane
TEL:+33 1 23
END:VCARD
`

func TestImporter_Web(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/book.vcf", "alice", "pw").
		Return(io.NopCloser(strings.NewReader(twoCards)), nil)

	im := &engine.Importer{Fetcher: fetcher}
	records, stats, err := im.Import(context.Background(), engine.Source{
		Location: "https://dav.example.com/book.vcf",
		User:     "alice",
		Pass:     "pw",
	})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, addressbook.Name("John-Doe"), records[0].Name(), "Spaces fold into a single token")
	assert.Equal(t, []addressbook.PhoneNumber{"0501234567"}, records[0].Phones())
	b, ok := records[0].Birthday()
	assert.True(t, ok)
	assert.Equal(t, "15.06.1990", b.String())

	assert.Empty(t, records[1].Phones(), "Non 10-digit numbers are dropped")
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 1, stats.SkippedPhones)
	fetcher.AssertExpectations(t)
}

func TestImporter_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book"+config.ExtVCF)
	require.NoError(t, os.WriteFile(path, []byte(twoCards), config.FilePermUserRW))

	im := &engine.Importer{}
	records, _, err := im.Import(context.Background(), engine.Source{Location: path})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestImporter_Errors(t *testing.T) {
	im := &engine.Importer{}

	_, _, err := im.Import(context.Background(), engine.Source{})
	assert.ErrorContains(t, err, config.ErrSourceEmpty)

	_, _, err = im.Import(context.Background(), engine.Source{Location: filepath.Join(t.TempDir(), "missing.vcf")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	networkErr := errors.New("network unreachable")
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, networkErr)
	im.Fetcher = fetcher

	_, _, err = im.Import(context.Background(), engine.Source{Location: "http://bad.example.com"})
	assert.ErrorIs(t, err, networkErr)
}

func TestImporter_ContextCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.vcf")
	require.NoError(t, os.WriteFile(path, []byte(twoCards), config.FilePermUserRW))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := (&engine.Importer{}).Import(ctx, engine.Source{Location: path})
	assert.ErrorIs(t, err, context.Canceled)
}
