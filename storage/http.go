package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/crosstool-cache/ccwrap/ccerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// httpWriter is the Writer returned by HTTPBlobStore.StartPut — just an
// in-memory buffer, per §4.2 ("Just hand back an in-memory buffer").
type httpWriter struct {
	buf bytes.Buffer
}

func (w *httpWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *httpWriter) Bytes() []byte               { return w.buf.Bytes() }

// HTTPBlobStore is a Backend reached over plain HTTP: GET/PUT against
// {BaseURL}/{fanout(key)}. It is deliberately the thinnest client that
// satisfies the boundary contract — the real object-store wire protocol
// (auth, multipart, retries, signing) is an explicit spec Non-goal, so
// this is not a cloud-SDK integration, just a get/put adapter any
// blob-serving origin can sit behind.
type HTTPBlobStore struct {
	BaseURL string
	Client  *http.Client
	Log     zerolog.Logger
}

// NewHTTPBlobStore constructs a backend against baseURL, using
// http.DefaultClient if client is nil. Every warning this backend logs
// goes through log — the same injected-logger pattern Logging uses,
// rather than the package-global logger — so a caller that configures
// its own logger (level, writer) sees storage's own transport warnings
// through it too. Pass zerolog.Nop() for a silent backend.
func NewHTTPBlobStore(baseURL string, client *http.Client, log zerolog.Logger) *HTTPBlobStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBlobStore{BaseURL: baseURL, Client: client, Log: log}
}

func (s *HTTPBlobStore) url(key string) (string, error) {
	path, err := FanOutPath(key)
	if err != nil {
		return "", err
	}
	return s.BaseURL + "/" + path, nil
}

// Get fetches the blob at {BaseURL}/{fanout(key)}. A 404 is a plain
// Miss; any other transport-level failure (including a status other
// than 200, which this adapter cannot reliably distinguish from a true
// not-found) is logged and collapsed to Miss — the direct analogue of
// the original backend's
// warn!("Got AWS error: {:?}", e) / Cache::Miss behavior.
func (s *HTTPBlobStore) Get(ctx context.Context, key string) GetResult {
	u, err := s.url(key)
	if err != nil {
		return GetResult{Outcome: ErrorOutcome, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return GetResult{Outcome: ErrorOutcome, Err: errors.Wrap(err, "storage: building get request")}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Log.Warn().Err(err).Str("key", key).Msg("storage: transport error on get, treating as miss")
		return GetResult{Outcome: Miss}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return GetResult{Outcome: Miss}
	}
	if resp.StatusCode != http.StatusOK {
		s.Log.Warn().Int("status", resp.StatusCode).Str("key", key).Msg("storage: unexpected status on get, treating as miss")
		return GetResult{Outcome: Miss}
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		// This is the "cached data is bad" case — a local read
		// failure after a successful response, so it surfaces as
		// Error rather than being folded into Miss.
		return GetResult{Outcome: ErrorOutcome, Err: errors.Wrap(err, "storage: reading get response body")}
	}
	return GetResult{Outcome: Hit, Blob: blob}
}

func (s *HTTPBlobStore) StartPut(_ context.Context, _ string) (Writer, error) {
	return &httpWriter{}, nil
}

func (s *HTTPBlobStore) FinishPut(ctx context.Context, key string, w Writer) error {
	u, err := s.url(key)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(w.Bytes()))
	if err != nil {
		return ccerr.Wrap(ccerr.StorageIOError, errors.Wrap(err, "storage: building put request"))
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return ccerr.Wrap(ccerr.StorageIOError, errors.Wrap(err, "storage: put request failed"))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ccerr.Wrap(ccerr.StorageIOError, fmt.Errorf("storage: put returned status %d", resp.StatusCode))
	}
	return nil
}
