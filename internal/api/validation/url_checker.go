package validation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ URLChecker = (*URLCheckerImpl)(nil)

// URLChecker issues lightweight reachability probes against candidate URLs.
// A failed probe is encoded in the result, never returned as an error.
type URLChecker interface {
	Check(ctx context.Context, rawURL string, timeout time.Duration) types.ValidationResult
}

type URLCheckerImpl struct {
	client *http.Client
	logger *slog.Logger
}

func NewURLChecker(logger *slog.Logger) *URLCheckerImpl {
	return &URLCheckerImpl{
		client: &http.Client{
			// Per-probe deadline is applied via the request context so a
			// single slow URL cannot hold the whole request.
			CheckRedirect: nil, // follow redirects
		},
		logger: logger,
	}
}

// Check probes rawURL with a HEAD request and classifies it live or dead.
// 2xx passes; any other status, timeout or connection failure fails with
// sub-score 0 and the reason in Detail. A missing or malformed URL
// short-circuits without a network call. Servers that reject HEAD outright
// get one GET retry reading at most 1 KiB of body.
func (c *URLCheckerImpl) Check(ctx context.Context, rawURL string, timeout time.Duration) types.ValidationResult {
	result := types.ValidationResult{Kind: types.CheckURL}

	if rawURL == "" || rawURL == "#" {
		result.Detail = "no URL provided"
		return result
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		result.Detail = "invalid URL format"
		return result
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	status, err := c.probe(probeCtx, http.MethodHead, rawURL)
	if err == nil && status >= http.StatusBadRequest {
		// Some servers refuse HEAD; confirm with a bounded GET.
		status, err = c.probe(probeCtx, http.MethodGet, rawURL)
	}
	result.Elapsed = time.Since(start)

	if err != nil {
		result.Detail = "probe failed: " + err.Error()
		return result
	}

	result.StatusCode = status
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		result.Passed = true
		result.SubScore = 1.0
		return result
	}

	result.Detail = http.StatusText(status)
	return result
}

func (c *URLCheckerImpl) probe(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "JetFriend/1.0 (+link verification)")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if method == http.MethodGet {
		// Read at most 1 KiB to confirm the body is actually served.
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
	}
	return resp.StatusCode, nil
}
