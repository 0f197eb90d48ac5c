package validation

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestURLChecker_PassesOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewURLChecker(testLogger())
	result := checker.Check(context.Background(), srv.URL, 5*time.Second)

	assert.Equal(t, types.CheckURL, result.Kind)
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.SubScore)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Greater(t, result.Elapsed, time.Duration(0))
}

func TestURLChecker_FailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	checker := NewURLChecker(testLogger())
	result := checker.Check(context.Background(), srv.URL, 5*time.Second)

	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.SubScore)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
}

func TestURLChecker_RetriesWithGETWhenHEADRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	checker := NewURLChecker(testLogger())
	result := checker.Check(context.Background(), srv.URL, 5*time.Second)

	assert.True(t, result.Passed)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURLChecker_EmptyURLShortCircuits(t *testing.T) {
	checker := NewURLChecker(testLogger())

	result := checker.Check(context.Background(), "", 5*time.Second)
	assert.False(t, result.Passed)
	assert.Equal(t, "no URL provided", result.Detail)
	assert.Zero(t, result.Elapsed, "no network call should be made")

	result = checker.Check(context.Background(), "#", 5*time.Second)
	assert.False(t, result.Passed)
}

func TestURLChecker_RejectsNonHTTPScheme(t *testing.T) {
	checker := NewURLChecker(testLogger())
	result := checker.Check(context.Background(), "ftp://example.com/file", 5*time.Second)
	assert.False(t, result.Passed)
	assert.Equal(t, "invalid URL format", result.Detail)
}

func TestURLChecker_TimeoutIsFailureNotHang(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	checker := NewURLChecker(testLogger())
	start := time.Now()
	result := checker.Check(context.Background(), srv.URL, 100*time.Millisecond)

	assert.False(t, result.Passed)
	assert.Contains(t, result.Detail, "probe failed")
	assert.Less(t, time.Since(start), time.Second, "check must respect its timeout")
}

func TestURLChecker_ConnectionRefusedIsFailure(t *testing.T) {
	checker := NewURLChecker(testLogger())
	// Port 1 is essentially never listening.
	result := checker.Check(context.Background(), "http://127.0.0.1:1/", 2*time.Second)
	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.SubScore)
}
