package validation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jetfriend/jetfriend-api/internal/types"
)

func TestContactVerifier_NoContactInfo(t *testing.T) {
	v := NewContactVerifier(NewURLChecker(testLogger()), time.Second, testLogger())
	result := v.Verify(context.Background(), "", "")

	assert.Equal(t, types.CheckContact, result.Kind)
	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.SubScore)
	assert.Equal(t, "no contact info", result.Detail)
}

func TestContactVerifier_PhoneOnly(t *testing.T) {
	v := NewContactVerifier(NewURLChecker(testLogger()), time.Second, testLogger())

	result := v.Verify(context.Background(), "+81-3-3433-5111", "")
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.SubScore)

	result = v.Verify(context.Background(), "12", "")
	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.SubScore)
}

func TestContactVerifier_WebsiteOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := NewContactVerifier(NewURLChecker(testLogger()), time.Second, testLogger())
	result := v.Verify(context.Background(), "", srv.URL)

	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.SubScore)
}

func TestContactVerifier_MeanOfApplicableChecks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := NewContactVerifier(NewURLChecker(testLogger()), time.Second, testLogger())
	// Valid phone, dead website: mean of 1.0 and 0.0.
	result := v.Verify(context.Background(), "(212) 555-0123", srv.URL)

	assert.Equal(t, 0.5, result.SubScore)
	assert.True(t, result.Passed)
}

func TestValidatePhoneFormat(t *testing.T) {
	cases := []struct {
		phone     string
		wantValid bool
		formatted string
	}{
		{"+81-3-3433-5111", true, "+81334335111"},
		{"+1 (212) 555-0123", true, "+12125550123"},
		{"(212) 555-0123", true, "+12125550123"},
		{"1-212-555-0123", true, "+12125550123"},
		{"+12", false, ""},
		{"555-0123", false, ""},
		{"", false, ""},
		{"not a phone", false, ""},
	}
	for _, tc := range cases {
		formatted, ok := validatePhoneFormat(tc.phone)
		assert.Equal(t, tc.wantValid, ok, "phone %q", tc.phone)
		if tc.wantValid {
			assert.Equal(t, tc.formatted, formatted, "phone %q", tc.phone)
		}
	}
}
