package monitor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"certsentry/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testEvaluator(fetch FetchFunc, now time.Time) *Evaluator {
	e := NewEvaluator(models.DefaultConfig(), testLogger())
	e.fetch = fetch
	e.now = func() time.Time { return now }
	return e
}

func fieldsExpiring(now time.Time, days int) CertFields {
	notAfter := now.AddDate(0, 0, days).Add(time.Hour).Format("2006-01-02 15:04:05")
	return CertFields{notAfterField: notAfter}
}

func TestCheckSiteInvalidURL(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	fetchCalled := false
	e := testEvaluator(func(context.Context, string, string, time.Duration) (CertFields, error) {
		fetchCalled = true
		return nil, nil
	}, now)

	for _, rawURL := range []string{"not a url", "https://", ""} {
		result := e.CheckSite(context.Background(), models.SiteSpec{Name: "bad", URL: rawURL})
		if result.Status != models.StatusError {
			t.Errorf("CheckSite(%q) status = %s, want error", rawURL, result.Status)
		}
		if result.Message != "Invalid URL" {
			t.Errorf("CheckSite(%q) message = %q, want %q", rawURL, result.Message, "Invalid URL")
		}
		if !result.ShouldNotify {
			t.Errorf("CheckSite(%q) should notify on invalid URL", rawURL)
		}
	}
	if fetchCalled {
		t.Error("fetch must not be attempted for an invalid URL")
	}
}

func TestCheckSiteFetchFailure(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "generic network failure",
			err:         errors.New("dial tcp: lookup down.example.com: no such host"),
			wantMessage: "SSL connection failed: dial tcp: lookup down.example.com: no such host",
		},
		{
			name:        "expired certificate aborts handshake",
			err:         errors.New("tls: failed to verify certificate: x509: certificate has expired or is not yet valid"),
			wantMessage: "SSL connection failed: Certificate has expired (unable to retrieve expiry date due to SSL verification failure)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEvaluator(func(context.Context, string, string, time.Duration) (CertFields, error) {
				return nil, tt.err
			}, now)

			result := e.CheckSite(context.Background(), models.SiteSpec{Name: "site", URL: "https://site.example.com"})
			if result.Status != models.StatusError {
				t.Errorf("status = %s, want error", result.Status)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", result.Message, tt.wantMessage)
			}
			if !result.ShouldNotify {
				t.Error("fetch failures must notify")
			}
		})
	}
}

func TestCheckSiteUnparsableDates(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	e := testEvaluator(func(context.Context, string, string, time.Duration) (CertFields, error) {
		return CertFields{"subject": "CN=site.example.com"}, nil
	}, now)

	result := e.CheckSite(context.Background(), models.SiteSpec{Name: "site", URL: "https://site.example.com"})
	if result.Status != models.StatusError {
		t.Errorf("status = %s, want error", result.Status)
	}
	if result.Message != "Could not parse certificate dates" {
		t.Errorf("message = %q, want %q", result.Message, "Could not parse certificate dates")
	}
}

func TestCheckSiteClassified(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	e := testEvaluator(func(context.Context, string, string, time.Duration) (CertFields, error) {
		return fieldsExpiring(now, 30), nil
	}, now)

	result := e.CheckSite(context.Background(), models.SiteSpec{Name: "site", URL: "https://site.example.com"})
	if result.Status != models.StatusValid {
		t.Fatalf("status = %s, want valid", result.Status)
	}
	if result.DaysUntilExpiry == nil || *result.DaysUntilExpiry != 30 {
		t.Errorf("DaysUntilExpiry = %v, want 30", result.DaysUntilExpiry)
	}
	if result.ExpiryDate == "" {
		t.Error("ExpiryDate must be set for classified results")
	}
	if _, err := time.Parse(time.RFC3339, result.ExpiryDate); err != nil {
		t.Errorf("ExpiryDate %q is not RFC3339: %v", result.ExpiryDate, err)
	}
	if result.ShouldNotify {
		t.Error("valid certificates must not notify")
	}
}

func TestCheckSiteExplicitPort(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	var gotHost, gotPort string
	e := testEvaluator(func(_ context.Context, hostname, port string, _ time.Duration) (CertFields, error) {
		gotHost, gotPort = hostname, port
		return fieldsExpiring(now, 30), nil
	}, now)

	e.CheckSite(context.Background(), models.SiteSpec{Name: "site", URL: "https://site.example.com:8443"})
	if gotHost != "site.example.com" || gotPort != "8443" {
		t.Errorf("fetched %s:%s, want site.example.com:8443", gotHost, gotPort)
	}

	e.CheckSite(context.Background(), models.SiteSpec{Name: "site", URL: "https://site.example.com"})
	if gotPort != "443" {
		t.Errorf("default port = %s, want 443", gotPort)
	}
}

func TestCheckSitePanicContained(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	e := testEvaluator(func(context.Context, string, string, time.Duration) (CertFields, error) {
		panic("boom")
	}, now)

	result := e.CheckSite(context.Background(), models.SiteSpec{Name: "site", URL: "https://site.example.com"})
	if result.Status != models.StatusError {
		t.Errorf("status = %s, want error", result.Status)
	}
	if !strings.HasPrefix(result.Message, "Monitoring error: ") {
		t.Errorf("message = %q, want Monitoring error prefix", result.Message)
	}
	if !strings.Contains(result.Message, "boom") {
		t.Errorf("message = %q, want panic text included", result.Message)
	}
}
