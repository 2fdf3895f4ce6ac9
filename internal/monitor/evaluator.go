package monitor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"certsentry/internal/models"
)

// expiredPhrase is matched against connection error text to distinguish
// "certificate expired, handshake refused" from other network failures.
// The wording comes from Go's x509 verification error; another TLS stack
// would need its own entry here.
const expiredPhrase = "certificate has expired"

// Evaluator runs the fetch -> parse -> classify pipeline for one site,
// normalizing every outcome into a SiteResult.
type Evaluator struct {
	cfg   *models.Config
	log   *logrus.Logger
	fetch FetchFunc
	now   func() time.Time
}

// NewEvaluator creates an Evaluator using the real certificate fetcher.
func NewEvaluator(cfg *models.Config, log *logrus.Logger) *Evaluator {
	return &Evaluator{
		cfg:   cfg,
		log:   log,
		fetch: FetchCertificate,
		now:   time.Now,
	}
}

// CheckSite evaluates the TLS certificate of a single site. All failure
// paths, including panics, are converted into an error-status result so
// one site can never abort the rest of a run.
func (e *Evaluator) CheckSite(ctx context.Context, site models.SiteSpec) (result models.SiteResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("Unexpected error while checking %s: %v", site.Name, r)
			result = e.errorResult(site, fmt.Sprintf("Monitoring error: %v", r))
		}
	}()

	e.log.Infof("Checking SSL certificate for %s (%s)", site.Name, site.URL)

	hostname, port := hostPort(site.URL)
	if hostname == "" {
		e.log.Errorf("Invalid URL for %s: %s", site.Name, site.URL)
		return e.errorResult(site, "Invalid URL")
	}

	fields, err := e.fetch(ctx, hostname, port, e.cfg.Timeout)
	if err != nil {
		e.log.Errorf("Failed to get SSL certificate for %s: %v", site.Name, err)
		return e.errorResult(site, enhanceFetchError(err))
	}

	info := ParseCertDates(fields, e.now(), e.cfg.WarningDays)
	if info == nil {
		e.log.Errorf("Could not parse certificate dates for %s", site.Name)
		return e.errorResult(site, "Could not parse certificate dates")
	}

	status, message, shouldNotify := Classify(info)
	days := info.DaysUntilExpiry

	return models.SiteResult{
		SiteName:        site.Name,
		SiteURL:         site.URL,
		Status:          status,
		Message:         message,
		ExpiryDate:      info.ExpiryDate.Format(time.RFC3339),
		DaysUntilExpiry: &days,
		ShouldNotify:    shouldNotify,
		CheckedAt:       e.now(),
	}
}

func (e *Evaluator) errorResult(site models.SiteSpec, message string) models.SiteResult {
	return models.SiteResult{
		SiteName:     site.Name,
		SiteURL:      site.URL,
		Status:       models.StatusError,
		Message:      message,
		ShouldNotify: true,
		CheckedAt:    e.now(),
	}
}

// enhanceFetchError rewrites connection errors for reporting. An expired
// certificate aborts the handshake before its fields can be read, so the
// expiry date is unavailable on this path.
func enhanceFetchError(err error) string {
	if strings.Contains(strings.ToLower(err.Error()), expiredPhrase) {
		return "SSL connection failed: Certificate has expired (unable to retrieve expiry date due to SSL verification failure)"
	}
	return fmt.Sprintf("SSL connection failed: %v", err)
}

// hostPort extracts the hostname and port from a site URL. The port
// defaults to 443 when the URL does not carry one. An empty hostname
// marks the URL as invalid.
func hostPort(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ""
	}
	port := u.Port()
	if port == "" {
		port = "443"
	}
	return u.Hostname(), port
}
