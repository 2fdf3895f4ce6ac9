package monitor

import (
	"context"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"certsentry/internal/models"
	"certsentry/internal/reporter"
)

// weeklyReportDay is a policy constant: the aggregate summary goes out on
// Sundays only, regardless of findings.
const weeklyReportDay = time.Sunday

// Notifier delivers a plain-text message to the notification transport.
type Notifier interface {
	Send(message, targetID string) error
}

// Monitor iterates the configured sites, collects results, and decides
// what gets alerted.
type Monitor struct {
	cfg       *models.Config
	log       *logrus.Logger
	evaluator *Evaluator
	notifier  Notifier
	now       func() time.Time
}

// New creates a Monitor. notifier may be nil when notifications are
// disabled.
func New(cfg *models.Config, log *logrus.Logger, notifier Notifier) *Monitor {
	return &Monitor{
		cfg:       cfg,
		log:       log,
		evaluator: NewEvaluator(cfg, log),
		notifier:  notifier,
		now:       time.Now,
	}
}

// Run evaluates all enabled sites sequentially, preserving input order.
// Sequential execution is deliberate: it keeps log and alert ordering
// deterministic, and total runtime stays bounded by timeout x site count.
func (m *Monitor) Run(ctx context.Context, sites []models.SiteSpec) []models.SiteResult {
	var enabled []models.SiteSpec
	for _, site := range sites {
		if site.IsEnabled() {
			enabled = append(enabled, site)
		}
	}

	m.log.Infof("Starting SSL monitoring for %d sites", len(enabled))

	var bar *progressbar.ProgressBar
	if !m.cfg.Quiet && !m.cfg.NoProgress {
		bar = progressbar.NewOptions(len(enabled),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(50),
			progressbar.OptionSetDescription("[cyan]Checking sites[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	results := make([]models.SiteResult, 0, len(enabled))
	for _, site := range enabled {
		result := m.evaluator.CheckSite(ctx, site)
		results = append(results, result)

		m.logResult(result)

		if result.ShouldNotify && alertable(result.Status) {
			m.dispatchAlert(result)
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	summary := models.Summarize(results)
	m.log.Infof("Monitoring complete: %d sites checked, %d valid, %d expired, %d expiring soon, %d errors",
		summary.Total, summary.Valid, summary.Expired, summary.ExpiringSoon, summary.Errors)

	m.maybeSendWeeklyReport(results)

	return results
}

func alertable(status models.Status) bool {
	switch status {
	case models.StatusExpired, models.StatusExpiringSoon, models.StatusError:
		return true
	default:
		return false
	}
}

func (m *Monitor) logResult(result models.SiteResult) {
	switch result.Status {
	case models.StatusExpired:
		m.log.Errorf("EXPIRED: %s (%s) - %s", result.SiteName, result.SiteURL, result.Message)
	case models.StatusExpiringSoon:
		m.log.Warnf("EXPIRING SOON: %s (%s) - %s", result.SiteName, result.SiteURL, result.Message)
	case models.StatusError:
		m.log.Errorf("ERROR: %s (%s) - %s", result.SiteName, result.SiteURL, result.Message)
	default:
		m.log.Infof("VALID: %s (%s) - %s", result.SiteName, result.SiteURL, result.Message)
	}
}

// dispatchAlert sends one per-site alert. Notification failures are
// logged and never escalated; a dead webhook must not fail the run.
func (m *Monitor) dispatchAlert(result models.SiteResult) {
	if m.notifier == nil {
		return
	}
	message := reporter.FormatAlert(result)
	if err := m.notifier.Send(message, m.cfg.NotifyTargetID); err != nil {
		m.log.Errorf("Failed to send alert for %s: %v", result.SiteName, err)
	}
}

func (m *Monitor) maybeSendWeeklyReport(results []models.SiteResult) {
	if m.notifier == nil || !m.cfg.WeeklyReport {
		return
	}
	today := m.now().Weekday()
	if today != weeklyReportDay {
		m.log.Debugf("Weekly report not sent - today is %s, not %s", today, weeklyReportDay)
		return
	}
	m.log.Info("Sending weekly summary report")
	if err := m.notifier.Send(reporter.FormatSummary(results), m.cfg.NotifyTargetID); err != nil {
		m.log.Errorf("Failed to send weekly summary report: %v", err)
	}
}
