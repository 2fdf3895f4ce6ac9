package reporter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"certsentry/internal/models"
)

var statusEmoji = map[models.Status]string{
	models.StatusValid:        "✅",
	models.StatusExpiringSoon: "⚠️",
	models.StatusExpired:      "🚨",
	models.StatusError:        "❌",
}

// Emoji returns the marker for a status, with a neutral fallback.
func Emoji(status models.Status) string {
	if e, ok := statusEmoji[status]; ok {
		return e
	}
	return "ℹ️"
}

// FormatAlert renders a per-site alert message for the notification
// transport.
func FormatAlert(result models.SiteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s SSL Certificate Alert for %s\n", Emoji(result.Status), result.SiteName)
	fmt.Fprintf(&b, "URL: %s\n", result.SiteURL)
	fmt.Fprintf(&b, "Status: %s\n", result.Message)
	if result.ExpiryDate != "" {
		fmt.Fprintf(&b, "Expiry Date: %s\n", result.ExpiryDate)
	}
	if result.DaysUntilExpiry != nil {
		fmt.Fprintf(&b, "Days Until Expiry: %d", *result.DaysUntilExpiry)
	}
	return b.String()
}

// FormatSummary renders the aggregate run report sent as the weekly
// summary.
func FormatSummary(results []models.SiteResult) string {
	summary := models.Summarize(results)

	var emoji, status string
	switch {
	case summary.Expired > 0 || summary.Errors > 0:
		emoji, status = "🚨", "Issues Found"
	case summary.ExpiringSoon > 0:
		emoji, status = "⚠️", "Warnings"
	default:
		emoji, status = "✅", "All Good"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s SSL Monitoring Summary - %s\n", emoji, status)
	fmt.Fprintf(&b, "Total Sites: %d\n", summary.Total)
	fmt.Fprintf(&b, "Valid: %d\n", summary.Valid)
	fmt.Fprintf(&b, "Expired: %d\n", summary.Expired)
	fmt.Fprintf(&b, "Expiring Soon: %d\n", summary.ExpiringSoon)
	fmt.Fprintf(&b, "Errors: %d\n\n", summary.Errors)

	b.WriteString("Sites Checked:\n")
	for _, result := range results {
		fmt.Fprintf(&b, "%s %s (%s)", Emoji(result.Status), result.SiteName, result.SiteURL)
		if result.ExpiryDate != "" {
			fmt.Fprintf(&b, " - Expires: %s", result.ExpiryDate)
		}
		if result.DaysUntilExpiry != nil {
			b.WriteString(dayPhrase(*result.DaysUntilExpiry))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func dayPhrase(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf(" (Expired %d days ago)", -days)
	case days == 0:
		return " (Expires today)"
	default:
		return fmt.Sprintf(" (%d days remaining)", days)
	}
}

// Reporter writes run results to report files in various formats
type Reporter struct {
	results   []models.SiteResult
	outputDir string
}

// New creates a new Reporter instance
func New(results []models.SiteResult, outputDir string) *Reporter {
	return &Reporter{
		results:   results,
		outputDir: outputDir,
	}
}

// GenerateReport creates reports in the requested comma-separated formats
func (r *Reporter) GenerateReport(prefix, format string) error {
	base := filepath.Join(r.outputDir, prefix)

	for _, f := range strings.Split(format, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "json":
			if err := r.GenerateJSON(base + ".json"); err != nil {
				return err
			}
		case "csv":
			if err := r.GenerateCSV(base + ".csv"); err != nil {
				return err
			}
		case "html":
			if err := r.GenerateHTML(base + ".html"); err != nil {
				return err
			}
		case "all":
			return r.GenerateReport(prefix, "json,csv,html")
		}
	}

	return nil
}

func reportTimestamp() string {
	return time.Now().Format("January 2, 2006 15:04:05")
}
