package reporter

import (
	"fmt"
	"os"
	"strings"
)

// GenerateCSV creates a CSV report
func (r *Reporter) GenerateCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	file.WriteString("Site,URL,Status,Message,ExpiryDate,DaysUntilExpiry,ShouldNotify,CheckedAt\n")

	for _, result := range r.results {
		message := strings.ReplaceAll(result.Message, ",", " ")
		message = strings.ReplaceAll(message, "\n", " ")
		siteURL := strings.ReplaceAll(result.SiteURL, ",", "%2C")

		days := ""
		if result.DaysUntilExpiry != nil {
			days = fmt.Sprintf("%d", *result.DaysUntilExpiry)
		}

		file.WriteString(fmt.Sprintf(
			"%s,%s,%s,%s,%s,%s,%t,%s\n",
			result.SiteName,
			siteURL,
			result.Status,
			message,
			result.ExpiryDate,
			days,
			result.ShouldNotify,
			result.CheckedAt.Format("2006-01-02 15:04:05"),
		))
	}

	return nil
}
