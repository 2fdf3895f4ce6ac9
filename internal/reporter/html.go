package reporter

import (
	"fmt"
	"html"
	"os"
	"strconv"

	"certsentry/internal/models"
)

// GenerateHTML creates an HTML report
func (r *Reporter) GenerateHTML(outputPath string) error {
	summary := models.Summarize(r.results)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer file.Close()

	file.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>SSL Certificate Monitoring Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        h1, h2, h3 { color: #2c3e50; }
        .container { max-width: 1200px; margin: 0 auto; }
        .summary { background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .stats { display: flex; gap: 20px; margin: 20px 0; }
        .stat-box { flex: 1; padding: 15px; border-radius: 5px; text-align: center; }
        .valid { background-color: #d4edda; color: #155724; }
        .expiring { background-color: #fff3cd; color: #856404; }
        .expired { background-color: #f8d7da; color: #721c24; }
        .error { background-color: #e2e3e5; color: #383d41; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f2f2f2; }
        tr:hover { background-color: #f5f5f5; }
        .badge { display: inline-block; padding: 3px 7px; border-radius: 3px; font-size: 12px; }
        .badge-valid { background-color: #d4edda; color: #155724; }
        .badge-expiring { background-color: #fff3cd; color: #856404; }
        .badge-expired { background-color: #f8d7da; color: #721c24; }
        .badge-error { background-color: #e2e3e5; color: #383d41; }
    </style>
</head>
<body>
    <div class="container">
        <h1>SSL Certificate Monitoring Report</h1>
        <div class="summary">
            <p>Report generated on: ` + reportTimestamp() + `</p>
            <p>Total sites checked: ` + strconv.Itoa(summary.Total) + `</p>
        </div>

        <div class="stats">
            <div class="stat-box valid">
                <h3>Valid</h3>
                <p>` + strconv.Itoa(summary.Valid) + `</p>
            </div>
            <div class="stat-box expiring">
                <h3>Expiring Soon</h3>
                <p>` + strconv.Itoa(summary.ExpiringSoon) + `</p>
            </div>
            <div class="stat-box expired">
                <h3>Expired</h3>
                <p>` + strconv.Itoa(summary.Expired) + `</p>
            </div>
            <div class="stat-box error">
                <h3>Errors</h3>
                <p>` + strconv.Itoa(summary.Errors) + `</p>
            </div>
        </div>

        <table>
            <tr>
                <th>Site</th>
                <th>URL</th>
                <th>Status</th>
                <th>Message</th>
                <th>Expiry Date</th>
                <th>Days Until Expiry</th>
            </tr>`)

	for _, result := range r.results {
		days := ""
		if result.DaysUntilExpiry != nil {
			days = strconv.Itoa(*result.DaysUntilExpiry)
		}

		file.WriteString(`
            <tr>
                <td>` + html.EscapeString(result.SiteName) + `</td>
                <td>` + html.EscapeString(result.SiteURL) + `</td>
                <td><span class="badge badge-` + statusClass(result.Status) + `">` + string(result.Status) + `</span></td>
                <td>` + html.EscapeString(result.Message) + `</td>
                <td>` + html.EscapeString(result.ExpiryDate) + `</td>
                <td>` + days + `</td>
            </tr>`)
	}

	file.WriteString(`
        </table>
    </div>
</body>
</html>`)

	return nil
}

func statusClass(status models.Status) string {
	switch status {
	case models.StatusValid:
		return "valid"
	case models.StatusExpiringSoon:
		return "expiring"
	case models.StatusExpired:
		return "expired"
	default:
		return "error"
	}
}
