package monitor

import (
	"fmt"

	"certsentry/internal/models"
)

// Classify maps parsed expiration info to a status, a human-readable
// message, and the notification decision. Expired is checked before
// expiring-soon; the expiring-soon predicate overlaps it.
func Classify(info *models.ExpiryInfo) (models.Status, string, bool) {
	switch {
	case info.IsExpired:
		return models.StatusExpired,
			fmt.Sprintf("Certificate expired %d days ago", -info.DaysUntilExpiry),
			true
	case info.IsExpiringSoon:
		return models.StatusExpiringSoon,
			fmt.Sprintf("Certificate expires in %d days", info.DaysUntilExpiry),
			true
	default:
		return models.StatusValid,
			fmt.Sprintf("Certificate is valid for %d more days", info.DaysUntilExpiry),
			false
	}
}
