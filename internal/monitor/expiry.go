package monitor

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"certsentry/internal/models"
)

// notAfterLayouts are tried strictly in order. Order is a contract: the
// slash forms are structurally ambiguous (day/month vs month/day) and the
// first successful parse wins.
var notAfterLayouts = []string{
	"Jan _2 15:04:05 2006 MST", // Dec 31 23:59:59 2023 GMT
	"Jan _2 15:04:05 2006",     // Dec 31 23:59:59 2023
	"2006-01-02 15:04:05",      // 2023-12-31 23:59:59
	"2006-01-02",               // 2023-12-31
	"02/01/2006",               // 31/12/2023
	"01/02/2006",               // 12/31/2023
}

// looseDatePattern extracts a month-abbreviation/day/year triple from
// anywhere in the string, tolerating surrounding text.
var looseDatePattern = regexp.MustCompile(`(\w{3})\s+(\d{1,2})\s+(\d{4})`)

var monthAbbrevs = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// ParseCertDates converts the raw notAfter field into expiration info
// relative to now. It first tries the strict layouts in priority order,
// then falls back to loose extraction. Returns nil when the fields are
// empty, the notAfter field is missing, or nothing parses.
func ParseCertDates(fields CertFields, now time.Time, warningDays int) *models.ExpiryInfo {
	if len(fields) == 0 {
		return nil
	}
	raw, ok := fields[notAfterField]
	if !ok || raw == "" {
		return nil
	}

	for _, layout := range notAfterLayouts {
		if expiry, err := time.Parse(layout, raw); err == nil {
			return expiryInfo(expiry, now, warningDays)
		}
	}

	match := looseDatePattern.FindStringSubmatch(raw)
	if match == nil {
		return nil
	}
	month, ok := monthAbbrevs[match[1]]
	if !ok {
		return nil
	}
	day, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	expiry := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return expiryInfo(expiry, now, warningDays)
}

func expiryInfo(expiry, now time.Time, warningDays int) *models.ExpiryInfo {
	days := daysBetween(now, expiry)
	return &models.ExpiryInfo{
		ExpiryDate:      expiry,
		DaysUntilExpiry: days,
		IsExpired:       days < 0,
		IsExpiringSoon:  days <= warningDays,
	}
}

// daysBetween counts whole days from now until expiry, flooring toward
// negative infinity: a certificate one hour past expiry is already day -1.
func daysBetween(now, expiry time.Time) int {
	return int(math.Floor(expiry.Sub(now).Hours() / 24))
}
