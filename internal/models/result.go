package models

import (
	"time"
)

// Status classifies the outcome of a certificate check
type Status string

const (
	StatusValid        Status = "valid"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
	StatusError        Status = "error"
)

// ExpiryInfo is the parsed expiration data of one certificate.
// IsExpiringSoon is inclusive of already-expired certificates; callers
// must check IsExpired first.
type ExpiryInfo struct {
	ExpiryDate      time.Time `json:"expiry_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
	IsExpired       bool      `json:"is_expired"`
	IsExpiringSoon  bool      `json:"is_expiring_soon"`
}

// SiteResult contains the outcome of checking a single site
type SiteResult struct {
	SiteName        string    `json:"site_name"`
	SiteURL         string    `json:"site_url"`
	Status          Status    `json:"status"`
	Message         string    `json:"message"`
	ExpiryDate      string    `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int      `json:"days_until_expiry,omitempty"`
	ShouldNotify    bool      `json:"should_notify"`
	CheckedAt       time.Time `json:"checked_at"`
}

// RunSummary holds per-status counts for one monitoring run
type RunSummary struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	Errors       int `json:"errors"`
}

// Summarize computes status counts over a result sequence
func Summarize(results []SiteResult) RunSummary {
	summary := RunSummary{Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case StatusValid:
			summary.Valid++
		case StatusExpired:
			summary.Expired++
		case StatusExpiringSoon:
			summary.ExpiringSoon++
		case StatusError:
			summary.Errors++
		}
	}
	return summary
}
