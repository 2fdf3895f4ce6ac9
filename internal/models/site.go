package models

// SiteSpec describes one monitored HTTPS endpoint
type SiteSpec struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the site should be checked. Sites are
// enabled unless the config explicitly says otherwise.
func (s SiteSpec) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// SiteList is the top-level structure of a sites configuration file
type SiteList struct {
	Sites []SiteSpec `json:"sites" yaml:"sites"`
}
