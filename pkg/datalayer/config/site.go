package config

// SiteInfo is the immutable per-session site identity injected into the
// first event of a session.
type SiteInfo struct {
	Name       string `json:"name" yaml:"name"`
	Experience string `json:"experience" yaml:"experience"`
	Currency   string `json:"currency" yaml:"currency"`
	Division   string `json:"division" yaml:"division"`
	Domain     string `json:"domain" yaml:"domain"`
	Env        string `json:"env" yaml:"env"`
	Version    string `json:"version" yaml:"version"`
}

// IsZero reports whether no site field is set.
func (s SiteInfo) IsZero() bool {
	return s == SiteInfo{}
}

// Site extracts the SiteInfo from the "site" block of a loaded Config.
// Present reports whether the block exists at all, so callers can
// distinguish "no site block" from "empty site block".
func Site(c Config) (info SiteInfo, present bool) {
	if !c.Has("site") {
		return SiteInfo{}, false
	}
	site := c.Sub("site")
	return SiteInfo{
		Name:       site.String("name", ""),
		Experience: site.String("experience", ""),
		Currency:   site.String("currency", ""),
		Division:   site.String("division", ""),
		Domain:     site.String("domain", ""),
		Env:        site.String("env", ""),
		Version:    site.String("version", ""),
	}, true
}
